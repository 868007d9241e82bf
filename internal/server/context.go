package server

import (
	"context"
	"sync"

	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/instrumentation"
	"github.com/teemow/didamcp/internal/task"
)

// ServerContext holds the shared state for the MCP server: the Dida365
// client, the task service built on top of it, and optional
// instrumentation hooks.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	didaClient  *dida.Client
	taskService *task.Service
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// NewServerContext creates a new server context around an existing Dida365
// client and task service.
func NewServerContext(ctx context.Context, client *dida.Client, svc *task.Service) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		didaClient:  client,
		taskService: svc,
		shutdown:    false,
	}
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// DidaClient returns the Dida365 API client.
func (sc *ServerContext) DidaClient() *dida.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.didaClient
}

// TaskService returns the task service used by the MCP tools.
func (sc *ServerContext) TaskService() *task.Service {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.taskService
}

// SetTaskService replaces the task service. Intended for tests.
func (sc *ServerContext) SetTaskService(svc *task.Service) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.taskService = svc
}

// Metrics returns the metrics recorder, or nil if instrumentation is not
// configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// AuditLogger returns the audit logger, or nil if audit logging is not
// configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// SetAuditLogger sets the audit logger for tool invocations.
func (sc *ServerContext) SetAuditLogger(auditLogger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
