// Package server provides the MCP server context, health checks, and the
// dedicated Prometheus metrics server for the didamcp application.
//
// # Key Components
//
// ServerContext holds the shared Dida365 client and task service and carries
// optional instrumentation hooks (metrics recorder and audit logger) that the
// tool layer picks up when configured.
//
// HealthChecker exposes Kubernetes-style probe endpoints:
//   - /healthz for liveness
//   - /readyz for readiness, including a check that the Dida365 client is
//     configured
//   - /healthz/detailed for uptime information
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolated from
// the MCP transport so operational metrics are not reachable through the
// tool surface.
package server
