package instrumentation

// Cardinality management helpers for metrics.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Project names and task titles are unbounded user content; never record
// them as metric labels unless detailed labels are explicitly enabled.

// Common operation types for Dida365 API metrics.
// Status constants are defined in config.go.
const (
	OperationList     = "list"
	OperationGet      = "get"
	OperationCreate   = "create"
	OperationUpdate   = "update"
	OperationDelete   = "delete"
	OperationComplete = "complete"
)

// ProjectLabel reduces a project name to a metrics-safe label. The name
// itself is unbounded, so only its presence is recorded.
func ProjectLabel(project string) string {
	if project == "" {
		return "none"
	}
	return "named"
}
