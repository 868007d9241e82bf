package common

// GetProjectFromArgs extracts the project name from request arguments.
// Returns an empty string when no project was provided.
func GetProjectFromArgs(args map[string]interface{}) string {
	if project, ok := args["project_name"].(string); ok {
		return project
	}
	return ""
}

// GetTaskRefFromArgs extracts the task reference (id or title) from request
// arguments. Mutating tools accept either form in the task_id argument.
func GetTaskRefFromArgs(args map[string]interface{}) string {
	if ref, ok := args["task_id"].(string); ok {
		return ref
	}
	return ""
}
