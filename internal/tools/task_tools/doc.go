// Package task_tools provides MCP tools for managing Dida365 tasks.
//
// This package implements MCP (Model Context Protocol) tools that wrap the
// Dida365 task service, providing task management capabilities for AI
// assistants.
//
// # Available Tools
//
//   - get_current_time: Get the current time in the service's UTC+8 zone
//   - get_tasks: List tasks across all open projects (with filters)
//   - create_task: Create a new task
//   - update_task: Update a task by id or title
//   - delete_task: Delete a task by id or title
//   - complete_task: Mark a task as completed
//
// # Task References
//
// Mutating tools accept either a task id or an exact task title in the
// task_id argument. Titles are resolved over a fresh aggregation of all
// open projects; when several tasks share a title the first match wins.
//
// # Envelopes
//
// Every tool answers with a JSON envelope carrying a success flag. Missing
// required information on create_task produces a needMoreInfo response
// without touching the remote API, and resolution failures on the mutating
// tools produce {success: false, info} rather than protocol-level errors.
package task_tools
