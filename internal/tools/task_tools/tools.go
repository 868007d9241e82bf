package task_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/didamcp/internal/civil"
	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/instrumentation"
	"github.com/teemow/didamcp/internal/server"
	"github.com/teemow/didamcp/internal/task"
	"github.com/teemow/didamcp/internal/tools/common"
)

// RegisterTaskTools registers all task-related tools with the MCP server
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerTimeTool(s, sc)

	if err := registerQueryTools(s, sc); err != nil {
		return fmt.Errorf("failed to register query tools: %w", err)
	}

	if err := registerMutationTools(s, sc); err != nil {
		return fmt.Errorf("failed to register mutation tools: %w", err)
	}

	return nil
}

// currentTime is the payload of the get_current_time tool. All values
// describe the same instant in the fixed UTC+8 zone Dida365 uses.
type currentTime struct {
	ISO       string `json:"iso"`
	Date      string `json:"date"`
	DateTime  string `json:"datetime"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Hour      int    `json:"hour"`
	Minute    int    `json:"minute"`
	Second    int    `json:"second"`
	Weekday   string `json:"weekday"`
	Timestamp int64  `json:"timestamp"`
}

// registerTimeTool registers the get_current_time tool. Agents are expected
// to call it before any date-related operation instead of guessing dates.
func registerTimeTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	timeTool := mcp.NewTool("get_current_time",
		mcp.WithDescription("Get the current system time in the task service's time zone (UTC+8). Call this before creating or updating tasks with dates. Returns the time in several formats."),
	)

	s.AddTool(timeTool, common.InstrumentedToolHandler("get_current_time", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			now := civil.Now()

			payload := struct {
				Success     bool        `json:"success"`
				Message     string      `json:"message"`
				CurrentTime currentTime `json:"current_time"`
				Hint        string      `json:"hint"`
			}{
				Success: true,
				Message: "current time retrieved",
				CurrentTime: currentTime{
					ISO:       now.Format("2006-01-02T15:04:05.000Z07:00"),
					Date:      now.Format("2006-01-02"),
					DateTime:  now.Format(civil.Layout),
					Year:      now.Year(),
					Month:     int(now.Month()),
					Day:       now.Day(),
					Hour:      now.Hour(),
					Minute:    now.Minute(),
					Second:    now.Second(),
					Weekday:   now.Weekday().String(),
					Timestamp: now.UnixMilli(),
				},
				Hint: "Use the date format for all-day tasks or the datetime format for timed tasks",
			}

			result, _ := json.MarshalIndent(payload, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))
}

// registerQueryTools registers the read-only task tools
func registerQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	getTasksTool := mcp.NewTool("get_tasks",
		mcp.WithDescription("List tasks across all open projects. Supports filtering by mode, keyword, priority, project name, and completion state. Modes: all, today, yesterday, recent_7_days."),
		mcp.WithString("mode",
			mcp.Description("Temporal filter mode: all, today, yesterday, or recent_7_days"),
		),
		mcp.WithString("keyword",
			mcp.Description("Keyword matched against task title or content"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority filter: 0 (none), 1 (low), 3 (medium), 5 (high)"),
		),
		mcp.WithString("project_name",
			mcp.Description("Filter by project name (substring match)"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Filter by completion state: true for completed, false for open, omit for both"),
		),
	)

	s.AddTool(getTasksTool, common.InstrumentedToolHandlerWithOperation("get_tasks", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			query := task.Query{
				Keyword:     getString(args, "keyword"),
				ProjectName: getString(args, "project_name"),
				Completed:   getBoolPtr(args, "completed"),
			}

			mode := task.Mode(getString(args, "mode"))
			if !task.ValidMode(mode) {
				return errorEnvelope(fmt.Sprintf("invalid mode %q: must be one of all, today, yesterday, recent_7_days", mode)), nil
			}
			query.Mode = mode

			priority, ok, err := getPriority(args, "priority")
			if err != nil {
				return errorEnvelope(err.Error()), nil
			}
			if ok {
				query.Priority = &priority
			}

			tasks, err := sc.TaskService().GetTasks(ctx, query)
			if err != nil {
				return errorEnvelope(fmt.Sprintf("execution failed: %v", err)), nil
			}

			result, _ := json.MarshalIndent(tasks, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	return nil
}

// registerMutationTools registers the tools that change remote state
func registerMutationTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	createTaskTool := mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task. Fetch the current time first instead of guessing dates. Date format: YYYY-MM-DD for all-day tasks or YYYY-MM-DD HH:MM:SS for timed tasks. If required information is missing the tool answers with a prompt instead of creating anything; confirm with the user before retrying. Providing a project name and a date is recommended."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Task title"),
		),
		mcp.WithString("content",
			mcp.Description("Task content"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority: 0 (none), 1 (low), 3 (medium), 5 (high)"),
		),
		mcp.WithString("project_name",
			mcp.Description("Project name; the call fails when no project matches"),
		),
		mcp.WithString("tag_names",
			mcp.Description("Comma-separated list of tag names"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS"),
		),
		mcp.WithString("due_date",
			mcp.Description("Due date, YYYY-MM-DD or YYYY-MM-DD HH:MM:SS"),
		),
		mcp.WithBoolean("is_all_day",
			mcp.Description("Whether this is an all-day task"),
		),
		mcp.WithString("reminder",
			mcp.Description(`Reminder trigger, e.g. "0" (on time), "-5M" (5 minutes before), "-1H" (1 hour before), "-1D" (1 day before)`),
		),
		mcp.WithString("column_name",
			mcp.Description("Kanban column name (only effective in kanban-view projects)"),
		),
	)

	s.AddTool(createTaskTool, common.InstrumentedToolHandlerWithOperation("create_task", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			params := task.CreateParams{
				Title:       getString(args, "title"),
				Content:     getString(args, "content"),
				ProjectName: getString(args, "project_name"),
				TagNames:    getStringList(args, "tag_names"),
				StartDate:   getString(args, "start_date"),
				DueDate:     getString(args, "due_date"),
				IsAllDay:    getBoolPtr(args, "is_all_day"),
				Reminder:    getString(args, "reminder"),
				ColumnName:  getString(args, "column_name"),
			}

			priority, ok, err := getPriority(args, "priority")
			if err != nil {
				return errorEnvelope(err.Error()), nil
			}
			if ok {
				params.Priority = &priority
			}

			created, err := sc.TaskService().CreateTask(ctx, params)
			if err != nil {
				return errorEnvelope(fmt.Sprintf("execution failed: %v", err)), nil
			}

			result, _ := json.MarshalIndent(created, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	updateTaskTool := mcp.NewTool("update_task",
		mcp.WithDescription("Update a task by id or exact title. Date format: YYYY-MM-DD or YYYY-MM-DD HH:MM:SS. Setting status to 2 completes the task; setting it to 0 is rejected because the open API cannot reopen tasks."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id or task title"),
		),
		mcp.WithString("title",
			mcp.Description("New task title"),
		),
		mcp.WithString("content",
			mcp.Description("New task content"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority: 0 (none), 1 (low), 3 (medium), 5 (high)"),
		),
		mcp.WithString("project_name",
			mcp.Description("New project name"),
		),
		mcp.WithString("tag_names",
			mcp.Description("Comma-separated list of new tag names"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start date"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date"),
		),
		mcp.WithBoolean("is_all_day",
			mcp.Description("Whether this is an all-day task"),
		),
		mcp.WithString("reminder",
			mcp.Description("New reminder trigger"),
		),
		mcp.WithNumber("status",
			mcp.Description("New status: 0 (todo) or 2 (completed; routes to the complete-task path)"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandlerWithOperation("update_task", instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskID := getString(args, "task_id")
			if taskID == "" {
				return errorEnvelope("task_id is required"), nil
			}

			params := task.UpdateParams{
				TaskID:      taskID,
				Title:       getStringPtr(args, "title"),
				Content:     getStringPtr(args, "content"),
				ProjectName: getString(args, "project_name"),
				TagNames:    getStringList(args, "tag_names"),
				StartDate:   getStringPtr(args, "start_date"),
				DueDate:     getStringPtr(args, "due_date"),
				IsAllDay:    getBoolPtr(args, "is_all_day"),
				Reminder:    getStringPtr(args, "reminder"),
			}

			priority, ok, err := getPriority(args, "priority")
			if err != nil {
				return errorEnvelope(err.Error()), nil
			}
			if ok {
				params.Priority = &priority
			}

			status, ok, err := getStatus(args, "status")
			if err != nil {
				return errorEnvelope(err.Error()), nil
			}
			if ok {
				params.Status = &status
			}

			updated, err := sc.TaskService().UpdateTask(ctx, params)
			if err != nil {
				return errorEnvelope(fmt.Sprintf("execution failed: %v", err)), nil
			}

			result, _ := json.MarshalIndent(updated, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	deleteTaskTool := mcp.NewTool("delete_task",
		mcp.WithDescription("Delete a task by id or exact title."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id or task title"),
		),
	)

	s.AddTool(deleteTaskTool, common.InstrumentedToolHandlerWithOperation("delete_task", instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskID := getString(args, "task_id")
			if taskID == "" {
				return errorEnvelope("task_id is required"), nil
			}

			deleted, err := sc.TaskService().DeleteTask(ctx, taskID)
			if err != nil {
				return errorEnvelope(fmt.Sprintf("execution failed: %v", err)), nil
			}

			result, _ := json.MarshalIndent(deleted, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	completeTaskTool := mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as completed, by id or exact title."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task id or task title"),
		),
	)

	s.AddTool(completeTaskTool, common.InstrumentedToolHandlerWithOperation("complete_task", instrumentation.OperationComplete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := request.GetArguments()

			taskID := getString(args, "task_id")
			if taskID == "" {
				return errorEnvelope("task_id is required"), nil
			}

			completed, err := sc.TaskService().CompleteTask(ctx, taskID)
			if err != nil {
				return errorEnvelope(fmt.Sprintf("execution failed: %v", err)), nil
			}

			result, _ := json.MarshalIndent(completed, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		}))

	return nil
}

// errorEnvelope renders a failure as the {success, message} envelope the
// agent-facing contract uses, marked as an MCP error result.
func errorEnvelope(message string) *mcp.CallToolResult {
	payload := struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{
		Success: false,
		Message: message,
	}

	result, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultError(string(result))
}

// getString extracts a string argument, returning "" when absent.
func getString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr distinguishes an absent argument (nil) from an explicitly
// provided one, including the empty string.
func getStringPtr(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func getBoolPtr(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

// getStringList accepts either a comma-separated string or a JSON array of
// strings. Agents send both forms.
func getStringList(args map[string]interface{}, key string) []string {
	switch v := args[key].(type) {
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// getPriority extracts and validates the priority argument. The second
// return value reports presence.
func getPriority(args map[string]interface{}, key string) (dida.Priority, bool, error) {
	v, present := args[key]
	if !present {
		return 0, false, nil
	}

	f, ok := v.(float64) // JSON numbers decode as float64
	if !ok {
		return 0, false, fmt.Errorf("priority must be a number (0, 1, 3 or 5)")
	}

	p := dida.Priority(int(f))
	if !dida.ValidPriority(p) {
		return 0, false, fmt.Errorf("invalid priority %d: must be 0, 1, 3 or 5", int(f))
	}
	return p, true, nil
}

// getStatus extracts and validates the status argument.
func getStatus(args map[string]interface{}, key string) (dida.Status, bool, error) {
	v, present := args[key]
	if !present {
		return 0, false, nil
	}

	f, ok := v.(float64)
	if !ok {
		return 0, false, fmt.Errorf("status must be a number (0 or 2)")
	}

	s := dida.Status(int(f))
	if s != dida.StatusTodo && s != dida.StatusCompleted {
		return 0, false, fmt.Errorf("invalid status %d: must be 0 or 2", int(f))
	}
	return s, true, nil
}
