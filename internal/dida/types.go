package dida

import "fmt"

// Priority is the closed set of task priorities used by Dida365. The values
// are not a linear scale; treat them as an enumeration.
type Priority int

// Task priorities.
const (
	PriorityNone   Priority = 0
	PriorityLow    Priority = 1
	PriorityMedium Priority = 3
	PriorityHigh   Priority = 5
)

// ValidPriority reports whether p is one of the closed priority values.
func ValidPriority(p Priority) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Status is the normalized task status. The API may also emit a transient 1
// for tasks in a completed kanban column; normalization collapses it to
// StatusCompleted.
type Status int

// Task statuses.
const (
	StatusTodo      Status = 0
	StatusCompleted Status = 2
)

// ColumnTypeCompleted marks a kanban column that acts as a terminal
// "completed" bucket.
const ColumnTypeCompleted = "COMPLETED"

// Task is a Dida365 task. Date fields are strings because they change
// representation over the task's lifetime: wire format when fetched,
// local civil format after normalization.
type Task struct {
	ID            string    `json:"id,omitempty"`
	ProjectID     string    `json:"projectId,omitempty"`
	ProjectName   string    `json:"projectName,omitempty"`
	ProjectKind   string    `json:"projectKind,omitempty"`
	ColumnID      string    `json:"columnId,omitempty"`
	ParentID      string    `json:"parentId,omitempty"`
	Title         string    `json:"title"`
	Content       string    `json:"content,omitempty"`
	Desc          string    `json:"desc,omitempty"`
	Priority      Priority  `json:"priority"`
	Status        Status    `json:"status"`
	IsCompleted   bool      `json:"isCompleted"`
	IsAllDay      *bool     `json:"isAllDay,omitempty"`
	StartDate     string    `json:"startDate,omitempty"`
	DueDate       string    `json:"dueDate,omitempty"`
	CompletedTime string    `json:"completedTime,omitempty"`
	CreatedTime   string    `json:"createdTime,omitempty"`
	ModifiedTime  string    `json:"modifiedTime,omitempty"`
	TimeZone      string    `json:"timeZone,omitempty"`
	Reminder      string    `json:"reminder,omitempty"`
	Reminders     []string  `json:"reminders,omitempty"`
	RepeatFlag    string    `json:"repeatFlag,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Items         []SubTask `json:"items,omitempty"`
	Progress      int       `json:"progress,omitempty"`
	Kind          string    `json:"kind,omitempty"`
	SortOrder     int64     `json:"sortOrder,omitempty"`
	Creator       int64     `json:"creator,omitempty"`
}

// SubTask is a checklist item inside a task. It has no identity outside its
// parent task.
type SubTask struct {
	ID            string   `json:"id,omitempty"`
	Title         string   `json:"title,omitempty"`
	Content       string   `json:"content,omitempty"`
	Priority      Priority `json:"priority,omitempty"`
	Status        Status   `json:"status,omitempty"`
	IsCompleted   bool     `json:"isCompleted,omitempty"`
	StartDate     string   `json:"startDate,omitempty"`
	CompletedTime string   `json:"completedTime,omitempty"`
	Progress      int      `json:"progress,omitempty"`
	Kind          string   `json:"kind,omitempty"`
	SortOrder     int64    `json:"sortOrder,omitempty"`
	ParentID      string   `json:"parentId,omitempty"`
	TimeZone      string   `json:"timeZone,omitempty"`
}

// Project is a Dida365 project (a "list" in the UI). Names are not
// guaranteed unique across the account.
type Project struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Color      string   `json:"color,omitempty"`
	SortOrder  int64    `json:"sortOrder,omitempty"`
	Kind       string   `json:"kind,omitempty"`
	GroupID    string   `json:"groupId,omitempty"`
	ViewMode   string   `json:"viewMode,omitempty"`
	Permission string   `json:"permission,omitempty"`
	Closed     bool     `json:"closed,omitempty"`
	Columns    []Column `json:"columns,omitempty"`
}

// Column is a kanban column inside a project. A task belongs to at most one
// column; a column belongs to exactly one project.
type Column struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	SortOrder int64  `json:"sortOrder,omitempty"`
	Type      string `json:"type,omitempty"`
}

// ProjectData is the full payload of GET /project/{id}/data.
type ProjectData struct {
	Project Project  `json:"project"`
	Tasks   []Task   `json:"tasks,omitempty"`
	Columns []Column `json:"columns,omitempty"`
}

// TaskPayload is the request body for creating or updating a task. Pointer
// fields distinguish "not provided" from zero values so that absent fields
// are omitted from the JSON body instead of overwriting remote state.
type TaskPayload struct {
	ID         string    `json:"id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content,omitempty"`
	ProjectID  string    `json:"projectId,omitempty"`
	ColumnID   string    `json:"columnId,omitempty"`
	Priority   *Priority `json:"priority,omitempty"`
	Status     *Status   `json:"status,omitempty"`
	IsAllDay   *bool     `json:"isAllDay,omitempty"`
	StartDate  string    `json:"startDate,omitempty"`
	DueDate    string    `json:"dueDate,omitempty"`
	Reminder   string    `json:"reminder,omitempty"`
	Reminders  []string  `json:"reminders,omitempty"`
	TimeZone   string    `json:"timeZone,omitempty"`
	RepeatFlag string    `json:"repeatFlag,omitempty"`
	SortOrder  *int64    `json:"sortOrder,omitempty"`
	Kind       string    `json:"kind,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	Items      []SubTask `json:"items,omitempty"`
}

// APIError represents a failed call to the Dida365 API.
type APIError struct {
	// Op is the operation that failed (e.g. "listProjects", "createTask")
	Op string

	// StatusCode is the HTTP status returned by the API, or 0 for
	// transport-level failures
	StatusCode int

	// Body is the (truncated) response body, useful for diagnostics
	Body string

	// Err is the underlying error, if any
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("dida %s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("dida %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *APIError) Unwrap() error {
	return e.Err
}
