package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/teemow/didamcp/internal/civil"
	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/logging"
)

// Service implements the operations exposed at the tool boundary. Every
// operation performs its own fresh aggregation; nothing is shared
// between calls.
type Service struct {
	api    API
	engine *Engine
	logger *slog.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewService creates a Service. A nil logger falls back to slog.Default.
func NewService(api API, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:    api,
		engine: NewEngine(api, logger),
		logger: logger,
		now:    civil.Now,
	}
}

// TasksResult is the envelope returned by GetTasks.
type TasksResult struct {
	Success        bool             `json:"success"`
	Count          int              `json:"count"`
	Data           []dida.Task      `json:"data"`
	FailedProjects []ProjectFailure `json:"failedProjects,omitempty"`
}

// MutationResult is the envelope shared by the update, delete and
// complete operations. Resolution failures are reported here with
// Success false, never as an error.
type MutationResult struct {
	Success bool       `json:"success"`
	Info    string     `json:"info"`
	Data    *dida.Task `json:"data,omitempty"`
}

// CreateResult is the envelope returned by CreateTask. When required
// input is missing, NeedMoreInfo is set and no remote call is made.
type CreateResult struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message,omitempty"`
	NeedMoreInfo bool       `json:"needMoreInfo,omitempty"`
	Required     []string   `json:"required,omitempty"`
	Optional     []string   `json:"optional,omitempty"`
	Hint         string     `json:"hint,omitempty"`
	Suggestions  string     `json:"suggestions,omitempty"`
	Data         *dida.Task `json:"data,omitempty"`
}

// CreateParams are the accepted inputs for creating a task. Nil pointer
// fields are omitted from the remote payload.
type CreateParams struct {
	Title       string
	Content     string
	Priority    *dida.Priority
	ProjectName string
	TagNames    []string
	StartDate   string
	DueDate     string
	IsAllDay    *bool
	Reminder    string
	ColumnName  string
}

// UpdateParams are the accepted inputs for updating a task. The task is
// resolved by id or exact title. Nil pointer fields keep the task's
// current value.
type UpdateParams struct {
	TaskID      string
	Title       *string
	Content     *string
	Priority    *dida.Priority
	ProjectName string
	TagNames    []string
	StartDate   *string
	DueDate     *string
	IsAllDay    *bool
	Reminder    *string
	Status      *dida.Status
}

// GetTasks aggregates all tasks and applies the query predicates.
func (s *Service) GetTasks(ctx context.Context, q Query) (*TasksResult, error) {
	snap, err := s.engine.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	// The aggregation backfills project names from the owning project;
	// tasks of an unnamed project still need the default label.
	for i := range snap.Tasks {
		if snap.Tasks[i].ProjectName == "" {
			snap.Tasks[i].ProjectName = projectNameByID(snap.Projects, snap.Tasks[i].ProjectID)
		}
	}

	matched := Filter(snap.Tasks, q, s.now())
	for i := range matched {
		matched[i].TimeZone = DefaultTimeZone
	}

	return &TasksResult{
		Success:        true,
		Count:          len(matched),
		Data:           matched,
		FailedProjects: snap.Failed,
	}, nil
}

// CreateTask validates the input, resolves project and column references
// and creates the task. Missing required input short-circuits before any
// remote call.
func (s *Service) CreateTask(ctx context.Context, p CreateParams) (*CreateResult, error) {
	var suggestions []string
	if p.StartDate == "" && p.DueDate == "" {
		suggestions = append(suggestions, "a start or due date")
	}
	if p.ProjectName == "" {
		suggestions = append(suggestions, "a project")
	}

	if strings.TrimSpace(p.Title) == "" {
		hint := "Please provide the following required information: title."
		if len(suggestions) > 0 {
			hint += " Consider also providing: " + strings.Join(suggestions, ", ") + "."
		}
		return &CreateResult{
			Success:      false,
			NeedMoreInfo: true,
			Message:      "more information is needed to create the task",
			Required:     []string{"title"},
			Optional:     suggestions,
			Hint:         hint,
		}, nil
	}

	var projectID, columnID string
	if p.ProjectName != "" {
		allProjects, err := s.api.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		var open []dida.Project
		for _, proj := range allProjects {
			if !proj.Closed {
				open = append(open, proj)
			}
		}
		if project := FindProject(open, p.ProjectName); project != nil {
			projectID = project.ID
		}
	}

	if projectID != "" && p.ColumnName != "" {
		data, err := s.api.GetProjectData(ctx, projectID)
		if err != nil {
			// Column resolution is best effort; the task still lands in
			// the project's default column.
			s.logger.Warn("column lookup failed, using default column",
				logging.Project(projectID),
				logging.Err(err),
			)
		} else if column := FindColumn(data.Columns, p.ColumnName); column != nil {
			columnID = column.ID
		} else {
			s.logger.Warn("column not found, using default column",
				logging.Project(projectID),
				slog.String("column", p.ColumnName),
			)
		}
	}

	priority := dida.PriorityNone
	if p.Priority != nil {
		priority = *p.Priority
	}
	status := dida.StatusTodo

	payload := dida.TaskPayload{
		Title:     p.Title,
		Content:   p.Content,
		Priority:  &priority,
		ProjectID: projectID,
		ColumnID:  columnID,
		IsAllDay:  p.IsAllDay,
		Status:    &status,
		Kind:      "TEXT",
		Reminder:  p.Reminder,
		TimeZone:  DefaultTimeZone,
		Tags:      p.TagNames,
	}
	if p.StartDate != "" {
		payload.StartDate = civil.ToRemote(p.StartDate)
	}
	if p.DueDate != "" {
		payload.DueDate = civil.ToRemote(p.DueDate)
	}

	created, err := s.api.CreateTask(ctx, payload)
	if err != nil {
		return nil, err
	}

	result := SimplifyResponse(*created, nil, "")
	if p.ProjectName != "" {
		result.ProjectName = p.ProjectName
	} else {
		result.ProjectName = DefaultProjectName
	}
	result.ProjectID = projectID

	out := &CreateResult{
		Success: true,
		Message: "task created",
		Data:    &result,
	}
	if len(suggestions) > 0 {
		out.Suggestions = "Next time, consider providing " + strings.Join(suggestions, " and ") + " so the task is easier to organize."
	}
	return out, nil
}

// UpdateTask resolves the referenced task and applies the changes.
// Status 2 routes to the complete path; status 0 is rejected because the
// open API has no operation to reopen a task.
func (s *Service) UpdateTask(ctx context.Context, p UpdateParams) (*MutationResult, error) {
	snap, err := s.engine.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	target := FindTask(snap.Tasks, p.TaskID)
	if target == nil {
		return notFound(p.TaskID), nil
	}

	if p.Status != nil && *p.Status == dida.StatusCompleted {
		return s.completeResolved(ctx, target, snap.Projects)
	}
	if p.Status != nil && *p.Status == dida.StatusTodo {
		return &MutationResult{
			Success: false,
			Info:    "reopening a completed task is not supported by the open API",
		}, nil
	}

	projectID := target.ProjectID
	if projectID == "" && p.ProjectName != "" {
		if project := FindProject(snap.Projects, p.ProjectName); project != nil {
			projectID = project.ID
		}
	}

	title := target.Title
	if p.Title != nil {
		title = *p.Title
	}
	content := target.Content
	if p.Content != nil {
		content = *p.Content
	}
	priority := target.Priority
	if p.Priority != nil {
		priority = *p.Priority
	}
	status := target.Status
	isAllDay := target.IsAllDay
	if p.IsAllDay != nil {
		isAllDay = p.IsAllDay
	}
	kind := target.Kind
	if kind == "" {
		kind = "TEXT"
	}

	payload := dida.TaskPayload{
		ID:        target.ID,
		Title:     title,
		Content:   content,
		Priority:  &priority,
		ProjectID: projectID,
		IsAllDay:  isAllDay,
		Status:    &status,
		Kind:      kind,
		TimeZone:  DefaultTimeZone,
		Tags:      p.TagNames,
	}

	if p.StartDate != nil {
		payload.StartDate = civil.ToRemote(*p.StartDate)
	} else {
		payload.StartDate = target.StartDate
	}
	if p.DueDate != nil {
		payload.DueDate = civil.ToRemote(*p.DueDate)
	} else {
		payload.DueDate = target.DueDate
	}
	if p.Reminder != nil {
		payload.Reminder = *p.Reminder
	} else {
		payload.Reminder = target.Reminder
	}

	updated, err := s.api.UpdateTask(ctx, target.ID, payload)
	if err != nil {
		return &MutationResult{Success: false, Info: fmt.Sprintf("updating the task failed: %v", err)}, nil
	}

	result := SimplifyResponse(*updated, snap.Projects, projectID)
	return &MutationResult{Success: true, Info: "task updated", Data: &result}, nil
}

// DeleteTask resolves the referenced task and deletes it.
func (s *Service) DeleteTask(ctx context.Context, taskID string) (*MutationResult, error) {
	snap, err := s.engine.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	target := FindTask(snap.Tasks, taskID)
	if target == nil {
		return notFound(taskID), nil
	}
	if target.ProjectID == "" {
		return &MutationResult{Success: false, Info: "deleting the task failed: missing projectId"}, nil
	}

	if err := s.api.DeleteTask(ctx, target.ProjectID, target.ID); err != nil {
		return &MutationResult{Success: false, Info: fmt.Sprintf("deleting the task failed: %v", err)}, nil
	}

	// The target is already normalized; only the response stamps are
	// still missing.
	deleted := *target
	if deleted.ProjectName == "" {
		deleted.ProjectName = projectNameByID(snap.Projects, deleted.ProjectID)
	}
	deleted.TimeZone = DefaultTimeZone

	return &MutationResult{
		Success: true,
		Info:    fmt.Sprintf("deleted task %q", target.Title),
		Data:    &deleted,
	}, nil
}

// CompleteTask resolves the referenced task and marks it completed.
func (s *Service) CompleteTask(ctx context.Context, taskID string) (*MutationResult, error) {
	snap, err := s.engine.Aggregate(ctx)
	if err != nil {
		return nil, err
	}

	target := FindTask(snap.Tasks, taskID)
	if target == nil {
		return notFound(taskID), nil
	}

	return s.completeResolved(ctx, target, snap.Projects)
}

// completeResolved marks an already resolved task as completed and
// re-fetches it so the response reflects the remote state. When the
// refresh cannot find the task, a completed copy of the stale record is
// returned instead.
func (s *Service) completeResolved(ctx context.Context, target *dida.Task, projects []dida.Project) (*MutationResult, error) {
	if target.ProjectID == "" {
		return &MutationResult{Success: false, Info: "completing the task failed: missing projectId"}, nil
	}

	if err := s.api.CompleteTask(ctx, target.ProjectID, target.ID); err != nil {
		return &MutationResult{Success: false, Info: fmt.Sprintf("completing the task failed: %v", err)}, nil
	}

	if tasks, err := s.api.ListTasks(ctx, target.ProjectID); err == nil {
		for _, fresh := range tasks {
			if fresh.ID == target.ID {
				result := SimplifyResponse(fresh, projects, target.ProjectID)
				return &MutationResult{Success: true, Info: "task completed", Data: &result}, nil
			}
		}
	} else {
		s.logger.Warn("task refresh after completion failed",
			logging.TaskID(target.ID),
			logging.Err(err),
		)
	}

	after := *target
	after.Status = dida.StatusCompleted
	after.IsCompleted = true
	after.TimeZone = DefaultTimeZone
	if after.ProjectName == "" {
		after.ProjectName = projectNameByID(projects, after.ProjectID)
	}
	return &MutationResult{Success: true, Info: "task completed", Data: &after}, nil
}

func notFound(ref string) *MutationResult {
	return &MutationResult{
		Success: false,
		Info:    fmt.Sprintf("no task with id or title %q", ref),
	}
}
