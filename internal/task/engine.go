package task

import (
	"context"
	"log/slog"

	"github.com/teemow/didamcp/internal/civil"
	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/logging"
)

// API is the subset of the Dida365 client the engine and service depend
// on. *dida.Client satisfies it; tests substitute a fake.
type API interface {
	ListProjects(ctx context.Context) ([]dida.Project, error)
	GetProjectData(ctx context.Context, projectID string) (*dida.ProjectData, error)
	ListTasks(ctx context.Context, projectID string) ([]dida.Task, error)
	CreateTask(ctx context.Context, payload dida.TaskPayload) (*dida.Task, error)
	UpdateTask(ctx context.Context, taskID string, payload dida.TaskPayload) (*dida.Task, error)
	DeleteTask(ctx context.Context, projectID, taskID string) error
	CompleteTask(ctx context.Context, projectID, taskID string) error
}

// ProjectFailure records a project whose task fetch failed during
// aggregation. Other projects still contribute to the snapshot.
type ProjectFailure struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Err         error  `json:"-"`
}

// Snapshot is the result of one aggregation pass. It is owned by the
// caller and discarded after the operation that requested it; nothing in
// it is shared across calls.
type Snapshot struct {
	// Tasks holds every task of every open project, normalized: status
	// collapsed, dates in local civil form, project metadata stamped on.
	Tasks []dida.Task

	// Projects are the open (non-closed) projects.
	Projects []dida.Project

	// CompletedColumns holds the ids of kanban columns of type COMPLETED
	// seen during this pass. Advisory signal only.
	CompletedColumns map[string]struct{}

	// Failed lists projects whose task fetch failed.
	Failed []ProjectFailure
}

// Engine aggregates tasks across projects into normalized snapshots.
type Engine struct {
	api    API
	logger *slog.Logger
}

// NewEngine creates an Engine. A nil logger falls back to slog.Default.
func NewEngine(api API, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{api: api, logger: logger}
}

// Aggregate fetches all open projects and their tasks and returns them
// normalized. A failed project list is fatal; a failed task fetch for a
// single project is recorded in Snapshot.Failed and the remaining
// projects are still aggregated.
func (e *Engine) Aggregate(ctx context.Context) (*Snapshot, error) {
	allProjects, err := e.api.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		CompletedColumns: make(map[string]struct{}),
	}
	for _, p := range allProjects {
		if !p.Closed {
			snap.Projects = append(snap.Projects, p)
		}
	}

	for _, project := range snap.Projects {
		if project.ID == "" {
			continue
		}

		for _, col := range project.Columns {
			if col.Type == dida.ColumnTypeCompleted {
				snap.CompletedColumns[col.ID] = struct{}{}
			}
		}

		data, err := e.api.GetProjectData(ctx, project.ID)
		if err != nil {
			e.logger.Warn("skipping project after failed task fetch",
				logging.Project(project.Name),
				logging.Err(err),
			)
			snap.Failed = append(snap.Failed, ProjectFailure{
				ProjectID:   project.ID,
				ProjectName: project.Name,
				Err:         err,
			})
			continue
		}

		for _, col := range data.Columns {
			if col.Type == dida.ColumnTypeCompleted {
				snap.CompletedColumns[col.ID] = struct{}{}
			}
		}

		for _, t := range data.Tasks {
			Normalize(&t, project)
			snap.Tasks = append(snap.Tasks, t)
		}
	}

	return snap, nil
}

// Normalize rewrites a freshly fetched task in place: status collapsed to
// the {todo, completed} pair, all date fields converted to local civil
// time, and project metadata stamped on from the owning project.
func Normalize(t *dida.Task, owner dida.Project) {
	// The API may emit a transient status 1 for tasks sitting in a
	// completed kanban column. Collapse 1 and 2 to completed.
	completed := t.IsCompleted || t.Status == 1 || t.Status == dida.StatusCompleted
	t.IsCompleted = completed
	if completed {
		t.Status = dida.StatusCompleted
	} else {
		t.Status = dida.StatusTodo
	}

	if t.StartDate != "" {
		t.StartDate = civil.FromRemote(t.StartDate)
	}
	if t.DueDate != "" {
		t.DueDate = civil.FormatDueDate(t.DueDate)
	}
	if t.CompletedTime != "" {
		t.CompletedTime = civil.FromRemote(t.CompletedTime)
	}
	if t.CreatedTime != "" {
		t.CreatedTime = civil.FromRemote(t.CreatedTime)
	}
	if t.ModifiedTime != "" {
		t.ModifiedTime = civil.FromRemote(t.ModifiedTime)
	}

	if t.ProjectName == "" {
		t.ProjectName = owner.Name
	}
	t.ProjectID = owner.ID
	t.ProjectKind = owner.Kind

	for i := range t.Items {
		item := &t.Items[i]
		if item.StartDate != "" {
			item.StartDate = civil.FromRemote(item.StartDate)
		}
		if item.CompletedTime != "" {
			item.CompletedTime = civil.FromRemote(item.CompletedTime)
		}
	}
}
