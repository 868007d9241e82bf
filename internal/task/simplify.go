package task

import (
	"github.com/teemow/didamcp/internal/civil"
	"github.com/teemow/didamcp/internal/dida"
)

// DefaultProjectName is the label used when a task's owning project
// cannot be resolved. It matches the name of the built-in inbox list.
const DefaultProjectName = "默认清单"

// DefaultTimeZone is stamped on every outgoing task record.
const DefaultTimeZone = "Asia/Shanghai"

// SimplifyResponse prepares a task freshly returned by the API for the
// tool boundary: wire-format dates become local civil strings, the
// project name is backfilled from the known project list and the time
// zone label is stamped on. Tasks that already went through Normalize
// must not be passed here, or midnight due dates would be advanced twice.
func SimplifyResponse(t dida.Task, projects []dida.Project, projectID string) dida.Task {
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
		pid := projectID
		if pid == "" {
			pid = t.ProjectID
		}
		t.ProjectName = projectNameByID(projects, pid)
	}
	t.TimeZone = DefaultTimeZone

	return t
}

// projectNameByID returns the name of the project with the given id, or
// DefaultProjectName when it is unknown.
func projectNameByID(projects []dida.Project, id string) string {
	for i := range projects {
		if projects[i].ID == id {
			return projects[i].Name
		}
	}
	return DefaultProjectName
}
