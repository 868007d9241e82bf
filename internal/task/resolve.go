package task

import (
	"strings"

	"github.com/teemow/didamcp/internal/dida"
)

// FindTask resolves a task reference against an aggregated task set.
// Tier 1 is an exact id match, tier 2 an exact title match. The first hit
// in input order wins; duplicate titles are not disambiguated. A nil
// result means no task matched.
func FindTask(tasks []dida.Task, ref string) *dida.Task {
	for i := range tasks {
		if tasks[i].ID == ref {
			return &tasks[i]
		}
	}
	for i := range tasks {
		if tasks[i].Title == ref {
			return &tasks[i]
		}
	}
	return nil
}

// FindProject resolves a project-name reference. Tiers, first satisfied
// tier wins: exact name match, case-insensitive exact match, then
// case-insensitive substring containment in either direction.
func FindProject(projects []dida.Project, ref string) *dida.Project {
	for i := range projects {
		if projects[i].Name == ref {
			return &projects[i]
		}
	}

	lower := strings.ToLower(ref)
	for i := range projects {
		if strings.ToLower(projects[i].Name) == lower {
			return &projects[i]
		}
	}

	for i := range projects {
		name := strings.ToLower(projects[i].Name)
		if strings.Contains(name, lower) || strings.Contains(lower, name) {
			return &projects[i]
		}
	}
	return nil
}

// FindColumn resolves a kanban column by name: exact match, then
// case-insensitive exact match. There is no substring tier. A nil result
// means the caller should use the project's default column.
func FindColumn(columns []dida.Column, name string) *dida.Column {
	for i := range columns {
		if columns[i].Name == name {
			return &columns[i]
		}
	}

	lower := strings.ToLower(name)
	for i := range columns {
		if strings.ToLower(columns[i].Name) == lower {
			return &columns[i]
		}
	}
	return nil
}
