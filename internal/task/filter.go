package task

import (
	"strings"
	"time"

	"github.com/teemow/didamcp/internal/civil"
	"github.com/teemow/didamcp/internal/dida"
)

// Mode selects the temporal bucket a query restricts to.
type Mode string

// Supported query modes.
const (
	ModeAll        Mode = "all"
	ModeToday      Mode = "today"
	ModeYesterday  Mode = "yesterday"
	ModeRecent7Day Mode = "recent_7_days"
)

// ValidMode reports whether m is a supported query mode. The empty mode
// is treated as ModeAll by Filter.
func ValidMode(m Mode) bool {
	switch m {
	case ModeAll, ModeToday, ModeYesterday, ModeRecent7Day, "":
		return true
	}
	return false
}

// Query is the predicate set applied over a normalized task list. Nil
// pointer fields mean "no filter on this attribute".
type Query struct {
	Mode        Mode
	Keyword     string
	Priority    *dida.Priority
	ProjectName string
	Completed   *bool
}

// Filter returns the tasks matching every predicate of q, evaluated
// against the reference time now. Tasks must already be normalized; date
// fields are expected in local civil form.
//
// A today query with an unspecified completed flag defaults to open work
// only. Other modes leave the flag unset.
func Filter(tasks []dida.Task, q Query, now time.Time) []dida.Task {
	mode := q.Mode
	if mode == "" {
		mode = ModeAll
	}

	effectiveCompleted := q.Completed
	if mode == ModeToday && effectiveCompleted == nil {
		f := false
		effectiveCompleted = &f
	}

	matched := make([]dida.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t, mode, q, effectiveCompleted, now) {
			matched = append(matched, t)
		}
	}
	return matched
}

// keep decides one task's fate. The spanning branch of the today mode and
// the stale-date branch of the recent_7_days mode decide inclusion
// directly, bypassing the keyword, priority and project predicates. That
// mirrors the established tool behavior; see DESIGN.md before changing it.
func keep(t dida.Task, mode Mode, q Query, completed *bool, now time.Time) bool {
	if completed != nil && t.IsCompleted != *completed {
		return false
	}

	switch mode {
	case ModeToday:
		if !civil.IsTodayAt(t.StartDate, now) && !dueTodayAt(t.DueDate, now) {
			// A task spans today when it started earlier and is either
			// open-ended or due on or after today.
			today := civil.DateOnly(now)
			start, startOK := civil.Parse(t.StartDate)
			due, dueOK := civil.Parse(t.DueDate)

			if startOK && start.Before(today) {
				if !dueOK || !due.Before(today) {
					return true
				}
			}
			return false
		}

	case ModeYesterday:
		if !civil.IsYesterdayAt(t.StartDate, now) && !civil.IsYesterdayAt(t.DueDate, now) {
			return false
		}

	case ModeRecent7Day:
		sevenDaysAgo := now.In(civil.Beijing).AddDate(0, 0, -7)
		start, startOK := civil.Parse(t.StartDate)
		due, dueOK := civil.Parse(t.DueDate)

		taskDate, taskDateOK := due, dueOK
		if !taskDateOK {
			taskDate, taskDateOK = start, startOK
		}
		if taskDateOK && taskDate.Before(sevenDaysAgo) {
			if !startOK || !start.Before(sevenDaysAgo) {
				return true
			}
			return false
		}
		// Dates inside the window fall through to the remaining
		// predicates without an explicit decision here.
	}

	if q.Keyword != "" {
		lower := strings.ToLower(q.Keyword)
		titleMatch := strings.Contains(strings.ToLower(t.Title), lower)
		contentMatch := strings.Contains(strings.ToLower(t.Content), lower)
		if !titleMatch && !contentMatch {
			return false
		}
	}

	if q.Priority != nil && t.Priority != *q.Priority {
		return false
	}

	if q.ProjectName != "" && !strings.Contains(t.ProjectName, q.ProjectName) {
		return false
	}

	return true
}

// dueTodayAt reports whether a normalized due date falls on today. An
// all-day due date is stored as midnight of the day after it is due, and
// normalization keeps that convention, so a due date at exactly
// tomorrow-midnight also counts as due today.
func dueTodayAt(due string, now time.Time) bool {
	if civil.IsTodayAt(due, now) {
		return true
	}

	t, ok := civil.Parse(due)
	if !ok {
		return false
	}
	if t.Hour() != 0 || t.Minute() != 0 || t.Second() != 0 {
		return false
	}
	return civil.DateOnly(t).Equal(civil.DateOnly(now).AddDate(0, 0, 1))
}
