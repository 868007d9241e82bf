package cmd

import (
	"testing"

	"github.com/teemow/didamcp/internal/dida"
	"github.com/teemow/didamcp/internal/task"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		projectName string
		keyword     string
		priority    int
		completed   string
		wantErr     bool
		check       func(t *testing.T, q task.Query)
	}{
		{
			name:     "defaults",
			mode:     "all",
			priority: -1,
			check: func(t *testing.T, q task.Query) {
				if q.Mode != task.ModeAll {
					t.Errorf("Mode = %q, want %q", q.Mode, task.ModeAll)
				}
				if q.Priority != nil {
					t.Errorf("Priority = %v, want nil", *q.Priority)
				}
				if q.Completed != nil {
					t.Errorf("Completed = %v, want nil", *q.Completed)
				}
			},
		},
		{
			name:     "today mode with priority",
			mode:     "today",
			priority: 5,
			check: func(t *testing.T, q task.Query) {
				if q.Mode != task.ModeToday {
					t.Errorf("Mode = %q, want %q", q.Mode, task.ModeToday)
				}
				if q.Priority == nil || *q.Priority != dida.PriorityHigh {
					t.Errorf("Priority = %v, want %d", q.Priority, dida.PriorityHigh)
				}
			},
		},
		{
			name:        "project and keyword",
			mode:        "all",
			projectName: "Work",
			keyword:     "report",
			priority:    -1,
			check: func(t *testing.T, q task.Query) {
				if q.ProjectName != "Work" {
					t.Errorf("ProjectName = %q, want %q", q.ProjectName, "Work")
				}
				if q.Keyword != "report" {
					t.Errorf("Keyword = %q, want %q", q.Keyword, "report")
				}
			},
		},
		{
			name:      "completed true",
			mode:      "all",
			priority:  -1,
			completed: "true",
			check: func(t *testing.T, q task.Query) {
				if q.Completed == nil || !*q.Completed {
					t.Errorf("Completed = %v, want true", q.Completed)
				}
			},
		},
		{
			name:      "completed false",
			mode:      "all",
			priority:  -1,
			completed: "false",
			check: func(t *testing.T, q task.Query) {
				if q.Completed == nil || *q.Completed {
					t.Errorf("Completed = %v, want false", q.Completed)
				}
			},
		},
		{
			name:     "invalid mode",
			mode:     "last_month",
			priority: -1,
			wantErr:  true,
		},
		{
			name:     "invalid priority",
			mode:     "all",
			priority: 2,
			wantErr:  true,
		},
		{
			name:      "invalid completed value",
			mode:      "all",
			priority:  -1,
			completed: "maybe",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := buildListQuery(tt.mode, tt.projectName, tt.keyword, tt.priority, tt.completed)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, q)
		})
	}
}

func TestResolveAccessToken(t *testing.T) {
	t.Run("flag takes precedence", func(t *testing.T) {
		t.Setenv("DIDA_ACCESS_TOKEN", "env-token")
		if got := resolveAccessToken("flag-token"); got != "flag-token" {
			t.Errorf("resolveAccessToken = %q, want %q", got, "flag-token")
		}
	})

	t.Run("falls back to environment", func(t *testing.T) {
		t.Setenv("DIDA_ACCESS_TOKEN", "env-token")
		if got := resolveAccessToken(""); got != "env-token" {
			t.Errorf("resolveAccessToken = %q, want %q", got, "env-token")
		}
	})

	t.Run("empty when neither set", func(t *testing.T) {
		t.Setenv("DIDA_ACCESS_TOKEN", "")
		if got := resolveAccessToken(""); got != "" {
			t.Errorf("resolveAccessToken = %q, want empty", got)
		}
	})
}
