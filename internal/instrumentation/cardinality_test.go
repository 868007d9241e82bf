package instrumentation

import "testing"

func TestProjectLabel(t *testing.T) {
	tests := []struct {
		name    string
		project string
		want    string
	}{
		{
			name:    "empty project",
			project: "",
			want:    "none",
		},
		{
			name:    "named project",
			project: "Work",
			want:    "named",
		},
		{
			name:    "unicode project name",
			project: "工作清单",
			want:    "named",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectLabel(tt.project); got != tt.want {
				t.Errorf("ProjectLabel(%q) = %q, want %q", tt.project, got, tt.want)
			}
		})
	}
}
