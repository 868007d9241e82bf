package dida

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPriority(t *testing.T) {
	tests := []struct {
		name     string
		priority Priority
		want     bool
	}{
		{"none", PriorityNone, true},
		{"low", PriorityLow, true},
		{"medium", PriorityMedium, true},
		{"high", PriorityHigh, true},
		{"unknown 2", Priority(2), false},
		{"unknown 4", Priority(4), false},
		{"negative", Priority(-1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPriority(tt.priority))
		})
	}
}

func TestTaskPayloadOmitsAbsentFields(t *testing.T) {
	encoded, err := json.Marshal(TaskPayload{Title: "Buy milk"})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.Equal(t, map[string]any{"title": "Buy milk"}, fields)
}

func TestTaskPayloadKeepsZeroPointerValues(t *testing.T) {
	priority := PriorityNone
	allDay := false
	encoded, err := json.Marshal(TaskPayload{Title: "t", Priority: &priority, IsAllDay: &allDay})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(encoded, &fields))
	assert.Equal(t, float64(0), fields["priority"])
	assert.Equal(t, false, fields["isAllDay"])
}

func TestAPIErrorMessage(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		err := &APIError{Op: "createTask", StatusCode: 403, Body: "forbidden"}
		assert.Contains(t, err.Error(), "createTask")
		assert.Contains(t, err.Error(), "403")
		assert.Contains(t, err.Error(), "forbidden")
	})

	t.Run("wrapped error", func(t *testing.T) {
		inner := errors.New("connection refused")
		err := &APIError{Op: "listProjects", Err: inner}
		assert.Contains(t, err.Error(), "listProjects")
		assert.ErrorIs(t, err, inner)
	})
}
