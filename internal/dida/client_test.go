package dida

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient("test-token", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return client, srv
}

func TestNewClient(t *testing.T) {
	t.Run("empty token", func(t *testing.T) {
		_, err := NewClient("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access token")
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient("tok")
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
	})
}

func TestListProjects(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/project", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode([]Project{
			{ID: "p1", Name: "Inbox"},
			{ID: "p2", Name: "Work", Closed: true},
		})
	})

	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Inbox", projects[0].Name)
	assert.True(t, projects[1].Closed)
}

func TestGetProjectData(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/project/p1/data", r.URL.Path)

		_ = json.NewEncoder(w).Encode(ProjectData{
			Project: Project{ID: "p1", Name: "Inbox"},
			Tasks:   []Task{{ID: "t1", Title: "Buy milk", Status: StatusTodo}},
			Columns: []Column{{ID: "c1", Name: "Done"}},
		})
	})

	data, err := client.GetProjectData(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Inbox", data.Project.Name)
	require.Len(t, data.Tasks, 1)
	assert.Equal(t, "Buy milk", data.Tasks[0].Title)
	require.Len(t, data.Columns, 1)
}

func TestListTasks(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/project/p1/data", r.URL.Path)

		_ = json.NewEncoder(w).Encode(ProjectData{
			Project: Project{ID: "p1"},
			Tasks:   []Task{{ID: "t1"}, {ID: "t2"}},
		})
	})

	tasks, err := client.ListTasks(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestCreateTask(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/task", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Buy milk", payload["title"])
		// Absent pointer fields must not appear on the wire.
		assert.NotContains(t, payload, "priority")
		assert.NotContains(t, payload, "isAllDay")

		_ = json.NewEncoder(w).Encode(Task{ID: "t1", Title: "Buy milk"})
	})

	task, err := client.CreateTask(context.Background(), TaskPayload{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "t1", task.ID)
}

func TestUpdateTask(t *testing.T) {
	priority := PriorityHigh
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/task/t1", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(PriorityHigh), payload["priority"])

		_ = json.NewEncoder(w).Encode(Task{ID: "t1", Title: "Buy milk", Priority: PriorityHigh})
	})

	task, err := client.UpdateTask(context.Background(), "t1", TaskPayload{
		ID:       "t1",
		Title:    "Buy milk",
		Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, task.Priority)
}

func TestDeleteTask(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/project/p1/task/t1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := client.DeleteTask(context.Background(), "p1", "t1")
	require.NoError(t, err)
}

func TestCompleteTask(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/project/p1/task/t1/complete", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	err := client.CompleteTask(context.Background(), "p1", "t1")
	require.NoError(t, err)
}

func TestAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorCode":"invalid_token"}`))
	})

	_, err := client.ListProjects(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "listProjects", apiErr.Op)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "invalid_token")
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListProjects(ctx)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, apiErr.Err, context.Canceled)
}
