package dida

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/teemow/didamcp/internal/logging"
)

const (
	// DefaultBaseURL is the Dida365 open API endpoint.
	DefaultBaseURL = "https://api.dida365.com/open/v1"

	// DefaultTimeout bounds every remote call. A hung API call must not
	// block a tool invocation indefinitely.
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of an error response is kept for the
	// error message.
	maxErrorBody = 512
)

// Client is a Dida365 open API client authenticated with a bearer token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a new Dida365 client. The access token must not be
// empty; serving requests without a credential is a configuration error
// caught at startup.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("dida: access token must not be empty (set DIDA_ACCESS_TOKEN)")
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// do performs one API request. A non-2xx response or transport failure is
// returned as an *APIError; it is never swallowed here.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("dida API request",
		logging.Operation(op),
		slog.String("method", method),
		slog.String("path", path),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		truncated, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("dida API request failed",
			logging.Operation(op),
			slog.Int("status", resp.StatusCode),
			slog.Duration(logging.KeyDuration, time.Since(start)),
		)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Body: string(truncated)}
	}

	c.logger.Debug("dida API request done",
		logging.Operation(op),
		slog.Int("status", resp.StatusCode),
		slog.Duration(logging.KeyDuration, time.Since(start)),
	)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// ListProjects returns all projects of the account, including closed ones.
// Callers that aggregate tasks filter out closed projects themselves.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, "listProjects", http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectData returns a project's full data: the project itself, its
// tasks and its kanban columns.
func (c *Client) GetProjectData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.do(ctx, "getProjectData", http.MethodGet, "/project/"+projectID+"/data", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListTasks returns the tasks of a single project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	data, err := c.GetProjectData(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return data.Tasks, nil
}

// CreateTask creates a task and returns the created record as the API
// reports it, with wire-format timestamps.
func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (*Task, error) {
	var task Task
	if err := c.do(ctx, "createTask", http.MethodPost, "/task", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask updates a task by id. The payload should carry the full
// desired state; absent pointer fields are omitted from the request body.
func (c *Client) UpdateTask(ctx context.Context, taskID string, payload TaskPayload) (*Task, error) {
	var task Task
	if err := c.do(ctx, "updateTask", http.MethodPost, "/task/"+taskID, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task from its project.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	return c.do(ctx, "deleteTask", http.MethodDelete, "/project/"+projectID+"/task/"+taskID, nil, nil)
}

// CompleteTask marks a task as completed. The open API offers no inverse
// operation.
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	return c.do(ctx, "completeTask", http.MethodPost, "/project/"+projectID+"/task/"+taskID+"/complete", struct{}{}, nil)
}
