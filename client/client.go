// Package client is a typed Go client for the SynergySphere API. It attaches
// a bearer token from an injected TokenSource, reports 401/403 responses to an
// injected AuthErrorHandler, and in development mode substitutes canned data
// when a call fails so consumers stay populated without a live backend.
// Callers cannot distinguish mock data from a real response except by the
// DevMode setting itself.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

// AuthErrorHandler is notified of 401/403 responses. It is injected per
// client instance so tests can observe auth failures in isolation.
type AuthErrorHandler interface {
	HandleAuthError(status int)
}

// AuthErrorFunc adapts a function to AuthErrorHandler.
type AuthErrorFunc func(status int)

func (f AuthErrorFunc) HandleAuthError(status int) { f(status) }

// TokenSource supplies the bearer token for outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource returns a fixed token.
type StaticTokenSource struct {
	AccessToken string
}

func (s *StaticTokenSource) Token(context.Context) (string, error) {
	return s.AccessToken, nil
}

// CachingTokenSource wraps another source and reuses its token until an
// approximate expiry elapses. Expiry is time-based, not parsed from the
// token, so a token revoked upstream may be reused until the TTL runs out.
type CachingTokenSource struct {
	src TokenSource
	ttl time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewCachingTokenSource(src TokenSource, ttl time.Duration) *CachingTokenSource {
	return &CachingTokenSource{src: src, ttl: ttl}
}

func (c *CachingTokenSource) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	token, err := c.src.Token(ctx)
	if err != nil {
		return "", err
	}
	c.token = token
	c.expiresAt = time.Now().Add(c.ttl)
	return token, nil
}

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	authErrors AuthErrorHandler
	devMode    bool
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokens = src }
}

func WithAuthErrorHandler(h AuthErrorHandler) Option {
	return func(c *Client) { c.authErrors = h }
}

// WithDevMode enables the canned-data substitution on failed calls.
func WithDevMode(enabled bool) Option {
	return func(c *Client) { c.devMode = enabled }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateProjectRequest mirrors the project-create payload: project fields
// plus the member ids to add on creation.
type CreateProjectRequest struct {
	model.ProjectInput
	MemberIDs []string `json:"memberIds,omitempty"`
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects)
	return projects, err
}

func (c *Client) Project(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+id, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, updates storage.ProjectUpdate) (*model.Project, error) {
	var project model.Project
	if err := c.do(ctx, http.MethodPut, "/api/projects/"+id, updates, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+id, nil, nil)
}

func (c *Client) ProjectTasks(ctx context.Context, id string) ([]model.Task, error) {
	var tasks []model.Task
	err := c.do(ctx, http.MethodGet, "/api/projects/"+id+"/tasks", nil, &tasks)
	return tasks, err
}

func (c *Client) ProjectMembers(ctx context.Context, id string) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, http.MethodGet, "/api/projects/"+id+"/members", nil, &users)
	return users, err
}

func (c *Client) ChatHistory(ctx context.Context, projectID string) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	err := c.do(ctx, http.MethodGet, "/api/projects/"+projectID+"/chat", nil, &messages)
	return messages, err
}

func (c *Client) MyTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/my", nil, &tasks)
	return tasks, err
}

func (c *Client) CreateTask(ctx context.Context, req model.TaskInput) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, updates storage.TaskUpdate) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, updates, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string) (*model.Task, error) {
	var task model.Task
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id+"/status", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) TeamMembers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, http.MethodGet, "/api/team/members", nil, &users)
	return users, err
}

func (c *Client) TeamManagers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := c.do(ctx, http.MethodGet, "/api/team/managers", nil, &users)
	return users, err
}

func (c *Client) InviteTeamMember(ctx context.Context, email, role string) (*model.User, error) {
	var user model.User
	body := map[string]string{"email": email, "role": role}
	if err := c.do(ctx, http.MethodPost, "/api/team/invite", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications)
	return notifications, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/api/notifications/"+id+"/read", nil, nil)
}

func (c *Client) Analytics(ctx context.Context) (*model.Analytics, error) {
	var analytics model.Analytics
	if err := c.do(ctx, http.MethodGet, "/api/analytics", nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

func (c *Client) ProjectAnalytics(ctx context.Context) ([]model.ProjectAnalytics, error) {
	var result []model.ProjectAnalytics
	err := c.do(ctx, http.MethodGet, "/api/analytics/projects", nil, &result)
	return result, err
}

func (c *Client) TaskAnalytics(ctx context.Context) ([]model.TaskAnalytics, error) {
	var result []model.TaskAnalytics
	err := c.do(ctx, http.MethodGet, "/api/analytics/tasks", nil, &result)
	return result, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		// A token fetch failure degrades to an unauthenticated request;
		// the server's 401 then drives the usual error path.
		if token, err := c.tokens.Token(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.devMode && fillMock(path, out) {
			return nil
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.authErrors != nil {
			c.authErrors.HandleAuthError(resp.StatusCode)
		}
		if c.devMode && fillMock(path, out) {
			return nil
		}
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func errorMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
