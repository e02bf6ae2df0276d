package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"synergysphere/client"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	// Arrange
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]model.Project{{ID: "p1", Name: "Real"}})
	}))
	defer server.Close()

	c := client.New(server.URL,
		client.WithTokenSource(&client.StaticTokenSource{AccessToken: "token-123"}))

	// Act
	projects, err := c.Projects(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
	require.Len(t, projects, 1)
	assert.Equal(t, "Real", projects[0].Name)
}

func TestClient_APIErrorCarriesServerMessage(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Project not found"})
	}))
	defer server.Close()

	c := client.New(server.URL)

	// Act
	_, err := c.Project(context.Background(), "missing")

	// Assert
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Project not found", apiErr.Message)
}

func TestClient_NotifiesAuthErrorHandler(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Access token required"})
	}))
	defer server.Close()

	var notified []int
	c := client.New(server.URL,
		client.WithAuthErrorHandler(client.AuthErrorFunc(func(status int) {
			notified = append(notified, status)
		})))

	// Act
	_, err := c.Projects(context.Background())

	// Assert
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, []int{http.StatusUnauthorized}, notified)
}

func TestClient_DevModeSubstitutesMockOn401(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	var notified int32
	c := client.New(server.URL,
		client.WithDevMode(true),
		client.WithAuthErrorHandler(client.AuthErrorFunc(func(int) {
			atomic.AddInt32(&notified, 1)
		})))

	// Act
	projects, err := c.Projects(context.Background())

	// Assert: the call succeeds on canned data, but the handler still heard
	// about the rejection
	require.NoError(t, err)
	assert.NotEmpty(t, projects)
	assert.Equal(t, int32(1), atomic.LoadInt32(&notified))
}

func TestClient_DevModeSubstitutesMockOnNetworkFailure(t *testing.T) {
	// Arrange: nothing is listening here
	c := client.New("http://127.0.0.1:1", client.WithDevMode(true))

	// Act
	analytics, err := c.Analytics(context.Background())

	// Assert
	require.NoError(t, err)
	require.NotNil(t, analytics)
	assert.Equal(t, 3, analytics.Summary.TotalProjects)
	assert.Equal(t, 5, analytics.Summary.TotalTasks)
}

func TestClient_NetworkFailureWithoutDevMode(t *testing.T) {
	// Arrange
	c := client.New("http://127.0.0.1:1")

	// Act
	_, err := c.Projects(context.Background())

	// Assert
	assert.Error(t, err)
}

func TestClient_UpdateTaskStatus(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/tasks/task-1/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "done", body["status"])

		now := time.Now()
		json.NewEncoder(w).Encode(model.Task{ID: "task-1", Status: model.TaskStatusDone, CompletedAt: &now})
	}))
	defer server.Close()

	c := client.New(server.URL)

	// Act
	task, err := c.UpdateTaskStatus(context.Background(), "task-1", "done")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusDone, task.Status)
	assert.NotNil(t, task.CompletedAt)
}

func TestClient_UpdateProjectSendsOnlySetFields(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "status")
		assert.NotContains(t, body, "name")

		json.NewEncoder(w).Encode(model.Project{ID: "p1", Status: model.ProjectStatusOnHold})
	}))
	defer server.Close()

	c := client.New(server.URL)
	status := model.ProjectStatusOnHold

	// Act
	project, err := c.UpdateProject(context.Background(), "p1", storage.ProjectUpdate{Status: &status})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, model.ProjectStatusOnHold, project.Status)
}

func TestClient_DeleteReturnsNilOnNoContent(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c := client.New(server.URL)

	// Act + Assert
	assert.NoError(t, c.DeleteProject(context.Background(), "p1"))
}

type countingTokenSource struct {
	calls int32
	err   error
}

func (s *countingTokenSource) Token(context.Context) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return "", s.err
	}
	return "fresh-token", nil
}

func TestCachingTokenSource_ReusesUntilTTL(t *testing.T) {
	// Arrange
	src := &countingTokenSource{}
	caching := client.NewCachingTokenSource(src, time.Hour)

	// Act
	for i := 0; i < 5; i++ {
		token, err := caching.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)
	}

	// Assert
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestCachingTokenSource_RefetchesAfterExpiry(t *testing.T) {
	// Arrange: zero TTL means every call is expired
	src := &countingTokenSource{}
	caching := client.NewCachingTokenSource(src, 0)

	// Act
	_, err := caching.Token(context.Background())
	require.NoError(t, err)
	_, err = caching.Token(context.Background())
	require.NoError(t, err)

	// Assert
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}

func TestCachingTokenSource_PropagatesSourceError(t *testing.T) {
	// Arrange
	src := &countingTokenSource{err: errors.New("provider down")}
	caching := client.NewCachingTokenSource(src, time.Hour)

	// Act
	_, err := caching.Token(context.Background())

	// Assert
	assert.Error(t, err)
}
