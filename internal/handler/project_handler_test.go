package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"synergysphere/internal/handler"
	"synergysphere/internal/logger"
	"synergysphere/internal/middleware"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupAPI wires the protected routes against a memory store with a stub
// authenticator that fixes the caller identity.
func setupAPI(store storage.Store, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	log := logger.New("handler-test")

	projectHandler := handler.NewProjectHandler(store, log)
	taskHandler := handler.NewTaskHandler(store, log)
	teamHandler := handler.NewTeamHandler(store, log)
	notificationHandler := handler.NewNotificationHandler(store)
	analyticsHandler := handler.NewAnalyticsHandler(store, false, log)
	chatHandler := handler.NewChatHandler(store)

	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})

	api.GET("/projects", projectHandler.GetAll)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects/:id", projectHandler.GetByID)
	api.PUT("/projects/:id", projectHandler.Update)
	api.DELETE("/projects/:id", projectHandler.Delete)
	api.GET("/projects/:id/tasks", projectHandler.GetTasks)
	api.GET("/projects/:id/members", projectHandler.GetMembers)
	api.GET("/projects/:id/chat", chatHandler.GetHistory)

	api.GET("/tasks/my", taskHandler.GetMy)
	api.POST("/tasks", taskHandler.Create)
	api.PUT("/tasks/:id", taskHandler.Update)
	api.PATCH("/tasks/:id/status", taskHandler.UpdateStatus)
	api.DELETE("/tasks/:id", taskHandler.Delete)

	api.GET("/team/members", teamHandler.GetMembers)
	api.GET("/team/managers", teamHandler.GetManagers)
	api.POST("/team/invite", teamHandler.Invite)

	api.GET("/notifications", notificationHandler.GetAll)
	api.PATCH("/notifications/:id/read", notificationHandler.MarkRead)

	api.GET("/analytics", analyticsHandler.GetOverview)
	api.GET("/analytics/projects", analyticsHandler.GetProjects)
	api.GET("/analytics/tasks", analyticsHandler.GetTasks)

	return r
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestProjectCreate_Defaults(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	// Act
	resp := performJSON(router, "POST", "/api/projects", gin.H{"name": "Website Redesign"})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	var project model.Project
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &project))
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "Website Redesign", project.Name)
	assert.Equal(t, "user-1", project.ManagerID)
	assert.Equal(t, model.ProjectStatusActive, project.Status)
	assert.Equal(t, model.PriorityMedium, project.Priority)
	assert.Equal(t, 0, project.Progress)
}

func TestProjectCreate_MissingName(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	// Act
	resp := performJSON(router, "POST", "/api/projects", gin.H{"description": "no name"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "project name is required")

	// Nothing persisted
	projects, err := store.GetProjects(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectCreate_NotifiesMembers(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	// Act: creator listed among members must not be notified
	resp := performJSON(router, "POST", "/api/projects", gin.H{
		"name":      "Team Project",
		"memberIds": []string{"user-1", "user-2"},
	})

	// Assert
	assert.Equal(t, http.StatusCreated, resp.Code)

	creatorNotifications, err := store.GetNotifications(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, creatorNotifications)

	memberNotifications, err := store.GetNotifications(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, memberNotifications, 1)
	assert.Equal(t, model.NotificationProjectCreated, memberNotifications[0].Type)
	assert.Equal(t, "New Project Assignment", memberNotifications[0].Title)
	assert.False(t, memberNotifications[0].IsRead)
}

func TestProjectGetByID_NotFound(t *testing.T) {
	// Arrange
	router := setupAPI(storage.NewMemoryStore(), "user-1")

	// Act
	resp := performJSON(router, "GET", "/api/projects/missing", nil)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Project not found")
}

func TestProjectUpdate_PartialFields(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	created := performJSON(router, "POST", "/api/projects", gin.H{"name": "Before"})
	require.Equal(t, http.StatusCreated, created.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &project))

	// Act
	resp := performJSON(router, "PUT", "/api/projects/"+project.ID, gin.H{
		"status":   model.ProjectStatusOnHold,
		"progress": 40,
	})

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	var updated model.Project
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "Before", updated.Name)
	assert.Equal(t, model.ProjectStatusOnHold, updated.Status)
	assert.Equal(t, 40, updated.Progress)
}

// The full lifecycle: create a project, add a task, complete it, then delete
// the project and observe the cascade through the list endpoints.
func TestProjectLifecycle(t *testing.T) {
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	resp := performJSON(router, "POST", "/api/projects", gin.H{
		"name":     "Website Redesign",
		"priority": "high",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &project))
	assert.Equal(t, "high", project.Priority)

	resp = performJSON(router, "POST", "/api/tasks", gin.H{
		"projectId": project.ID,
		"title":     "Draft landing page",
	})
	require.Equal(t, http.StatusCreated, resp.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &task))
	assert.Equal(t, model.TaskStatusTodo, task.Status)
	assert.Nil(t, task.CompletedAt)

	resp = performJSON(router, "PATCH", "/api/tasks/"+task.ID+"/status", gin.H{"status": "done"})
	require.Equal(t, http.StatusOK, resp.Code)
	var done model.Task
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &done))
	assert.Equal(t, model.TaskStatusDone, done.Status)
	assert.NotNil(t, done.CompletedAt)

	resp = performJSON(router, "DELETE", "/api/projects/"+project.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// Task list for the deleted project is an empty array, not an error
	resp = performJSON(router, "GET", "/api/projects/"+project.ID+"/tasks", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, "[]", resp.Body.String())

	resp = performJSON(router, "GET", "/api/tasks/my", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestTaskUpdateStatus_MissingStatus(t *testing.T) {
	// Arrange
	router := setupAPI(storage.NewMemoryStore(), "user-1")

	// Act
	resp := performJSON(router, "PATCH", "/api/tasks/task-1/status", gin.H{})

	// Assert
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Status is required")
}

func TestTaskCreate_NotifiesAssignee(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	// Act
	resp := performJSON(router, "POST", "/api/tasks", gin.H{
		"projectId":  "project-1",
		"title":      "Review designs",
		"assigneeId": "user-2",
	})

	// Assert
	require.Equal(t, http.StatusCreated, resp.Code)

	notifications, err := store.GetNotifications(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationTaskAssigned, notifications[0].Type)
	assert.Equal(t, "New Task Assigned", notifications[0].Title)
}

func TestTaskCreate_SelfAssignmentSkipsNotification(t *testing.T) {
	// Arrange
	store := storage.NewMemoryStore()
	router := setupAPI(store, "user-1")

	// Act
	resp := performJSON(router, "POST", "/api/tasks", gin.H{
		"projectId":  "project-1",
		"title":      "My own task",
		"assigneeId": "user-1",
	})

	// Assert
	require.Equal(t, http.StatusCreated, resp.Code)

	notifications, err := store.GetNotifications(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestTaskDelete_NotFound(t *testing.T) {
	// Arrange
	router := setupAPI(storage.NewMemoryStore(), "user-1")

	// Act
	resp := performJSON(router, "DELETE", "/api/tasks/missing", nil)

	// Assert
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Task not found")
}
