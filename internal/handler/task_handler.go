package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/logger"
	"synergysphere/internal/middleware"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

type TaskHandler struct {
	store storage.Store
	log   *logger.Logger
}

func NewTaskHandler(store storage.Store, log *logger.Logger) *TaskHandler {
	return &TaskHandler{store: store, log: log}
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetMy returns the tasks assigned to the caller.
func (h *TaskHandler) GetMy(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	tasks, err := h.store.GetTasksByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// Create validates and stores a task; an assignee other than the creator
// gets a task_assigned notification.
func (h *TaskHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req model.TaskInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := model.ValidateTask(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreateTask(c.Request.Context(), task); err != nil {
		h.log.Error("creating task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	if task.AssigneeID != "" && task.AssigneeID != userID {
		notification := &model.Notification{
			UserID:  task.AssigneeID,
			Type:    model.NotificationTaskAssigned,
			Title:   "New Task Assigned",
			Message: fmt.Sprintf("You've been assigned the task %q", task.Title),
		}
		if err := h.store.CreateNotification(c.Request.Context(), notification); err != nil {
			h.log.Error("creating assignee notification", "userId", task.AssigneeID, "error", err)
		}
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var updates storage.TaskUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.store.UpdateTask(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateStatus handles the dedicated status transition endpoint; the store
// stamps or clears CompletedAt on done transitions.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	var req TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	task, err := h.store.UpdateTask(c.Request.Context(), c.Param("id"), storage.TaskUpdate{Status: &req.Status})
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task status"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	err := h.store.DeleteTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}
	c.Status(http.StatusNoContent)
}
