package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/middleware"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

type NotificationHandler struct {
	store storage.Store
}

func NewNotificationHandler(store storage.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// GetAll returns the caller's notifications, newest first.
func (h *NotificationHandler) GetAll(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	notifications, err := h.store.GetNotifications(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	err := h.store.MarkNotificationRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	c.Status(http.StatusNoContent)
}
