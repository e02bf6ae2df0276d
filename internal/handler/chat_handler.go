package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

type ChatHandler struct {
	store storage.Store
}

func NewChatHandler(store storage.Store) *ChatHandler {
	return &ChatHandler{store: store}
}

// GetHistory returns a project's chat messages in creation order with the
// sender attached. Reconnecting WebSocket clients backfill through this.
func (h *ChatHandler) GetHistory(c *gin.Context) {
	messages, err := h.store.GetChatMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat messages"})
		return
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}
	c.JSON(http.StatusOK, messages)
}
