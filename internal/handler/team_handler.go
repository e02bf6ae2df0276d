package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"synergysphere/internal/logger"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

type TeamHandler struct {
	store storage.Store
	log   *logger.Logger
}

func NewTeamHandler(store storage.Store, log *logger.Logger) *TeamHandler {
	return &TeamHandler{store: store, log: log}
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role"`
}

func (h *TeamHandler) GetMembers(c *gin.Context) {
	users, err := h.store.GetAllUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *TeamHandler) GetManagers(c *gin.Context) {
	managers, err := h.store.GetManagers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch managers"})
		return
	}
	if managers == nil {
		managers = []model.User{}
	}
	c.JSON(http.StatusOK, managers)
}

// Invite provisions a local user row for the email and records a welcome
// notification. No email is sent; the account exists immediately.
func (h *TeamHandler) Invite(c *gin.Context) {
	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleMember
	}

	localPart := strings.Split(req.Email, "@")[0]
	user := &model.User{
		ID:              uuid.NewString(),
		Email:           strings.ToLower(req.Email),
		FirstName:       localPart,
		ProfileImageURL: avatarURL(localPart),
	}

	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.log.Error("creating invited user", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invite team member"})
		return
	}

	notification := &model.Notification{
		UserID:  user.ID,
		Type:    model.NotificationTeamInvitation,
		Title:   "Welcome to SynergySphere",
		Message: fmt.Sprintf("You've been invited to join the team as a %s.", role),
	}
	if err := h.store.CreateNotification(c.Request.Context(), notification); err != nil {
		h.log.Error("creating invite notification", "userId", user.ID, "error", err)
	}

	c.JSON(http.StatusCreated, user)
}
