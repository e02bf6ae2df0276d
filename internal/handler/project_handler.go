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

type ProjectHandler struct {
	store storage.Store
	log   *logger.Logger
}

func NewProjectHandler(store storage.Store, log *logger.Logger) *ProjectHandler {
	return &ProjectHandler{store: store, log: log}
}

// CreateProjectRequest carries the project fields plus the optional member
// list; members get a membership row and a notification on create.
type CreateProjectRequest struct {
	model.ProjectInput
	MemberIDs []string `json:"memberIds"`
}

// GetAll returns the projects the caller manages or is a member of.
func (h *ProjectHandler) GetAll(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	projects, err := h.store.GetProjects(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("fetching projects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, err := h.store.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Create validates the payload, stores the project with the caller as
// manager, and notifies every listed member except the creator.
func (h *ProjectHandler) Create(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.ManagerID = userID
	project, err := model.ValidateProject(req.ProjectInput)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreateProject(c.Request.Context(), project); err != nil {
		h.log.Error("creating project", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	for _, memberID := range req.MemberIDs {
		if memberID == userID {
			continue
		}
		if _, err := h.store.AddProjectMember(c.Request.Context(), project.ID, memberID, model.RoleMember); err != nil {
			h.log.Error("adding project member", "projectId", project.ID, "userId", memberID, "error", err)
			continue
		}
		notification := &model.Notification{
			UserID:  memberID,
			Type:    model.NotificationProjectCreated,
			Title:   "New Project Assignment",
			Message: fmt.Sprintf("You've been added to the project %q", project.Name),
		}
		if err := h.store.CreateNotification(c.Request.Context(), notification); err != nil {
			h.log.Error("creating member notification", "userId", memberID, "error", err)
		}
	}

	c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var updates storage.ProjectUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, err := h.store.UpdateProject(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// Delete removes the project and cascades to its tasks, members, and chat.
func (h *ProjectHandler) Delete(c *gin.Context) {
	err := h.store.DeleteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) GetTasks(c *gin.Context) {
	tasks, err := h.store.GetTasksByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *ProjectHandler) GetMembers(c *gin.Context) {
	members, err := h.store.GetProjectMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project members"})
		return
	}
	if members == nil {
		members = []model.User{}
	}
	c.JSON(http.StatusOK, members)
}
