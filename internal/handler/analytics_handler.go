package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"synergysphere/internal/logger"
	"synergysphere/internal/middleware"
	"synergysphere/internal/model"
	"synergysphere/internal/storage"
)

type AnalyticsHandler struct {
	store   storage.Store
	devMode bool
	log     *logger.Logger
}

func NewAnalyticsHandler(store storage.Store, devMode bool, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{store: store, devMode: devMode, log: log}
}

// GetOverview aggregates task and project counts over the caller's visible
// projects. In development a storage failure is substituted with fixed mock
// data so dashboards stay populated; the substitution is always logged.
func (h *AnalyticsHandler) GetOverview(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	projects, tasks, err := h.collect(c.Request.Context(), userID)
	if err != nil {
		if h.devMode {
			h.log.Warn("analytics storage failure, serving mock data", "error", err)
			c.JSON(http.StatusOK, mockAnalytics())
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch analytics"})
		return
	}

	analytics := model.Analytics{
		TaskDistribution: countTaskStatuses(tasks),
		TaskPriority:     countTaskPriorities(tasks),
	}
	for _, project := range projects {
		switch project.Status {
		case model.ProjectStatusActive:
			analytics.ProjectStatus.Active++
		case model.ProjectStatusOnHold:
			analytics.ProjectStatus.OnHold++
		case model.ProjectStatusCompleted:
			analytics.ProjectStatus.Completed++
		}
	}
	analytics.Summary = model.AnalyticsSummary{
		TotalProjects:  len(projects),
		TotalTasks:     len(tasks),
		CompletedTasks: analytics.TaskDistribution.Done,
		CompletionRate: completionRate(analytics.TaskDistribution.Done, len(tasks)),
	}

	c.JSON(http.StatusOK, analytics)
}

// GetProjects returns a per-project completion breakdown.
func (h *AnalyticsHandler) GetProjects(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	projects, err := h.store.GetProjects(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project analytics"})
		return
	}

	result := make([]model.ProjectAnalytics, 0, len(projects))
	for _, project := range projects {
		tasks, err := h.store.GetTasksByProject(c.Request.Context(), project.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch project analytics"})
			return
		}
		completed := countTaskStatuses(tasks).Done
		result = append(result, model.ProjectAnalytics{
			ID:             project.ID,
			Name:           project.Name,
			Status:         project.Status,
			Progress:       project.Progress,
			TotalTasks:     len(tasks),
			CompletedTasks: completed,
			CompletionRate: completionRate(completed, len(tasks)),
		})
	}

	c.JSON(http.StatusOK, result)
}

// GetTasks returns per-project status and priority distributions.
func (h *AnalyticsHandler) GetTasks(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	projects, err := h.store.GetProjects(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task analytics"})
		return
	}

	result := make([]model.TaskAnalytics, 0, len(projects))
	for _, project := range projects {
		tasks, err := h.store.GetTasksByProject(c.Request.Context(), project.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task analytics"})
			return
		}
		result = append(result, model.TaskAnalytics{
			ProjectID:            project.ID,
			ProjectName:          project.Name,
			TotalTasks:           len(tasks),
			StatusDistribution:   countTaskStatuses(tasks),
			PriorityDistribution: countTaskPriorities(tasks),
		})
	}

	c.JSON(http.StatusOK, result)
}

func (h *AnalyticsHandler) collect(ctx context.Context, userID string) ([]model.Project, []model.Task, error) {
	projects, err := h.store.GetProjects(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var tasks []model.Task
	for _, project := range projects {
		projectTasks, err := h.store.GetTasksByProject(ctx, project.ID)
		if err != nil {
			return nil, nil, err
		}
		tasks = append(tasks, projectTasks...)
	}
	return projects, tasks, nil
}

func countTaskStatuses(tasks []model.Task) model.TaskStatusCounts {
	var counts model.TaskStatusCounts
	for _, task := range tasks {
		switch task.Status {
		case model.TaskStatusTodo:
			counts.Todo++
		case model.TaskStatusInProgress:
			counts.InProgress++
		case model.TaskStatusDone:
			counts.Done++
		}
	}
	return counts
}

func countTaskPriorities(tasks []model.Task) model.TaskPriorityCounts {
	var counts model.TaskPriorityCounts
	for _, task := range tasks {
		switch task.Priority {
		case model.PriorityHigh:
			counts.High++
		case model.PriorityMedium:
			counts.Medium++
		case model.PriorityLow:
			counts.Low++
		}
	}
	return counts
}

func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// mockAnalytics is the fixed development payload used when storage is down.
func mockAnalytics() model.Analytics {
	return model.Analytics{
		TaskDistribution: model.TaskStatusCounts{Todo: 2, InProgress: 2, Done: 1},
		ProjectStatus:    model.ProjectStatusCounts{Active: 1, OnHold: 1, Completed: 1},
		TaskPriority:     model.TaskPriorityCounts{High: 2, Medium: 2, Low: 1},
		Summary: model.AnalyticsSummary{
			TotalProjects:  3,
			TotalTasks:     5,
			CompletedTasks: 1,
			CompletionRate: 20,
		},
	}
}
