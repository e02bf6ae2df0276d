package client

import (
	"encoding/json"
	"strings"
	"time"

	"synergysphere/internal/model"
)

// Canned development payloads, substituted by do() when DevMode is on and a
// call fails or is rejected as unauthenticated.

func fillMock(path string, out interface{}) bool {
	if out == nil {
		return false
	}
	value, ok := mockFor(path)
	if !ok {
		return false
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}

func mockFor(path string) (interface{}, bool) {
	switch {
	case path == "/api/analytics":
		return mockAnalytics(), true
	case path == "/api/analytics/projects":
		return mockProjectAnalytics(), true
	case path == "/api/analytics/tasks":
		return mockTaskAnalytics(), true
	case path == "/api/projects":
		return mockProjects(), true
	case path == "/api/tasks/my":
		return mockTasks(), true
	case path == "/api/team/members", path == "/api/team/managers":
		return mockUsers(), true
	case path == "/api/notifications":
		return []model.Notification{}, true
	case strings.HasSuffix(path, "/chat"):
		return []model.ChatMessage{}, true
	case strings.HasSuffix(path, "/tasks"):
		return mockTasks(), true
	case strings.HasSuffix(path, "/members"):
		return mockUsers(), true
	case path == "/api/auth/me", path == "/api/auth/user":
		return mockUsers()[0], true
	default:
		return nil, false
	}
}

func mockProjects() []model.Project {
	now := time.Now()
	return []model.Project{
		{ID: "mock1", Name: "Mock Project 1", Status: model.ProjectStatusActive, Priority: model.PriorityHigh, Progress: 50, CreatedAt: now, UpdatedAt: now},
		{ID: "mock2", Name: "Mock Project 2", Status: model.ProjectStatusCompleted, Priority: model.PriorityMedium, Progress: 100, CreatedAt: now, UpdatedAt: now},
		{ID: "mock3", Name: "Mock Project 3", Status: model.ProjectStatusOnHold, Priority: model.PriorityLow, Progress: 30, CreatedAt: now, UpdatedAt: now},
	}
}

func mockTasks() []model.Task {
	now := time.Now()
	return []model.Task{
		{ID: "task1", ProjectID: "mock1", Title: "Draft requirements", Status: model.TaskStatusTodo, Priority: model.PriorityHigh, CreatedAt: now, UpdatedAt: now},
		{ID: "task2", ProjectID: "mock1", Title: "Design review", Status: model.TaskStatusInProgress, Priority: model.PriorityMedium, CreatedAt: now, UpdatedAt: now},
		{ID: "task3", ProjectID: "mock2", Title: "Ship release", Status: model.TaskStatusDone, Priority: model.PriorityLow, CreatedAt: now, UpdatedAt: now},
		{ID: "task4", ProjectID: "mock3", Title: "Plan sprint", Status: model.TaskStatusTodo, Priority: model.PriorityHigh, CreatedAt: now, UpdatedAt: now},
		{ID: "task5", ProjectID: "mock2", Title: "Retro notes", Status: model.TaskStatusInProgress, Priority: model.PriorityMedium, CreatedAt: now, UpdatedAt: now},
	}
}

func mockUsers() []model.User {
	now := time.Now()
	return []model.User{
		{ID: "dev-user-123", Email: "dev@example.com", FirstName: "Developer", CreatedAt: now, UpdatedAt: now},
		{ID: "mock-user-2", Email: "sam@example.com", FirstName: "Sam", LastName: "Taylor", CreatedAt: now, UpdatedAt: now},
	}
}

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

func mockProjectAnalytics() []model.ProjectAnalytics {
	return []model.ProjectAnalytics{
		{ID: "mock1", Name: "Mock Project 1", Status: model.ProjectStatusActive, Progress: 50, TotalTasks: 2, CompletedTasks: 0},
		{ID: "mock2", Name: "Mock Project 2", Status: model.ProjectStatusCompleted, Progress: 100, TotalTasks: 2, CompletedTasks: 1, CompletionRate: 50},
		{ID: "mock3", Name: "Mock Project 3", Status: model.ProjectStatusOnHold, Progress: 30, TotalTasks: 1, CompletedTasks: 0},
	}
}

func mockTaskAnalytics() []model.TaskAnalytics {
	return []model.TaskAnalytics{
		{ProjectID: "mock1", ProjectName: "Mock Project 1", TotalTasks: 2,
			StatusDistribution:   model.TaskStatusCounts{Todo: 1, InProgress: 1},
			PriorityDistribution: model.TaskPriorityCounts{High: 1, Medium: 1}},
		{ProjectID: "mock2", ProjectName: "Mock Project 2", TotalTasks: 2,
			StatusDistribution:   model.TaskStatusCounts{InProgress: 1, Done: 1},
			PriorityDistribution: model.TaskPriorityCounts{Medium: 1, Low: 1}},
		{ProjectID: "mock3", ProjectName: "Mock Project 3", TotalTasks: 1,
			StatusDistribution:   model.TaskStatusCounts{Todo: 1},
			PriorityDistribution: model.TaskPriorityCounts{High: 1}},
	}
}
