package model

// Aggregate shapes served by the analytics endpoints and consumed by the
// API client. Counts are computed per request over the caller's visible
// projects; nothing here is stored.

type TaskStatusCounts struct {
	Todo       int `json:"todo"`
	InProgress int `json:"in_progress"`
	Done       int `json:"done"`
}

type ProjectStatusCounts struct {
	Active    int `json:"active"`
	OnHold    int `json:"on_hold"`
	Completed int `json:"completed"`
}

type TaskPriorityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type AnalyticsSummary struct {
	TotalProjects  int     `json:"totalProjects"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

type Analytics struct {
	TaskDistribution TaskStatusCounts    `json:"taskDistribution"`
	ProjectStatus    ProjectStatusCounts `json:"projectStatus"`
	TaskPriority     TaskPriorityCounts  `json:"taskPriority"`
	Summary          AnalyticsSummary    `json:"summary"`
}

// ProjectAnalytics is the per-project completion breakdown. CompletionRate is
// derived from task state and reported alongside the independently stored
// Progress field, which is never overwritten from task counts.
type ProjectAnalytics struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Status         string  `json:"status"`
	Progress       int     `json:"progress"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

type TaskAnalytics struct {
	ProjectID            string             `json:"projectId"`
	ProjectName          string             `json:"projectName"`
	TotalTasks           int                `json:"totalTasks"`
	StatusDistribution   TaskStatusCounts   `json:"statusDistribution"`
	PriorityDistribution TaskPriorityCounts `json:"priorityDistribution"`
}
