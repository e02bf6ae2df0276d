package model

import "time"

type Task struct {
	ID          string     `gorm:"primaryKey" json:"id"`
	ProjectID   string     `gorm:"not null;index" json:"projectId"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	AssigneeID  string     `gorm:"index" json:"assigneeId,omitempty"`
	Status      string     `gorm:"not null;check:status IN ('todo', 'in_progress', 'done')" json:"status"`
	Priority    string     `gorm:"not null;check:priority IN ('low', 'medium', 'high')" json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Task statuses. CompletedAt is non-nil iff Status is done; the storage
// update path maintains that rule on every transition.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)
