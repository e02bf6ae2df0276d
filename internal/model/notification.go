package model

import "time"

// Notification is a user-facing event record created as a side effect of
// project, task, and invite writes.
type Notification struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	Type      string    `gorm:"not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Message   string    `gorm:"not null" json:"message"`
	IsRead    bool      `gorm:"not null" json:"isRead"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Notification types
const (
	NotificationProjectCreated = "project_created"
	NotificationTaskAssigned   = "task_assigned"
	NotificationTeamInvitation = "team_invitation"
)
