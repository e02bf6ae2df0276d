package model

import "time"

type Project struct {
	ID               string     `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"not null" json:"name"`
	Description      string     `json:"description,omitempty"`
	ManagerID        string     `gorm:"index" json:"managerId,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Priority         string     `gorm:"not null;check:priority IN ('low', 'medium', 'high')" json:"priority"`
	Status           string     `gorm:"not null;check:status IN ('active', 'on_hold', 'completed')" json:"status"`
	Progress         int        `gorm:"not null" json:"progress"`
	Tags             string     `json:"tags,omitempty"`
	ImageURL         string     `json:"imageUrl,omitempty"`
	TestUserAssigned bool       `gorm:"not null" json:"testUserAssigned"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Project priorities and statuses
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)
