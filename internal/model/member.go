package model

import "time"

// ProjectMember links a user to a project and grants visibility on it.
type ProjectMember struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"not null;index" json:"projectId"`
	UserID    string    `gorm:"not null;index" json:"userId"`
	Role      string    `gorm:"not null;check:role IN ('manager', 'member')" json:"role"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

// Project roles
const (
	RoleManager = "manager"
	RoleMember  = "member"
)
