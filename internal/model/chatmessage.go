package model

import "time"

// ChatMessage is an append-only project chat entry, ordered by CreatedAt
// ascending. User is populated when messages are read back so clients can
// render sender names without a second lookup.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProjectID string    `gorm:"not null;index" json:"projectId"`
	UserID    string    `gorm:"not null" json:"userId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
