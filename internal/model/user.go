package model

import "time"

// User identity. The ID is either minted locally (uuid) or assigned by the
// external identity provider (token subject), so it is a plain string key.
type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// UserCredential holds the bcrypt hash for the local-credential auth path.
// Kept apart from User so identity-provider accounts never carry one.
type UserCredential struct {
	UserID         string `gorm:"primaryKey"`
	HashedPassword string `gorm:"not null"`
}
