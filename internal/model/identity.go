package model

import "time"

// Identity is the session-side projection of a User, kept in sync on every successful login.
// It is never a source of truth for credentials.
type Identity struct {
	IdentityID   uint      `json:"identity_id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	FirstName    string    `json:"first_name" gorm:"size:50"`
	LastName     string    `json:"last_name" gorm:"size:50"`
	PasswordHash string    `json:"-" gorm:"size:100;not null"`
	SyncedAt     time.Time `json:"synced_at"`
}
