package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a learner identified by a unique display name. One is created
// implicitly on first CLI launch for a given name and never deleted.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalPoints  int       `json:"total_points"`
	CreatedAt    time.Time `json:"created_at"`
	LastAccessed time.Time `json:"last_accessed"`
}

// NewUser creates a user with a generated ID and current timestamps.
func NewUser(name string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		CreatedAt:    now,
		LastAccessed: now,
	}
}
