package model

import "time"

// User represents a registered account.
// This is a pure domain model with no database-specific dependencies or tags;
// it is shared across the repository, service, and HTTP layers.
// PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"created_at"`
}
