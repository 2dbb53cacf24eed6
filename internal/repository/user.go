package repository

import (
	"context"
	"errors"

	"campusnotes/internal/model"
)

// ErrDuplicateEmail is returned by UserRepository.Create when the email is
// already registered (unique-constraint violation).
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines data access for user accounts using SQL queries only.
// No business logic here, strictly persistence operations.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	// Returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns a user by email, or sql.ErrNoRows when absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByID returns a user by ID, or sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// DeleteWithNotes removes the user's note rows and then the user row
	// inside a single transaction.
	DeleteWithNotes(ctx context.Context, id string) error
}
