package repository

import (
	"context"

	"campusnotes/internal/model"
)

// NoteSearch holds browse filters. Empty fields are not applied; when both
// are set they are ANDed. Title is a case-insensitive substring match,
// Subject an exact match.
type NoteSearch struct {
	Title   string
	Subject string
}

// OwnerStats aggregates a user's upload activity for the profile page.
type OwnerStats struct {
	Notes     int   `json:"total_uploads"`
	Downloads int64 `json:"total_downloads"`
}

// NoteRepository defines data access for note metadata using SQL queries only.
// No business logic here, strictly persistence operations.
type NoteRepository interface {
	// Create inserts a new note record and returns the stored row.
	Create(ctx context.Context, n *model.Note) (*model.Note, error)

	// FindByID returns a note by ID, or sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Note, error)

	// ListByOwner returns the user's notes, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error)

	// Search returns notes matching the filters, newest first.
	Search(ctx context.Context, q NoteSearch) ([]model.Note, error)

	// IncrementDownloads bumps the download counter by exactly 1 in a single
	// atomic update statement.
	IncrementDownloads(ctx context.Context, id string) error

	// Delete removes a note by ID. It returns nil if the row was deleted or
	// did not exist.
	Delete(ctx context.Context, id string) error

	// DistinctSubjects returns the set of subjects present across all notes.
	DistinctSubjects(ctx context.Context) ([]string, error)

	// StatsByOwner returns the note count and summed downloads for a user.
	StatsByOwner(ctx context.Context, ownerID string) (OwnerStats, error)
}
