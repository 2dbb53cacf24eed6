package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"campusnotes/internal/model"
	"campusnotes/internal/repository"
)

const noteColumns = `id, title, description, subject, file_name, file_key, file_type, uploaded_by, uploaded_at, downloads`

// NotePostgres is a PostgreSQL implementation of repository.NoteRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type NotePostgres struct {
	db *sql.DB
}

// NewNotePostgres creates a new NotePostgres repository.
func NewNotePostgres(db *sql.DB) *NotePostgres {
	return &NotePostgres{db: db}
}

var _ repository.NoteRepository = (*NotePostgres)(nil)

// Create inserts a new note row and returns the stored record.
func (r *NotePostgres) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	const q = `
		INSERT INTO notes (id, title, description, subject, file_name, file_key, file_type, uploaded_by, uploaded_at, downloads)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + noteColumns
	row := r.db.QueryRowContext(ctx, q,
		n.ID,
		n.Title,
		n.Description,
		n.Subject,
		n.FileName,
		n.FileKey,
		n.FileType,
		n.UploadedBy,
		n.UploadedAt,
		n.Downloads,
	)
	return scanNote(row)
}

// FindByID fetches a single note by its ID.
func (r *NotePostgres) FindByID(ctx context.Context, id string) (*model.Note, error) {
	const q = `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`
	return scanNote(r.db.QueryRowContext(ctx, q, id))
}

// ListByOwner returns the user's notes, newest first.
func (r *NotePostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	const q = `
		SELECT ` + noteColumns + `
		FROM notes
		WHERE uploaded_by = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

// Search returns notes matching the filters, newest first. Title is matched
// with ILIKE on a substring; subject is an exact match. Both are ANDed.
func (r *NotePostgres) Search(ctx context.Context, sq repository.NoteSearch) ([]model.Note, error) {
	q := `SELECT ` + noteColumns + ` FROM notes WHERE 1=1`
	args := make([]any, 0, 2)
	if sq.Title != "" {
		args = append(args, "%"+sq.Title+"%")
		q += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if sq.Subject != "" {
		args = append(args, sq.Subject)
		q += fmt.Sprintf(" AND subject = $%d", len(args))
	}
	q += ` ORDER BY uploaded_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectNotes(rows)
}

// IncrementDownloads bumps the counter in a single atomic update, so
// concurrent downloads never lose an increment.
func (r *NotePostgres) IncrementDownloads(ctx context.Context, id string) error {
	const q = `UPDATE notes SET downloads = downloads + 1 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a note by ID. It does not return an error if the row does not exist.
func (r *NotePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// DistinctSubjects returns every subject currently in use, for filter options.
func (r *NotePostgres) DistinctSubjects(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT subject FROM notes ORDER BY subject`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subjects, nil
}

// StatsByOwner returns the note count and summed downloads for a user.
func (r *NotePostgres) StatsByOwner(ctx context.Context, ownerID string) (repository.OwnerStats, error) {
	const q = `
		SELECT COUNT(*), COALESCE(SUM(downloads), 0)
		FROM notes
		WHERE uploaded_by = $1
	`
	var st repository.OwnerStats
	if err := r.db.QueryRowContext(ctx, q, ownerID).Scan(&st.Notes, &st.Downloads); err != nil {
		return repository.OwnerStats{}, err
	}
	return st, nil
}

func scanNote(row *sql.Row) (*model.Note, error) {
	var n model.Note
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Description,
		&n.Subject,
		&n.FileName,
		&n.FileKey,
		&n.FileType,
		&n.UploadedBy,
		&n.UploadedAt,
		&n.Downloads,
	); err != nil {
		return nil, err
	}
	return &n, nil
}

func collectNotes(rows *sql.Rows) ([]model.Note, error) {
	defer rows.Close()

	items := make([]model.Note, 0)
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID,
			&n.Title,
			&n.Description,
			&n.Subject,
			&n.FileName,
			&n.FileKey,
			&n.FileType,
			&n.UploadedBy,
			&n.UploadedAt,
			&n.Downloads,
		); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
