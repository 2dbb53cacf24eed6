package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusnotes/internal/config"
	"campusnotes/internal/model"
	"campusnotes/internal/repository"
	"campusnotes/internal/storage"
)

var (
	ErrNotFound           = errors.New("note not found")
	ErrForbidden          = errors.New("not the owner of this note")
	ErrNoFile             = errors.New("no file provided")
	ErrFileType           = errors.New("file type not allowed")
	ErrMissingFields      = errors.New("title and subject are required")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// UploadInput carries the multipart form fields of an upload request.
type UploadInput struct {
	Title       string
	Description string
	Subject     string
	FileName    string
	File        io.Reader
	Size        int64
	ContentType string
}

// BrowseResult is the service-level DTO for the browse page: the filtered
// notes plus the full subject list used to populate filter options.
type BrowseResult struct {
	Notes    []model.Note `json:"data"`
	Subjects []string     `json:"subjects"`
}

// NoteService defines the note lifecycle use cases and owns all policy:
// verification gating, allowed-file-type checks, and ownership checks.
type NoteService interface {
	// Upload stores the blob first and the metadata row second, so a storage
	// failure never leaves orphan metadata. An orphan blob on row-insert
	// failure is an accepted trade-off; a single best-effort rollback delete
	// is attempted, with no retries and no reconciliation.
	Upload(ctx context.Context, ownerID string, in UploadInput) (*model.Note, error)

	// Dashboard returns the user's own notes, newest first.
	Dashboard(ctx context.Context, ownerID string) ([]model.Note, error)

	// Browse returns notes matching the filters plus the distinct subjects.
	Browse(ctx context.Context, search, subject string) (*BrowseResult, error)

	// Download mints a time-limited signed URL for any note, regardless of
	// owner, and increments the download counter only after signing succeeds.
	Download(ctx context.Context, noteID string) (string, error)

	// Delete removes a note if the requester owns it. The blob delete is
	// best-effort; the metadata row is removed unconditionally afterwards.
	Delete(ctx context.Context, noteID, requesterID string) error

	// Profile returns the user's upload count and summed downloads.
	Profile(ctx context.Context, ownerID string) (repository.OwnerStats, error)
}

type noteService struct {
	store      storage.Storage
	notes      repository.NoteRepository
	users      repository.UserRepository
	allowedExt map[string]bool
	presignTTL time.Duration
}

// NewNoteService constructs a new NoteService with the upload policy from cfg.
func NewNoteService(store storage.Storage, notes repository.NoteRepository, users repository.UserRepository, cfg config.UploadConfig) NoteService {
	allowed := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = true
	}
	ttl := time.Duration(cfg.PresignTTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &noteService{
		store:      store,
		notes:      notes,
		users:      users,
		allowedExt: allowed,
		presignTTL: ttl,
	}
}

func (s *noteService) Upload(ctx context.Context, ownerID string, in UploadInput) (*model.Note, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	if !owner.Verified {
		return nil, ErrNotVerified
	}
	if in.File == nil || in.FileName == "" {
		return nil, ErrNoFile
	}
	if in.Title == "" || in.Subject == "" {
		return nil, ErrMissingFields
	}
	ext, ok := fileExt(in.FileName)
	if !ok || !s.allowedExt[ext] {
		return nil, ErrFileType
	}

	filename := sanitizeFilename(in.FileName)
	key := "notes/" + uuid.New().String() + "_" + filename

	ct := in.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	// Blob first. If this fails no row is created, avoiding orphan metadata.
	if _, err := s.store.Put(ctx, key, in.File, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: ct,
		Metadata: map[string]string{
			"original-filename": in.FileName,
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	note := &model.Note{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Subject:     in.Subject,
		FileName:    filename,
		FileKey:     key,
		FileType:    ext,
		UploadedBy:  owner.ID,
		UploadedAt:  time.Now().UTC(),
	}
	stored, err := s.notes.Create(ctx, note)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("orphan blob %s left behind: %v", key, delErr)
		}
		return nil, fmt.Errorf("save note: %w", err)
	}
	return stored, nil
}

func (s *noteService) Dashboard(ctx context.Context, ownerID string) ([]model.Note, error) {
	return s.notes.ListByOwner(ctx, ownerID)
}

func (s *noteService) Browse(ctx context.Context, search, subject string) (*BrowseResult, error) {
	notes, err := s.notes.Search(ctx, repository.NoteSearch{Title: search, Subject: subject})
	if err != nil {
		return nil, err
	}
	subjects, err := s.notes.DistinctSubjects(ctx)
	if err != nil {
		return nil, err
	}
	return &BrowseResult{Notes: notes, Subjects: subjects}, nil
}

func (s *noteService) Download(ctx context.Context, noteID string) (string, error) {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}

	url, err := s.store.PresignGet(ctx, note.FileKey, s.presignTTL)
	if err != nil {
		// Counter stays untouched when signing fails.
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := s.notes.IncrementDownloads(ctx, noteID); err != nil {
		return "", fmt.Errorf("increment downloads: %w", err)
	}
	return url, nil
}

func (s *noteService) Delete(ctx context.Context, noteID, requesterID string) error {
	note, err := s.notes.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if note.UploadedBy != requesterID {
		return ErrForbidden
	}

	// Blob delete failure is logged and ignored; losing an object is
	// preferable to a metadata row pointing at nothing we can reach anyway.
	if err := s.store.Delete(ctx, note.FileKey); err != nil {
		log.Printf("delete blob %s: %v", note.FileKey, err)
	}
	return s.notes.Delete(ctx, noteID)
}

func (s *noteService) Profile(ctx context.Context, ownerID string) (repository.OwnerStats, error) {
	return s.notes.StatsByOwner(ctx, ownerID)
}

// fileExt returns the lowercase extension without the dot. A name with no
// dot has no extension and is never allowed.
func fileExt(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// sanitizeFilename keeps letters, digits, dots, dashes, and underscores;
// everything else becomes an underscore. Path separators never survive.
func sanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
