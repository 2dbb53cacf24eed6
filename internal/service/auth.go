package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"campusnotes/internal/model"
	"campusnotes/internal/repository"
	"campusnotes/internal/storage"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account is not verified")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService defines the credential-store use cases: registration, login
// verification, and account deletion with its note cascade.
type AuthService interface {
	// Register creates a new account with a bcrypt password hash. Only the
	// hash is stored, never the plaintext. Accounts are auto-verified in
	// this deployment. Returns ErrEmailTaken when the email is in use.
	Register(ctx context.Context, name, email, password string) (*model.User, error)

	// Login verifies credentials. Unknown email and wrong password are
	// indistinguishable to the caller: both return ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*model.User, error)

	// CurrentUser resolves a session's user id to a user record.
	CurrentUser(ctx context.Context, userID string) (*model.User, error)

	// DeleteAccount removes the user's blobs best-effort, then deletes the
	// user's note rows and the user row in one transaction.
	DeleteAccount(ctx context.Context, userID string) error
}

type authService struct {
	users repository.UserRepository
	notes repository.NoteRepository
	store storage.Storage
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, notes repository.NoteRepository, store storage.Storage) AuthService {
	return &authService{users: users, notes: notes, store: store}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Verified:     true, // auto-verify in this deployment
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Verified {
		return nil, ErrNotVerified
	}
	return u, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID string) error {
	// Blob cleanup is best-effort; a failed delete leaks an object but never
	// blocks account removal.
	notes, err := s.notes.ListByOwner(ctx, userID)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	for _, n := range notes {
		if err := s.store.Delete(ctx, n.FileKey); err != nil {
			log.Printf("delete blob %s: %v", n.FileKey, err)
		}
	}
	return s.users.DeleteWithNotes(ctx, userID)
}
