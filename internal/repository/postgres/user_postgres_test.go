package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"campusnotes/internal/model"
	"campusnotes/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "name", "email", "password_hash", "verified", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	u := &model.User{
		ID:           "user-uuid",
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		Verified:     true,
		CreatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(userCols).
			AddRow(u.ID, u.Name, u.Email, u.PasswordHash, u.Verified, u.CreatedAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.Verified, u.CreatedAt).
			WillReturnRows(rows)

		got, err := repo.Create(ctx, u)

		assert.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, u.Email, got.Email)
		assert.True(t, got.Verified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(u.ID, u.Name, u.Email, u.PasswordHash, u.Verified, u.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"})

		got, err := repo.Create(ctx, u)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		assert.Nil(t, got)
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userCols).
			AddRow("user-id", "Alice", "a@x.com", "hash", true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("a@x.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "a@x.com")

		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "user-id", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("missing@x.com").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByEmail(ctx, "missing@x.com")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, u)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(userCols).
		AddRow("user-id", "Alice", "a@x.com", "hash", false, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
		WithArgs("user-id").
		WillReturnRows(rows)

	u, err := repo.FindByID(ctx, "user-id")

	assert.NoError(t, err)
	require.NotNil(t, u)
	assert.False(t, u.Verified)
}

func TestUserPostgres_DeleteWithNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("notes deleted before user, committed", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM notes WHERE uploaded_by = ?").
			WithArgs("user-id").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("DELETE FROM users WHERE id = ?").
			WithArgs("user-id").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteWithNotes(ctx, "user-id")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when user delete fails", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM notes WHERE uploaded_by = ?").
			WithArgs("user-id").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("DELETE FROM users WHERE id = ?").
			WithArgs("user-id").
			WillReturnError(sql.ErrConnDone)
		mock.ExpectRollback()

		err := repo.DeleteWithNotes(ctx, "user-id")

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
