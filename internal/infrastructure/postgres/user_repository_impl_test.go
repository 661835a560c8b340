package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/internal/domain/repository"
)

var userCols = []string{
	"id", "username", "email", "password_hash", "first_name", "last_name",
	"role", "is_active", "avatar_url", "created_at", "last_login",
}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, repo := newMockRepo(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	lastLogin := created.Add(time.Hour)
	rows := pgxmock.NewRows(userCols).AddRow(
		"u-1", "alice01", "alice@example.com", "$2a$10$hash", "Alice", "Smith",
		"USER", true, "", created, &lastLogin,
	)
	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "alice01", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "USER", u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, created, u.CreatedAt)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, lastLogin, *u.LastLogin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnRows(pgxmock.NewRows(userCols))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM users\s+WHERE id = \$1`).
		WithArgs("u-404").
		WillReturnRows(pgxmock.NewRows(userCols))

	_, err := repo.GetByID(context.Background(), "u-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"exists", "alice@example.com", true},
		{"missing", "ghost@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, repo := newMockRepo(t)

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(tt.email).
				WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(tt.want))

			got, err := repo.ExistsByEmail(context.Background(), tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Save_Insert(t *testing.T) {
	mock, repo := newMockRepo(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice01", "alice@example.com", "$2a$10$hash", "Alice", "Smith", "USER", true, "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("u-1", created))

	u := &entity.User{
		Username:     "alice01",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Role:         "USER",
		IsActive:     true,
	}
	require.NoError(t, repo.Save(context.Background(), u))
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, created, u.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Save_InsertDuplicateEmail(t *testing.T) {
	mock, repo := newMockRepo(t)

	dup := errors.New(`duplicate key value violates unique constraint "users_email_key"`)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice01", "alice@example.com", "$2a$10$hash", "Alice", "Smith", "USER", true, "").
		WillReturnError(dup)

	u := &entity.User{
		Username:     "alice01",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Role:         "USER",
		IsActive:     true,
	}
	err := repo.Save(context.Background(), u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Save_Update(t *testing.T) {
	mock, repo := newMockRepo(t)

	lastLogin := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE users`).
		WithArgs("alice_new", "$2a$10$hash", "Alicia", "Jones", "USER", true, "", &lastLogin, "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	u := &entity.User{
		ID:           "u-1",
		Username:     "alice_new",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alicia",
		LastName:     "Jones",
		Role:         "USER",
		IsActive:     true,
		LastLogin:    &lastLogin,
	}
	require.NoError(t, repo.Save(context.Background(), u))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Save_UpdateMissingRow(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectExec(`UPDATE users`).
		WithArgs("alice01", "$2a$10$hash", "Alice", "Smith", "USER", true, "", pgxmock.AnyArg(), "u-404").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	u := &entity.User{
		ID:           "u-404",
		Username:     "alice01",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Role:         "USER",
		IsActive:     true,
	}
	err := repo.Save(context.Background(), u)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
