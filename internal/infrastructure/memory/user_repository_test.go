package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/internal/domain/repository"
)

func newUser(email string) *entity.User {
	return &entity.User{
		Username:     "alice01",
		Email:        email,
		PasswordHash: "hash",
		FirstName:    "Alice",
		LastName:     "Smith",
		Role:         entity.RoleUser,
		IsActive:     true,
	}
}

func TestUserRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository()

	u := newUser("alice@example.com")
	require.NoError(t, repo.Save(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_SaveDuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Save(ctx, newUser("alice@example.com")))
	err := repo.Save(ctx, newUser("alice@example.com"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestUserRepository_SaveUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository()

	u := newUser("alice@example.com")
	require.NoError(t, repo.Save(ctx, u))

	u.FirstName = "Alicia"
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.FirstName)

	// Updating a deleted row reports not found.
	repo.Delete(u.ID)
	assert.ErrorIs(t, repo.Save(ctx, u), repository.ErrNotFound)
}

// Mutating a returned entity must not leak into the store.
func TestUserRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewUserRepository()

	u := newUser("alice@example.com")
	require.NoError(t, repo.Save(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.FirstName = "Mallory"

	fresh, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fresh.FirstName)
}
