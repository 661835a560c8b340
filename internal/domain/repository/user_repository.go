package repository

import (
	"context"
	"errors"

	"github.com/abelgas/userauth/internal/domain/entity"
)

// ErrNotFound is returned by lookups when no account matches.
var ErrNotFound = errors.New("user not found")

// UserRepository defines the storage contract for user accounts.
// Save inserts when the user has no ID yet (assigning ID and CreatedAt)
// and updates otherwise; a single Save call is atomic for one record.
// Email uniqueness is enforced by the storage backend.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
}
