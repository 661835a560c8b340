package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/internal/domain/repository"
)

// DB is the subset of pgxpool.Pool the repository needs. Kept narrow so
// tests can substitute a mock pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, first_name, last_name, role, is_active, avatar_url, created_at, last_login`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Save inserts the user when it has no ID yet and updates it otherwise.
// On insert the database assigns id and created_at, written back onto u.
// Email is the immutable login identity and is never part of the update set.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		row := r.db.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash, first_name, last_name, role, is_active, avatar_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at
		`, u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive, u.AvatarURL)
		return row.Scan(&u.ID, &u.CreatedAt)
	}

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET username = $1, password_hash = $2, first_name = $3, last_name = $4,
		    role = $5, is_active = $6, avatar_url = $7, last_login = $8
		WHERE id = $9
	`, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Role, u.IsActive, u.AvatarURL, u.LastLogin, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Role, &u.IsActive, &u.AvatarURL, &u.CreatedAt, &u.LastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
