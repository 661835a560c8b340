// Package memory provides an in-memory UserRepository used by tests and
// local experiments that do not need Postgres.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	nextSeq int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]*entity.User)}
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		for _, existing := range r.byID {
			if existing.Email == u.Email {
				return fmt.Errorf("duplicate key value violates unique constraint on email %q", u.Email)
			}
		}
		r.nextSeq++
		u.ID = fmt.Sprintf("mem-%d", r.nextSeq)
		u.CreatedAt = time.Now()
		r.byID[u.ID] = clone(u)
		return nil
	}
	if _, ok := r.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	r.byID[u.ID] = clone(u)
	return nil
}

// Delete removes an account; useful for exercising stale-token paths.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

func clone(u *entity.User) *entity.User {
	c := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		c.LastLogin = &t
	}
	return &c
}

var _ repository.UserRepository = (*UserRepository)(nil)
