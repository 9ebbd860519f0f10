// Package repository holds the in-memory application state and mirrors it to
// the key-value store. Each repository exclusively owns its list: the
// persisted blob is a snapshot rehydrated once at startup, after which the
// in-memory copy is authoritative and written back after every mutation.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/geovibes/geovibes/internal/domain"
	"github.com/geovibes/geovibes/internal/storage"
)

type UserRepository struct {
	store storage.Store

	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepository(store storage.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Load rehydrates the registry from the store. An absent blob leaves the
// registry empty.
func (r *UserRepository) Load(ctx context.Context) error {
	var users []domain.User
	found, err := r.store.Load(ctx, storage.KeyUsers, &users)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if found {
		r.users = users
	} else {
		r.users = nil
	}
	return nil
}

func (r *UserRepository) All(ctx context.Context) []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out
}

func (r *UserRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// FindByEmail returns the first user with an exactly matching email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, true
		}
	}
	return nil, false
}

// Append adds a user and persists the full registry.
func (r *UserRepository) Append(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	if err := r.store.Save(ctx, storage.KeyUsers, r.users); err != nil {
		r.users = r.users[:len(r.users)-1]
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}
