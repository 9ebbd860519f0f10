package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/geovibes/geovibes/internal/domain"
	"github.com/geovibes/geovibes/internal/storage"
)

// SessionRepository holds the single currently-authenticated user. Set on
// login or registration, cleared on logout, rehydrated at startup.
type SessionRepository struct {
	store storage.Store

	mu      sync.RWMutex
	current *domain.User
}

func NewSessionRepository(store storage.Store) *SessionRepository {
	return &SessionRepository{store: store}
}

func (r *SessionRepository) Load(ctx context.Context) error {
	var user domain.User
	found, err := r.store.Load(ctx, storage.KeySession, &user)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if found {
		r.current = &user
	} else {
		r.current = nil
	}
	return nil
}

// Current returns a copy of the session user, or false when nobody is
// logged in.
func (r *SessionRepository) Current() (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, false
	}
	user := *r.current
	return &user, true
}

func (r *SessionRepository) Set(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Save(ctx, storage.KeySession, user); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	r.current = &user
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Delete(ctx, storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	r.current = nil
	return nil
}
