package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/geovibes/geovibes/internal/domain"
	"github.com/geovibes/geovibes/internal/storage"
)

type BookingRepository struct {
	store storage.Store

	mu       sync.RWMutex
	bookings []domain.Booking
}

func NewBookingRepository(store storage.Store) *BookingRepository {
	return &BookingRepository{store: store}
}

// Load rehydrates the booking list from the store. An absent blob leaves the
// list empty.
func (r *BookingRepository) Load(ctx context.Context) error {
	var bookings []domain.Booking
	found, err := r.store.Load(ctx, storage.KeyBookings, &bookings)
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if found {
		r.bookings = bookings
	} else {
		r.bookings = nil
	}
	return nil
}

func (r *BookingRepository) All(ctx context.Context) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Booking, len(r.bookings))
	copy(out, r.bookings)
	return out
}

// FindByID returns the booking with the given id, or false when absent.
func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, b := range r.bookings {
		if b.ID == id {
			booking := b
			return &booking, true
		}
	}
	return nil, false
}

// ByUser returns all bookings belonging to the given user, in creation order.
func (r *BookingRepository) ByUser(ctx context.Context, userID int64) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Booking{}
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// Append adds a booking and persists the full list.
func (r *BookingRepository) Append(ctx context.Context, booking domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings = append(r.bookings, booking)
	if err := r.store.Save(ctx, storage.KeyBookings, r.bookings); err != nil {
		r.bookings = r.bookings[:len(r.bookings)-1]
		return fmt.Errorf("persist bookings: %w", err)
	}
	return nil
}
