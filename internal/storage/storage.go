// Package storage provides the string-keyed blob store the application state
// is persisted in. Values are JSON-serialized; the in-memory copies owned by
// the repositories stay authoritative during the process lifetime and are
// written back after every mutation.
package storage

import "context"

// Keys the application persists under. They are carried over from the
// original browser local-storage layout, so exported blobs stay readable.
const (
	KeySession  = "geovibes_user"
	KeyUsers    = "geovibes_users"
	KeyBookings = "geovibes_bookings"
)

// Store is an injectable key-value backend. Load reports whether the key was
// present; an absent key is not an error.
type Store interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
