package domain

import (
	"sync/atomic"
	"time"
)

var lastID atomic.Int64

// NewID returns the unix-millisecond timestamp of t as an identifier. Ids are
// bumped past the previously issued one when needed, so they stay strictly
// increasing within the process even when two entities are created in the
// same millisecond.
func NewID(t time.Time) int64 {
	id := t.UnixMilli()
	for {
		last := lastID.Load()
		if id <= last {
			id = last + 1
		}
		if lastID.CompareAndSwap(last, id) {
			return id
		}
	}
}

// isoTimestamp matches the created_at format of the original data files
// (ISO-8601 with millisecond precision, always UTC).
const isoTimestamp = "2006-01-02T15:04:05.000Z"

// ISOTime formats t the way createdAt fields are persisted.
func ISOTime(t time.Time) string {
	return t.UTC().Format(isoTimestamp)
}
