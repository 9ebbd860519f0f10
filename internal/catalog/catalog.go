// Package catalog holds the read-only destination catalog, populated once at
// startup from an external JSON source. Destinations are never mutated or
// persisted by this application.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/geovibes/geovibes/internal/domain"
)

// Catalog is the query surface over the destination list.
type Catalog interface {
	All() []domain.Destination
	ByID(id int64) (*domain.Destination, bool)
	Filter(category, search string) []domain.Destination
	Featured(n int) []domain.Destination
}

type Store struct {
	mu           sync.RWMutex
	destinations []domain.Destination
}

func NewStore() *Store {
	return &Store{}
}

// Load fetches and decodes the catalog document. On error the catalog is left
// empty; the caller decides whether to log and continue.
func (s *Store) Load(ctx context.Context, src Source) error {
	data, err := src.Fetch(ctx)
	if err != nil {
		return err
	}

	var destinations []domain.Destination
	if err := json.Unmarshal(data, &destinations); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	s.mu.Lock()
	s.destinations = destinations
	s.mu.Unlock()
	return nil
}

// All returns the catalog in its original order.
func (s *Store) All() []domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Destination, len(s.destinations))
	copy(out, s.destinations)
	return out
}

// ByID returns the destination with the given id, or false when absent.
func (s *Store) ByID(id int64) (*domain.Destination, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.destinations {
		if d.ID == id {
			dest := d
			return &dest, true
		}
	}
	return nil, false
}

// Filter applies both filters, AND-composed, preserving catalog order. An
// empty category or the "all" sentinel keeps every category; the category
// match is exact and case-sensitive. The search text matches as a
// case-insensitive substring of the name or location. An empty result is
// valid.
func (s *Store) Filter(category, search string) []domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchLower := strings.ToLower(search)
	out := []domain.Destination{}
	for _, d := range s.destinations {
		if category != "" && category != domain.CategoryAll && d.Category != category {
			continue
		}
		if searchLower != "" &&
			!strings.Contains(strings.ToLower(d.Name), searchLower) &&
			!strings.Contains(strings.ToLower(d.Location), searchLower) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Featured returns the first n destinations of the catalog.
func (s *Store) Featured(n int) []domain.Destination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.destinations) {
		n = len(s.destinations)
	}
	out := make([]domain.Destination, n)
	copy(out, s.destinations[:n])
	return out
}

var _ Catalog = (*Store)(nil)
