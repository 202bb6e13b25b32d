package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/climatrack/internal/weather"
)

var (
	// ErrNotFound is returned when no dataset matches the lookup.
	ErrNotFound = errors.New("dataset not found")
)

// MemoryStore is a concurrency-safe in-memory registry of loaded datasets.
// Entries are kept in load order, oldest first.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []weather.Entry

	// retention configuration
	maxEntries int           // max number of datasets kept
	maxAge     time.Duration // optional max age for datasets

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save appends an entry and enforces retention.
func (s *MemoryStore) Save(entry weather.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)

	// Enforce retention by count.
	if s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		over := len(s.entries) - s.maxEntries
		s.entries = append([]weather.Entry(nil), s.entries[over:]...)
	}

	s.expireLocked()
}

// expireLocked drops entries older than maxAge. The newest entry of each
// name is always kept so a source that stops refreshing still has its last
// good load.
func (s *MemoryStore) expireLocked() {
	if s.maxAge <= 0 {
		return
	}

	newest := make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		newest[e.Name] = i
	}

	cutoff := s.now().Add(-s.maxAge)
	kept := make([]weather.Entry, 0, len(s.entries))
	for i, e := range s.entries {
		if e.LoadedAt.Before(cutoff) && newest[e.Name] != i {
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
}

// Get returns the entry with the given id.
func (s *MemoryStore) Get(id string) (weather.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return weather.Entry{}, ErrNotFound
}

// Latest returns the most recently saved entry with the given name.
func (s *MemoryStore) Latest(name string) (weather.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == name {
			return s.entries[i], nil
		}
	}
	return weather.Entry{}, ErrNotFound
}

// List returns every entry, oldest first.
func (s *MemoryStore) List() []weather.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]weather.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
