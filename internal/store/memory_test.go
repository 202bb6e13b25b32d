package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/i474232898/climatrack/internal/weather"
)

func entry(id, name string, loadedAt time.Time) weather.Entry {
	return weather.Entry{ID: id, Name: name, LoadedAt: loadedAt, Dataset: weather.NewDataset()}
}

func TestMemoryStoreGetAndLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)
	now := time.Now().UTC()

	s.Save(entry("1", "a", now))
	s.Save(entry("2", "b", now))
	s.Save(entry("3", "a", now))

	if e, err := s.Get("2"); err != nil || e.Name != "b" {
		t.Fatalf("Get(2) = %+v, %v", e, err)
	}
	if e, err := s.Latest("a"); err != nil || e.ID != "3" {
		t.Fatalf("Latest(a) = %+v, %v", e, err)
	}
	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Latest("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := len(s.List()); got != 3 {
		t.Fatalf("expected 3 entries, got %d", got)
	}
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	now := time.Now().UTC()
	for i := 1; i <= 4; i++ {
		s.Save(entry(fmt.Sprint(i), "a", now))
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != "3" || list[1].ID != "4" {
		t.Fatalf("expected entries 3 and 4, got %+v", list)
	}
}

func TestMemoryStoreRetentionByAge(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save(entry("old", "a", now.Add(-2*time.Hour)))
	s.Save(entry("fresh", "a", now.Add(-time.Minute)))

	list := s.List()
	if len(list) != 1 || list[0].ID != "fresh" {
		t.Fatalf("expected only the fresh entry, got %+v", list)
	}
}

func TestMemoryStoreKeepsNewestEvenWhenExpired(t *testing.T) {
	s := NewMemoryStore(0, time.Hour)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save(entry("stale", "a", now.Add(-3*time.Hour)))

	if _, err := s.Get("stale"); err != nil {
		t.Fatalf("expected the newest entry to survive, got %v", err)
	}
}

func TestMemoryStoreKeepsNewestPerName(t *testing.T) {
	s := NewMemoryStore(0, 24*time.Hour)
	now := time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Save(entry("a1", "a", now.Add(-48*time.Hour)))
	s.Save(entry("a2", "a", now.Add(-25*time.Hour)))
	s.Save(entry("b1", "b", now))

	if e, err := s.Latest("a"); err != nil || e.ID != "a2" {
		t.Fatalf("Latest(a) after b refreshed = %+v, %v", e, err)
	}
	if _, err := s.Get("a1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected the older a entry to expire, got %v", err)
	}

	list := s.List()
	if len(list) != 2 || list[0].ID != "a2" || list[1].ID != "b1" {
		t.Fatalf("expected a2 and b1, got %+v", list)
	}
}
