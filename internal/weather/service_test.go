package weather

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// mapStore is a minimal Store for exercising the service in isolation.
type mapStore struct {
	mu      sync.Mutex
	entries []Entry
}

var errNoEntry = errors.New("no entry")

func (s *mapStore) Save(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *mapStore) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, errNoEntry
}

func (s *mapStore) Latest(name string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Name == name {
			return s.entries[i], nil
		}
	}
	return Entry{}, errNoEntry
}

func (s *mapStore) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

type stringSource struct {
	name    string
	content string
	err     error
}

func (s stringSource) Name() string { return s.name }

func (s stringSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.content)), nil
}

func TestServiceIngest(t *testing.T) {
	st := &mapStore{}
	svc := NewService(st, DefaultRules(), nil)
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }

	entry, err := svc.Ingest(context.Background(), stringSource{name: "daily.csv", content: scenarioCSV})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ID == "" || entry.Name != "daily.csv" || entry.Source != "daily.csv" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.LoadedAt.Location() != time.UTC || entry.LoadedAt.Hour() != 11 {
		t.Fatalf("expected UTC load time, got %v", entry.LoadedAt)
	}
	if entry.Report.Kept != 2 || entry.Dataset.Len() != 2 {
		t.Fatalf("unexpected report %+v", entry.Report)
	}

	got, err := svc.Get(entry.ID)
	if err != nil || got.ID != entry.ID {
		t.Fatalf("Get(%s) = %+v, %v", entry.ID, got, err)
	}

	p, err := svc.Predict(entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Outlook != OutlookRain {
		t.Fatalf("expected rain, got %q", p.Outlook)
	}
}

func TestServiceIngestFailureLeavesStoreUntouched(t *testing.T) {
	st := &mapStore{}
	svc := NewService(st, DefaultRules(), nil)

	openErr := errors.New("unreachable")
	if _, err := svc.Ingest(context.Background(), stringSource{name: "a.csv", err: openErr}); !errors.Is(err, openErr) {
		t.Fatalf("expected open error, got %v", err)
	}

	_, err := svc.IngestReader("b.csv", strings.NewReader("date\n2024-01-01\n"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}

	if n := len(svc.List()); n != 0 {
		t.Fatalf("expected empty store, got %d entries", n)
	}
}

func TestServiceLatest(t *testing.T) {
	svc := NewService(&mapStore{}, DefaultRules(), nil)

	first, _ := svc.IngestReader("daily", strings.NewReader(scenarioCSV))
	second, _ := svc.IngestReader("daily", strings.NewReader(scenarioCSV))
	if first.ID == second.ID {
		t.Fatal("expected distinct ids")
	}

	latest, err := svc.Latest("daily")
	if err != nil || latest.ID != second.ID {
		t.Fatalf("Latest() = %+v, %v; want %s", latest, err, second.ID)
	}
}
