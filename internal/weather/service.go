package weather

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service loads datasets from sources and keeps them in a store.
type Service struct {
	store  Store
	rules  Rules
	logger *logrus.Entry
	now    func() time.Time
}

// NewService creates a new Service.
func NewService(store Store, rules Rules, logger *logrus.Entry) *Service {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		store:  store,
		rules:  rules,
		logger: logger.WithField("component", "weather"),
		now:    time.Now,
	}
}

// Ingest reads src into a fresh dataset and registers it under a new id.
// A failed load leaves the store untouched.
func (s *Service) Ingest(ctx context.Context, src Source) (Entry, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("source", src.Name()).Warn("could not open source")
		return Entry{}, err
	}
	defer rc.Close()

	return s.ingest(src.Name(), src.Name(), rc)
}

// IngestReader loads an uploaded CSV under the given name.
func (s *Service) IngestReader(name string, r io.Reader) (Entry, error) {
	return s.ingest(name, "upload", r)
}

func (s *Service) ingest(name, source string, r io.Reader) (Entry, error) {
	logger := s.logger.WithFields(logrus.Fields{
		"name":   name,
		"source": source,
	})

	ds := NewDataset()
	if err := ds.Load(r); err != nil {
		logger.WithError(err).Warn("could not load dataset")
		return Entry{}, fmt.Errorf("load %s: %w", name, err)
	}

	entry := Entry{
		ID:       uuid.NewString(),
		Name:     name,
		Source:   source,
		LoadedAt: s.now().UTC(),
		Report:   ds.Report(),
		Dataset:  ds,
	}
	s.store.Save(entry)

	report := entry.Report
	logger.WithFields(logrus.Fields{
		"id":                entry.ID,
		"rows":              report.Rows,
		"kept":              report.Kept,
		"dropped_missing":   report.DroppedMissing,
		"dropped_malformed": report.DroppedMalformed,
	}).Info("dataset loaded")

	return entry, nil
}

// Rules returns the prediction thresholds the service was configured with.
func (s *Service) Rules() Rules {
	return s.rules
}

// Predict runs the next-day heuristic on a stored dataset.
func (s *Service) Predict(id string) (Prediction, error) {
	entry, err := s.store.Get(id)
	if err != nil {
		return Prediction{}, err
	}
	return Predict(entry.Dataset, s.rules)
}

// Get delegates to the underlying store.
func (s *Service) Get(id string) (Entry, error) {
	return s.store.Get(id)
}

// Latest delegates to the underlying store.
func (s *Service) Latest(name string) (Entry, error) {
	return s.store.Latest(name)
}

// List delegates to the underlying store.
func (s *Service) List() []Entry {
	return s.store.List()
}
