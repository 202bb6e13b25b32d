package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/climatrack/internal/weather"
)

// Ingester is the part of weather.Service the scheduler drives.
type Ingester interface {
	Ingest(ctx context.Context, src weather.Source) (weather.Entry, error)
}

// Scheduler periodically reloads the configured weather sources.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Ingester
	sources   []weather.Source
	interval  time.Duration
	timeout   time.Duration
	logger    *logrus.Entry
}

// New creates a new Scheduler. timeout bounds each source reload.
func New(sources []weather.Source, interval, timeout time.Duration, service Ingester, logger *logrus.Entry) *Scheduler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		sources:   sources,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.WithField("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.sources) == 0 {
		s.logger.Info("no sources configured; nothing to schedule")
		return nil
	}
	if s.interval <= 0 {
		s.logger.Info("refresh disabled; loading sources once")
		s.RunOnce()
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce reloads every source concurrently and waits for all of them.
// Failures are logged; the previously loaded dataset stays current.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("running reload job")

	var wg sync.WaitGroup
	for _, src := range s.sources {
		src := src
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if _, err := s.service.Ingest(ctx, src); err != nil {
				s.logger.WithError(err).WithField("source", src.Name()).Error("reload failed")
			}
		}()
	}
	wg.Wait()
	s.logger.Debug("completed reload job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
