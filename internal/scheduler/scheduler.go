package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/temperature-heatmap/internal/logger"
)

const defaultInterval = 6 * time.Hour

// Refresher is the part of the dataset service the scheduler drives.
type Refresher interface {
	SourceName() string
	Refresh(ctx context.Context) error
}

// Scheduler periodically refreshes the temperature dataset.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	refresher  Refresher
	interval   time.Duration
	jobTimeout time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, refresher Refresher) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		refresher:  refresher,
		interval:   interval,
		jobTimeout: 2 * time.Minute,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens immediately.
func (s *Scheduler) Start() error {
	if s.refresher == nil {
		logger.Warn("scheduler: no dataset service configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	logger.Info("scheduler: refreshing %s every %v", s.refresher.SourceName(), s.interval)
	return nil
}

func (s *Scheduler) run() {
	logger.Debug("scheduler: running dataset refresh job")

	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	if err := s.refresher.Refresh(ctx); err != nil {
		logger.Error("scheduler: refresh of %s failed: %v", s.refresher.SourceName(), err)
		return
	}
	logger.Debug("scheduler: completed dataset refresh in %v", time.Since(start))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
