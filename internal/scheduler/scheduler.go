package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Refresher is anything that can rebuild its cached state
type Refresher interface {
	RefreshModel() error
}

// Scheduler periodically retrains the cached fertility model.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(target Refresher, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: no refresh interval configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		if err := s.target.RefreshModel(); err != nil {
			s.logger.Error("scheduler: model refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
