// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"riskreport/internal/logger"
)

// Job represents a scheduled job.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// parser accepts standard five-field expressions, an optional leading
// seconds field, and descriptors such as "@daily".
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler manages background jobs. A job that is still running when its
// next tick fires skips that tick.
type Scheduler struct {
	cron   *cron.Cron
	log    *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler.
func New() *Scheduler {
	log := logger.Named("scheduler")
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{log})),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started")
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// AddJob registers a job with a cron schedule.
// Schedule examples:
//   - "30 6 * * MON-FRI"  - 06:30 on weekdays
//   - "0 0 18 * * *"      - 18:00:00 every day
//   - "@every 1h"         - every hour
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.log.Debugw("running job", "job", job.Name())

		if err := job.Run(s.ctx); err != nil {
			s.log.Errorw("job failed", "job", job.Name(), "error", err)
		} else {
			s.log.Debugw("job completed", "job", job.Name())
		}
	})
	if err != nil {
		return err
	}

	s.log.Infow("job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	s.log.Infow("running job immediately", "job", job.Name())
	return job.Run(s.ctx)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
