package heartbeat

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Scheduler pings the database on a fixed interval.
type Scheduler struct {
	cron   gocron.Scheduler
	pinger Pinger
	log    *zap.Logger
}

// NewScheduler registers the heartbeat job. Call Start to run it.
func NewScheduler(pinger Pinger, interval time.Duration, log *zap.Logger) (*Scheduler, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &Scheduler{cron: cron, pinger: pinger, log: log}
	_, err = cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.beat),
		gocron.WithName("database-heartbeat"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule heartbeat: %w", err)
	}
	return s, nil
}

func (s *Scheduler) beat() {
	ctx, cancel := context.WithTimeout(context.Background(), PingTimeout)
	defer cancel()

	now, err := s.pinger.Now(ctx)
	if err != nil {
		s.log.Warn("Scheduled heartbeat failed", zap.Error(err))
		return
	}
	s.log.Debug("Scheduled heartbeat", zap.Time("db_time", now))
}

// Start runs the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for a running beat and stops the scheduler.
func (s *Scheduler) Stop() error {
	return s.cron.Shutdown()
}
