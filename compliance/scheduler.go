package compliance

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/practice_backend/config"
	"github.com/sirupsen/logrus"
)

// Scheduler drives the engine's recurring triggers: a daily pass that
// generates tasks for upcoming and overdue obligations, and an hourly,
// business-hours-only pass that escalates overdue items. Runs are not
// guarded against overlap within a process; across processes a best-effort
// Redis lock skips a tick another instance is already working.
type Scheduler struct {
	Engine *Engine
	Logger *logrus.Logger
	Locker *redislock.Client

	DailyInterval  time.Duration
	HourlyInterval time.Duration
	LockTTL        time.Duration
}

func NewScheduler(engine *Engine, logger *logrus.Logger, locker *redislock.Client) *Scheduler {
	return &Scheduler{
		Engine:         engine,
		Logger:         logger,
		Locker:         locker,
		DailyInterval:  24 * time.Hour,
		HourlyInterval: time.Hour,
		LockTTL:        10 * time.Minute,
	}
}

// Run blocks until ctx is cancelled, firing both triggers on their
// intervals. The daily pass also fires once at startup so a freshly
// deployed instance does not wait a day to catch up.
func (s *Scheduler) Run(ctx context.Context) {
	if s == nil || s.Engine == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.runDaily(ctx)

	daily := time.NewTicker(s.DailyInterval)
	hourly := time.NewTicker(s.HourlyInterval)
	defer daily.Stop()
	defer hourly.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-daily.C:
			s.runDaily(ctx)
		case <-hourly.C:
			s.runHourly(ctx)
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context) {
	if !s.tryLock(ctx, "compliance:scheduler:daily") {
		return
	}

	windowDays := config.UpcomingWindowDays()
	upcoming, err := s.Engine.CreateTasksForUpcomingCompliance(ctx, windowDays)
	if err != nil {
		config.LogError(s.Logger, "scheduler.go", "runDaily", "upcoming task generation", windowDays, err)
	}
	overdue, err := s.Engine.CreateTasksForOverdueCompliance(ctx)
	if err != nil {
		config.LogError(s.Logger, "scheduler.go", "runDaily", "overdue task generation", nil, err)
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"upcoming": upcoming,
			"overdue":  overdue,
		}).Info("daily compliance task generation finished")
	}
}

func (s *Scheduler) runHourly(ctx context.Context) {
	start, end := config.BusinessHours()
	hour := s.Engine.Now().Hour()
	if hour < start || hour >= end {
		return
	}
	if !s.tryLock(ctx, "compliance:scheduler:hourly") {
		return
	}

	result, err := s.Engine.EscalateOverdueCompliance(ctx)
	if err != nil {
		config.LogError(s.Logger, "scheduler.go", "runHourly", "escalation", nil, err)
		return
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"escalated":       result.Escalated,
			"tasks_created":   result.TasksCreated,
			"tasks_escalated": result.TasksEscalated,
			"errors":          len(result.Errors),
		}).Info("hourly escalation finished")
	}
}

// tryLock is best-effort: without Redis every instance runs the tick, which
// is safe because every trigger is idempotent.
func (s *Scheduler) tryLock(ctx context.Context, key string) bool {
	if s.Locker == nil {
		return true
	}
	_, err := s.Locker.Obtain(ctx, key, s.LockTTL, nil)
	if err != nil {
		if !errors.Is(err, redislock.ErrNotObtained) {
			config.LogError(s.Logger, "scheduler.go", "tryLock", "obtain lock", key, err)
			return true
		}
		return false
	}
	return true
}
