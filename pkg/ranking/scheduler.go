package ranking

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Period is the wall-clock interval between aggregation runs.
const Period = 3 * time.Hour

type Job interface {
	AggregateLast6Hours(ctx context.Context) error
}

// Scheduler triggers the aggregator on a fixed period. A failed run is only
// logged; the next run recomputes everything from the hourly counters.
type Scheduler struct {
	Job    Job
	Period time.Duration
	Logger *zap.SugaredLogger
}

func NewScheduler(job Job, logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{Job: job, Period: Period, Logger: logger}
}

// Start runs the schedule loop in a goroutine until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.Period)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Job.AggregateLast6Hours(ctx); err != nil {
					s.Logger.Errorf("scheduled aggregation failed: %v", err)
				}
			}
		}
	}()
}
