package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ScheduleInterval registers a periodic job every given duration.
func (s *SchedulerService) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	spec := fmt.Sprintf("@every %ds", seconds)
	return s.cron.AddFunc(spec, job)
}

// ScheduleReconcile keeps pending subtasks' delay fields fresh between page views.
func (s *SchedulerService) ScheduleReconcile(interval time.Duration, svc ChecklistService) (cron.EntryID, error) {
	return s.ScheduleInterval(interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		updated, err := svc.ReconcilePending(ctx, time.Now())
		if err != nil {
			log.Errorf("Reconcile sweep failed: %v", err)
			return
		}
		log.WithField("updated", updated).Info("Reconcile sweep finished")
	})
}

func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}
