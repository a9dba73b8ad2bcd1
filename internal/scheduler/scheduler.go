package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/avelar/finflow/internal/service"
)

// Scheduler runs the daily maintenance jobs: rolling past-due recurring
// rules forward and sending upcoming-payment reminders.
type Scheduler struct {
	svc  *service.Service
	log  *logrus.Logger
	cron *cron.Cron
}

func New(svc *service.Service, log *logrus.Logger) *Scheduler {
	return &Scheduler{svc: svc, log: log, cron: cron.New()}
}

// Start registers the daily job and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.RunDaily); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunDaily executes one maintenance pass. main also calls it once at startup
// so schedules catch up after downtime.
func (s *Scheduler) RunDaily() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	if _, err := s.svc.RolloverDueRules(ctx, now); err != nil {
		s.log.WithError(err).Error("Recurring rule rollover failed")
	}
	if err := s.svc.SendUpcomingReminders(ctx, now); err != nil {
		s.log.WithError(err).Error("Payment reminder pass failed")
	}
}
