package usecase

import (
	"fmt"
	"time"

	applogger "FinDash/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler runs repeating jobs. Jobs must be quick; the dashboard's jobs only
// post events to its loop.
type Scheduler interface {
	Every(interval time.Duration, job func()) error
	Start()
	Stop()
}

// CronScheduler runs jobs on constant-delay cron schedules.
type CronScheduler struct {
	cron *cron.Cron
}

// NewCronScheduler creates a scheduler. Panics inside jobs are recovered and logged.
func NewCronScheduler(l *applogger.Logger) *CronScheduler {
	clog := cron.PrintfLogger(l)
	return &CronScheduler{
		cron: cron.New(
			cron.WithLogger(clog),
			cron.WithChain(cron.Recover(clog)),
		),
	}
}

// Every schedules job at a fixed interval. cron.Every rounds sub-second intervals up to one second.
func (s *CronScheduler) Every(interval time.Duration, job func()) error {
	if interval <= 0 {
		return fmt.Errorf("schedule: interval must be positive, got %s", interval)
	}
	s.cron.Schedule(cron.Every(interval), cron.FuncJob(job))
	return nil
}

// Start begins running scheduled jobs in the background.
func (s *CronScheduler) Start() { s.cron.Start() }

// Stop halts the schedule and waits for running jobs to return.
func (s *CronScheduler) Stop() {
	<-s.cron.Stop().Done()
}
