package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"fashionswap-backend/internal/jobs"
	"fashionswap-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner. It
// fails when any configured schedule does not parse.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler
	schedules := map[string]string{
		jobs.JobSweepOverdueRentals:  cfg.SweepOverdueRentals,
		jobs.JobSendOverdueReminders: cfg.SendOverdueReminders,
		jobs.JobProcessDailyPayments: cfg.ProcessDailyPayments,
	}

	for _, name := range jobs.JobNames {
		if _, err := s.cron.AddFunc(schedules[name], s.jobs.Func(name)); err != nil {
			logger.Error("Failed to register job", "job", name, "schedule", schedules[name], "error", err)
			return err
		}
		logger.Debug("Registered job", "job", name, "schedule", schedules[name])
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the registered cron entries
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
