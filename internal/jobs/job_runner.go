package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"fashionswap-backend/internal/config"
	"fashionswap-backend/internal/domain"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository"
	"fashionswap-backend/internal/service"
)

// Job names accepted by RunJob and the cronjob --run-once flag.
const (
	JobSweepOverdueRentals  = "sweep-overdue-rentals"
	JobSendOverdueReminders = "send-overdue-reminders"
	JobProcessDailyPayments = "process-daily-payments"
)

var ErrUnknownJob = errors.New("unknown job")

// JobNames lists every job in the order "all" runs them.
var JobNames = []string{JobSweepOverdueRentals, JobSendOverdueReminders, JobProcessDailyPayments}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals  repository.RentalRepository
	listings repository.ListingRepository
	profiles repository.ProfileRepository
	services *Services
	config   *config.Config
	clock    service.Clock
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Email  service.EmailService
	Push   service.PushService
	Rental service.RentalService
}

// Result counts what one job run touched.
type Result struct {
	Scanned  int
	Affected int
	Failed   int
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	rentals repository.RentalRepository,
	listings repository.ListingRepository,
	profiles repository.ProfileRepository,
	services *Services,
	cfg *config.Config,
	clock service.Clock,
) *JobRunner {
	return &JobRunner{
		rentals:  rentals,
		listings: listings,
		profiles: profiles,
		services: services,
		config:   cfg,
		clock:    clock,
	}
}

// Config exposes the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

func (jr *JobRunner) now() time.Time {
	if jr.clock == nil {
		return time.Now().UTC()
	}
	return jr.clock().UTC()
}

// RunJob executes a single job by name.
func (jr *JobRunner) RunJob(ctx context.Context, name string) (Result, error) {
	switch name {
	case JobSweepOverdueRentals:
		return jr.SweepOverdueRentals(ctx)
	case JobSendOverdueReminders:
		return jr.SendOverdueReminders(ctx)
	case JobProcessDailyPayments:
		return jr.ProcessDailyPayments(ctx)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
}

// Func adapts a job for the cron scheduler.
func (jr *JobRunner) Func(name string) func() {
	return func() {
		jr.runWithRecovery(name, func() {
			res, err := jr.RunJob(context.Background(), name)
			if err != nil {
				logger.Error("Job failed", "job", name, "error", err)
				return
			}
			logger.Info("Job summary", "job", name, "scanned", res.Scanned, "affected", res.Affected, "failed", res.Failed)
		})
	}
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// forEachOpen pages through every non-completed rental and calls fn with at
// most Jobs.Concurrency calls in flight. fn reports whether it acted on the
// rental; an error counts as a failure without stopping the run.
func (jr *JobRunner) forEachOpen(ctx context.Context, job string, fn func(context.Context, *domain.Rental) (bool, error)) (Result, error) {
	var scanned, affected, failed atomic.Int64
	result := func() Result {
		return Result{Scanned: int(scanned.Load()), Affected: int(affected.Load()), Failed: int(failed.Load())}
	}

	batchSize := jr.config.Jobs.BatchSize
	afterID := ""
	for {
		batch, err := jr.rentals.ListOpen(ctx, afterID, batchSize)
		if err != nil {
			return result(), fmt.Errorf("failed to list open rentals: %w", err)
		}

		var g errgroup.Group
		g.SetLimit(jr.config.Jobs.Concurrency)
		for i := range batch {
			rental := &batch[i]
			g.Go(func() error {
				scanned.Add(1)
				acted, err := fn(ctx, rental)
				if err != nil {
					failed.Add(1)
					logger.Error("Job step failed", "job", job, "rental_id", rental.ID, "error", err)
					return nil
				}
				if acted {
					affected.Add(1)
				}
				return nil
			})
		}
		_ = g.Wait()

		if len(batch) < batchSize {
			return result(), nil
		}
		if err := ctx.Err(); err != nil {
			return result(), err
		}
		afterID = batch[len(batch)-1].ID
	}
}
