package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"fashionswap-backend/internal/config"
	"fashionswap-backend/internal/jobs"
	"fashionswap-backend/internal/logger"
	"fashionswap-backend/internal/repository/postgres"
	"fashionswap-backend/internal/scheduler"
	"fashionswap-backend/internal/service"
	"fashionswap-backend/internal/settlement"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ("+strings.Join(jobs.JobNames, ", ")+", or 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FashionSwap cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailService := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.From, cfg.Email.FromName)
	pushService, err := service.NewPushService(context.Background(), cfg.Push.CredentialsFile, cfg.Push.ProjectID)
	if err != nil {
		logger.Error("Failed to initialize push notifications", "error", err)
		log.Fatalf("Failed to initialize push notifications: %v", err)
	}

	clock := service.Clock(time.Now)
	rentalService := service.NewRentalService(
		store.RentalRepository,
		store.ListingRepository,
		store.ProfileRepository,
		settlement.NewSimulatedGateway(cfg.Settlement.ContractAddress, cfg.SettlementDelay()),
		emailService,
		clock,
	)

	jobServices := &jobs.Services{
		Email:  emailService,
		Push:   pushService,
		Rental: rentalService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store.RentalRepository, store.ListingRepository, store.ProfileRepository, jobServices, cfg, clock)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := runJobOnce(jobRunner, *runOnce); err != nil {
			logger.Error("Job failed", "job", *runOnce, "error", err)
			fmt.Printf("Available jobs:\n")
			for _, name := range jobs.JobNames {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Printf("  - all\n")
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to register cron jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job, or all of them in order, and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) error {
	names := []string{jobName}
	if jobName == "all" {
		names = jobs.JobNames
	}
	for _, name := range names {
		res, err := jobRunner.RunJob(context.Background(), name)
		if err != nil {
			return err
		}
		logger.Info("Job summary", "job", name, "scanned", res.Scanned, "affected", res.Affected, "failed", res.Failed)
	}
	return nil
}
