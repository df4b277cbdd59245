package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kottage-backend/internal/config"
	"kottage-backend/internal/jobs"
	"kottage-backend/internal/logger"
	"kottage-backend/internal/repository/realtime"
	"kottage-backend/internal/scheduler"
	"kottage-backend/internal/service"
	"kottage-backend/internal/store"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-no-shows', 'reconcile-availability', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Kottage Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Store
	backend, err := newStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err)
		log.Fatalf("Failed to initialize store: %v", err)
	}
	logger.Info("Store initialized", "type", cfg.Store.Type)

	// Initialize Repositories
	registry := realtime.NewRegistry(backend)

	// Initialize Services
	emailService := service.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromEmail,
		cfg.Email.FromName,
	)
	analytics := service.NewLogAnalytics()

	reservationService := service.NewReservationService(
		registry.PropertyRepository,
		registry.BlockedDateRepository,
		registry.ReservationRepository,
		emailService,
		analytics,
		cfg.Booking.CleaningFeeCents,
		cfg.Booking.ServiceFeePercent,
	)

	jobServices := &jobs.Services{
		Reservation: reservationService,
		Email:       emailService,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(registry, jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutdown signal received")
	cronScheduler.Stop()
}

// runJobOnce runs a single named job and returns
func runJobOnce(jr *jobs.JobRunner, name string) {
	switch name {
	case "mark-no-shows":
		jr.MarkNoShows()
	case "reconcile-availability":
		jr.ReconcileAvailability()
	case "all-nightly":
		jr.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job", "job", name)
	}
}

// newStore selects the store backend from configuration
func newStore(cfg *config.Config) (store.Store, error) {
	if cfg.Store.Type == "firebase" {
		return store.NewFirebaseStore(context.Background(), cfg.Store.DatabaseURL, cfg.Store.CredentialsFile)
	}
	logger.Warn("Using in-memory store; data will not survive a restart")
	return store.NewMemoryStore(), nil
}
