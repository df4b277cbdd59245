package jobs

import (
	"kottage-backend/internal/config"
	"kottage-backend/internal/logger"
	"kottage-backend/internal/repository/realtime"
	"kottage-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	registry *realtime.Registry
	services *Services
	config   *config.Config
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reservation service.ReservationService
	Email       service.EmailService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(registry *realtime.Registry, services *Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		registry: registry,
		services: services,
		config:   cfg,
	}
}

// Config returns the runner's configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
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

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.MarkNoShows()
	jr.ReconcileAvailability()
}
