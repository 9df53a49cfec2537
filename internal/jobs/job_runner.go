package jobs

import (
	"rentaldesk-backend/internal/backup"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/metrics"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	store   *postgres.Store
	metrics *metrics.Collector
	backups *backup.Manager
	email   service.EmailService
	config  *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, collector *metrics.Collector, backups *backup.Manager, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:   store,
		metrics: collector,
		backups: backups,
		email:   email,
		config:  cfg,
	}
}

// Config exposes the configuration for schedule registration
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

// RunAll runs every job once (for manual execution via cmd/cronjob)
func (jr *JobRunner) RunAll() {
	jr.RefreshMetrics()
	jr.DatabaseBackup()
	jr.SendOverdueReminders()
}
