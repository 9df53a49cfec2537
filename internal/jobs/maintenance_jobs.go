package jobs

import (
	"context"

	"rentaldesk-backend/internal/logger"
)

// RefreshMetrics recomputes all database-backed business gauges
func (jr *JobRunner) RefreshMetrics() {
	jr.runWithRecovery("RefreshMetrics", func() {
		if err := jr.metrics.Refresh(context.Background()); err != nil {
			logger.Error("Failed to refresh business metrics", "error", err)
		}
	})
}

// DatabaseBackup dumps the database and prunes old backup files
func (jr *JobRunner) DatabaseBackup() {
	jr.runWithRecovery("DatabaseBackup", func() {
		name, err := jr.backups.Run(context.Background())
		if err != nil {
			logger.Error("Failed to create database backup", "error", err)
			return
		}
		logger.Info("Database backup finished", "file", name)
	})
}
