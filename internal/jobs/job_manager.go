package jobs

import (
	"fmt"
	"log/slog"

	"shipping/internal/adapters/out/auditbuf"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	auditRetryJob *AuditRetryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(recorder *auditbuf.BufferedRecorder, logger *slog.Logger) *JobManager {
	return &JobManager{
		auditRetryJob: NewAuditRetryJob(recorder, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.auditRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start audit retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.auditRetryJob.Stop()
}
