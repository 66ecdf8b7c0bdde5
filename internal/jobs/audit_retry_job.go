package jobs

import (
	"context"
	"log/slog"

	"shipping/internal/adapters/out/auditbuf"

	"github.com/robfig/cron/v3"
)

// AuditRetryJob periodically flushes audit entries that failed to persist.
// Runs every 30 seconds; a healthy system has nothing to flush.
type AuditRetryJob struct {
	recorder *auditbuf.BufferedRecorder
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewAuditRetryJob creates a job retrying buffered audit entries.
func NewAuditRetryJob(recorder *auditbuf.BufferedRecorder, logger *slog.Logger) *AuditRetryJob {
	return &AuditRetryJob{
		recorder: recorder,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "audit_retry_job"),
	}
}

// Start begins the audit retry job.
func (j *AuditRetryJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		if j.recorder.Pending() == 0 {
			return
		}

		flushed := j.recorder.Flush(ctx)
		j.logger.InfoContext(ctx, "Flushed buffered audit entries",
			"flushed", flushed, "remaining", j.recorder.Pending())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Audit retry job started (running every 30 seconds)")
	return nil
}

// Stop stops the audit retry job.
func (j *AuditRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Audit retry job stopped")
}
