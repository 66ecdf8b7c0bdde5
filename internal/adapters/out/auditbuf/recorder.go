// Package auditbuf implements a best-effort audit recorder. Assignment
// changes are recorded after the owning transaction commits, so a storage
// failure here must not fail the command; failed entries are buffered in
// memory and retried by a background job.
package auditbuf

import (
	"context"
	"log/slog"
	"sync"

	"shipping/internal/core/domain/model/audit"
)

// Writer persists audit entries. Satisfied by the postgres audit repository.
type Writer interface {
	Append(ctx context.Context, entry *audit.Entry) error
}

// BufferedRecorder writes audit entries through the Writer, keeping entries
// that failed to persist in an in-memory queue for later retry. The queue is
// lost on process restart; the audit trail is best-effort by contract.
type BufferedRecorder struct {
	writer Writer
	log    *slog.Logger

	mu      sync.Mutex
	pending []*audit.Entry
}

// NewBufferedRecorder creates a recorder writing through the given Writer.
func NewBufferedRecorder(writer Writer, log *slog.Logger) *BufferedRecorder {
	return &BufferedRecorder{
		writer: writer,
		log:    log,
	}
}

// Record persists the entry, buffering it for retry when the write fails.
func (r *BufferedRecorder) Record(ctx context.Context, entry *audit.Entry) {
	if err := entry.Validate(); err != nil {
		r.log.Warn("dropping invalid audit entry", "error", err)
		return
	}

	if err := r.writer.Append(ctx, entry); err != nil {
		r.log.Warn("audit write failed, buffering entry",
			"orderId", entry.OrderID().String(), "error", err)
		r.enqueue(entry)
	}
}

// Flush retries all buffered entries. Entries that fail again stay buffered.
// Returns the number of entries successfully flushed.
func (r *BufferedRecorder) Flush(ctx context.Context) int {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	flushed := 0
	for _, entry := range batch {
		if err := r.writer.Append(ctx, entry); err != nil {
			r.log.Warn("audit retry failed",
				"orderId", entry.OrderID().String(), "error", err)
			r.enqueue(entry)
			continue
		}
		flushed++
	}
	return flushed
}

// Pending reports how many entries await retry.
func (r *BufferedRecorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *BufferedRecorder) enqueue(entry *audit.Entry) {
	r.mu.Lock()
	r.pending = append(r.pending, entry)
	r.mu.Unlock()
}
