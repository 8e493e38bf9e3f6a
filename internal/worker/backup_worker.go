// Package worker runs the backup loop: it reacts to store-change events from
// AMQP and keeps a periodic check as a safety net in case events are lost.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"outlay/internal/amqp"
	"outlay/internal/services"
)

type BackupWorker struct {
	backups *services.BackupService
	now     func() time.Time
}

func NewBackupWorker(backups *services.BackupService) *BackupWorker {
	return &BackupWorker{
		backups: backups,
		now:     time.Now,
	}
}

// HandleStoreEvent processes one store-change event. Every change runs the
// due check; the backup itself only happens inside the month-end window and
// at most once per month.
func (w *BackupWorker) HandleStoreEvent(ctx context.Context, msg *amqp.StoreEventMessage) error {
	slog.InfoContext(ctx, "Processing store event",
		"collection", msg.Collection,
		"action", msg.Action,
		"count", msg.Count)

	return w.RunIfDue(ctx)
}

// RunIfDue takes a backup when the reminder window is open and none was
// taken this month yet.
func (w *BackupWorker) RunIfDue(ctx context.Context) error {
	now := w.now().UTC()

	due, err := w.backups.Due(ctx, now)
	if err != nil {
		return fmt.Errorf("backup due check: %w", err)
	}
	if !due {
		slog.DebugContext(ctx, "Backup not due", "date", now.Format("2006-01-02"))
		return nil
	}

	if err := w.backups.Run(ctx, now); err != nil {
		return fmt.Errorf("run backup: %w", err)
	}
	return nil
}

// StartupCheck recovers from missed events: if the worker was down through a
// month-end window, the backup happens at the next start.
func (w *BackupWorker) StartupCheck(ctx context.Context) error {
	slog.InfoContext(ctx, "Running startup backup check")
	return w.RunIfDue(ctx)
}

// RunPeriodic ticks the due check until the context is cancelled. It backs
// up the event-driven path; a quiet store still gets its month-end backup.
func (w *BackupWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic backup check", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.RunIfDue(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic backup check failed", "error", err)
			}
		}
	}
}
