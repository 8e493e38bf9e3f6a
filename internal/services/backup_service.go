package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"outlay/internal/core"
	"outlay/internal/export"
	"outlay/internal/notify"
	"outlay/internal/store"
)

// ExpenseMirror receives a full snapshot of the collection, e.g. a Google
// Sheets tab.
type ExpenseMirror interface {
	WriteSnapshot(ctx context.Context, records []core.Expense) error
}

// BackupService writes dated JSON and CSV snapshots of the expense
// collection to the backup directory and records the backup time. A mirror,
// when configured, gets the same snapshot; mirror failures are logged but do
// not fail the backup.
type BackupService struct {
	store  *store.Store
	dir    string
	mirror ExpenseMirror
}

func NewBackupService(st *store.Store, dir string, mirror ExpenseMirror) *BackupService {
	return &BackupService{store: st, dir: dir, mirror: mirror}
}

// Due reports whether the monthly backup reminder window is open.
func (s *BackupService) Due(ctx context.Context, now time.Time) (bool, error) {
	last, err := s.store.LastBackup(ctx)
	if err != nil {
		return false, err
	}
	return notify.BackupDue(last, now), nil
}

// Run takes a backup: both formats, then the marker. The marker is only
// advanced after both files are on disk.
func (s *BackupService) Run(ctx context.Context, now time.Time) error {
	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return fmt.Errorf("load expenses: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	jsonData, err := export.JSON(records)
	if err != nil {
		return err
	}
	csvData, err := export.CSV(records)
	if err != nil {
		return err
	}

	jsonPath := filepath.Join(s.dir, export.Filename("expenses", "json", now))
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("write JSON backup: %w", err)
	}
	csvPath := filepath.Join(s.dir, export.Filename("expenses", "csv", now))
	if err := os.WriteFile(csvPath, csvData, 0644); err != nil {
		return fmt.Errorf("write CSV backup: %w", err)
	}

	if err := s.store.SetLastBackup(ctx, now); err != nil {
		return fmt.Errorf("record backup time: %w", err)
	}

	if s.mirror != nil {
		if err := s.mirror.WriteSnapshot(ctx, records); err != nil {
			slog.ErrorContext(ctx, "Failed to mirror backup", "error", err)
		}
	}

	slog.InfoContext(ctx, "Backup complete",
		"records", len(records),
		"json", jsonPath,
		"csv", csvPath)
	return nil
}
