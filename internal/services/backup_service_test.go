package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
	"outlay/internal/storage"
	"outlay/internal/store"
)

type fakeMirror struct {
	snapshots [][]core.Expense
	err       error
}

func (f *fakeMirror) WriteSnapshot(_ context.Context, records []core.Expense) error {
	if f.err != nil {
		return f.err
	}
	f.snapshots = append(f.snapshots, records)
	return nil
}

func TestBackupService_Run(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	dir := filepath.Join(t.TempDir(), "backups")
	mirror := &fakeMirror{}
	svc := NewBackupService(st, dir, mirror)
	ctx := context.Background()

	e := validExpense()
	e.ID = "a1"
	e.Normalize()
	require.NoError(t, st.Expenses.Save(ctx, []core.Expense{e}))

	now := time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Run(ctx, now))

	jsonData, err := os.ReadFile(filepath.Join(dir, "expenses-2024-06-25.json"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"june rent"`)

	csvData, err := os.ReadFile(filepath.Join(dir, "expenses-2024-06-25.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "june rent")

	last, err := st.LastBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, last)

	require.Len(t, mirror.snapshots, 1)
	assert.Len(t, mirror.snapshots[0], 1)
}

func TestBackupService_RunSurvivesMirrorFailure(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewBackupService(st, t.TempDir(), &fakeMirror{err: errors.New("sheets down")})
	ctx := context.Background()

	now := time.Date(2024, 6, 25, 12, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Run(ctx, now))

	last, err := st.LastBackup(ctx)
	require.NoError(t, err)
	assert.False(t, last.IsZero())
}

func TestBackupService_Due(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewBackupService(st, t.TempDir(), nil)
	ctx := context.Background()

	// Mid-month: not due even with no backup on record.
	due, err := svc.Due(ctx, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, due)

	// Last week of the month with no backup: due.
	due, err = svc.Due(ctx, time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, due)

	// After a backup this month: no longer due.
	require.NoError(t, svc.Run(ctx, time.Date(2024, 6, 27, 0, 0, 0, 0, time.UTC)))
	due, err = svc.Due(ctx, time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, due)
}
