// Package memory holds an in-memory snapshot writer for tests and runs
// without a configured spreadsheet.
package memory

import (
	"context"
	"sync"

	"outlay/internal/core"
	ports "outlay/internal/sheets"
)

type Store struct {
	mu        sync.Mutex
	snapshots [][]core.Expense
}

var _ ports.SnapshotWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) WriteSnapshot(_ context.Context, records []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]core.Expense, len(records))
	copy(snapshot, records)
	s.snapshots = append(s.snapshots, snapshot)
	return nil
}

// Latest returns the most recent snapshot, nil if none was written.
func (s *Store) Latest() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.snapshots) == 0 {
		return nil
	}
	return s.snapshots[len(s.snapshots)-1]
}

// Count returns how many snapshots were written.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}
