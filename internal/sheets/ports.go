package sheets

import (
	"context"

	"outlay/internal/core"
)

// SnapshotWriter is the outbound port for mirroring the expense collection
// to an external spreadsheet. The whole collection is written each time; the
// mirror is a copy, not a log.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, records []core.Expense) error
}
