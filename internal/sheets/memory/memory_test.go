package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func TestWriteSnapshotKeepsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	records := []core.Expense{{
		ID:          "a1",
		Date:        core.NewDate(2024, 6, 1),
		Category:    "Rent",
		Description: "june rent",
		Type:        core.Recurring,
		Amount:      core.Money{Cents: 100050},
		Status:      core.StatusPaid,
	}}
	require.NoError(t, s.WriteSnapshot(ctx, records))

	// Mutating the caller's slice must not leak into the stored snapshot.
	records[0].Description = "changed"
	assert.Equal(t, "june rent", s.Latest()[0].Description)

	require.NoError(t, s.WriteSnapshot(ctx, nil))
	assert.Equal(t, 2, s.Count())
	assert.Empty(t, s.Latest())
}

func TestLatestEmpty(t *testing.T) {
	assert.Nil(t, New().Latest())
}
