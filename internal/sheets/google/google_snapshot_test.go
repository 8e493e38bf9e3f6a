package google

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func TestSnapshotRows(t *testing.T) {
	e := core.Expense{
		ID:          "a1",
		Date:        core.NewDate(2024, 6, 1),
		Category:    "Rent",
		Description: "june rent",
		Type:        core.Recurring,
		Amount:      core.Money{Cents: 100050},
		PaymentType: "Online",
		By:          "Sam",
		Status:      core.StatusPaid,
	}
	e.Normalize()

	rows := snapshotRows([]core.Expense{e})
	require.Len(t, rows, 2)

	assert.Equal(t, []any{
		"Date", "Month", "Category", "Description", "Type",
		"Amount", "Payment Type", "By", "Status",
	}, rows[0])
	assert.Equal(t, []any{
		"2024-06-01", "June", "Rent", "june rent", "Recurring",
		1000.5, "Online", "Sam", "PAID",
	}, rows[1])
}

func TestSnapshotRowsEmptyCollection(t *testing.T) {
	rows := snapshotRows(nil)
	require.Len(t, rows, 1) // header only
}

func TestNewRequiresSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
