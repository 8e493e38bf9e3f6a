package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
	"outlay/internal/storage"
	"outlay/internal/store"
)

func TestRecurringService_EnsureCurrentMonth(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	pub := &fakePublisher{}
	svc := NewRecurringService(st, pub)
	ctx := context.Background()

	require.NoError(t, st.Categories.Save(ctx, []string{"Rent", "Internet"}))

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	created, err := svc.EnsureCurrentMonth(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	records, err := st.Expenses.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, e := range records {
		assert.Equal(t, core.Recurring, e.Type)
		assert.Equal(t, core.StatusPending, e.Status)
		assert.Equal(t, int64(0), e.Amount.Cents)
		assert.Equal(t, "June", e.Month)
		assert.Equal(t, "2024-06-15", e.Date.String())
		assert.NotEmpty(t, e.ID)
	}

	require.Len(t, pub.messages, 1)
	assert.Equal(t, 2, pub.messages[0].Count)
}

func TestRecurringService_IdempotentWithinMonth(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewRecurringService(st, nil)
	ctx := context.Background()

	require.NoError(t, st.Categories.Save(ctx, []string{"Rent"}))

	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	created, err := svc.EnsureCurrentMonth(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = svc.EnsureCurrentMonth(ctx, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestRecurringService_ExistingRecordSuppressesPlaceholder(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewRecurringService(st, nil)
	ctx := context.Background()

	require.NoError(t, st.Categories.Save(ctx, []string{"Rent", "Internet"}))

	// A paid Rent record for June already exists.
	e := core.Expense{
		ID:          "r1",
		Date:        core.NewDate(2024, 6, 1),
		Category:    "Rent",
		Description: "june rent",
		Type:        core.Recurring,
		Amount:      core.Money{Cents: 100000},
		Status:      core.StatusPaid,
	}
	e.Normalize()
	require.NoError(t, st.Expenses.Save(ctx, []core.Expense{e}))

	created, err := svc.EnsureCurrentMonth(ctx, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, created) // only Internet

	records, err := st.Expenses.Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Internet", records[1].Category)
}

func TestRecurringService_NewMonthReseedsPlaceholders(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewRecurringService(st, nil)
	ctx := context.Background()

	require.NoError(t, st.Categories.Save(ctx, []string{"Rent"}))

	created, err := svc.EnsureCurrentMonth(ctx, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = svc.EnsureCurrentMonth(ctx, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	records, err := st.Expenses.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRecurringService_NonRecurringRecordsIgnored(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewRecurringService(st, nil)
	ctx := context.Background()

	require.NoError(t, st.Categories.Save(ctx, []string{"Rent"}))

	// A non-recurring record in a category with the same name does not count.
	e := core.Expense{
		ID:          "n1",
		Date:        core.NewDate(2024, 6, 1),
		Category:    "Rent",
		Description: "deposit",
		Type:        core.NonRecurring,
		Amount:      core.Money{Cents: 50000},
		Status:      core.StatusPaid,
	}
	e.Normalize()
	require.NoError(t, st.Expenses.Save(ctx, []core.Expense{e}))

	created, err := svc.EnsureCurrentMonth(ctx, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}
