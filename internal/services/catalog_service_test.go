package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
	"outlay/internal/storage"
	"outlay/internal/store"
)

func TestCatalogService_Categories(t *testing.T) {
	svc := NewCatalogService(store.New(storage.NewMemoryKV()))
	ctx := context.Background()

	recurring, err := svc.Categories(ctx, core.Recurring)
	require.NoError(t, err)
	assert.Contains(t, recurring, "Mortgage")

	nonRecurring, err := svc.Categories(ctx, core.NonRecurring)
	require.NoError(t, err)
	assert.Contains(t, nonRecurring, "Costco")
	assert.NotContains(t, nonRecurring, "Mortgage")
}

func TestCatalogService_AddCategory(t *testing.T) {
	svc := NewCatalogService(store.New(storage.NewMemoryKV()))
	ctx := context.Background()

	got, err := svc.AddCategory(ctx, core.Recurring, "  Gym ")
	require.NoError(t, err)
	assert.Contains(t, got, "Gym")

	// Duplicate rejected, case-insensitively.
	_, err = svc.AddCategory(ctx, core.Recurring, "gym")
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	_, err = svc.AddCategory(ctx, core.Recurring, "Rent")
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	_, err = svc.AddCategory(ctx, core.Recurring, "   ")
	assert.ErrorIs(t, err, ErrEmptyEntry)

	// Same name is fine on the other type's list.
	_, err = svc.AddCategory(ctx, core.NonRecurring, "Gym")
	assert.NoError(t, err)
}

func TestCatalogService_AddPaymentType(t *testing.T) {
	svc := NewCatalogService(store.New(storage.NewMemoryKV()))
	ctx := context.Background()

	got, err := svc.AddPaymentType(ctx, "Credit Card")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cash", "Online", "InStore", "Credit Card"}, got)

	_, err = svc.AddPaymentType(ctx, "cash")
	assert.ErrorIs(t, err, ErrDuplicateEntry)
}
