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

func TestTemplateService_AddListDelete(t *testing.T) {
	svc := NewTemplateService(store.New(storage.NewMemoryKV()))
	ctx := context.Background()

	added, err := svc.Add(ctx, core.Template{
		Name:     "Monthly rent",
		Type:     core.Recurring,
		Category: "Rent",
		Amount:   core.Money{Cents: 100000},
		Status:   core.StatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.False(t, added.CreatedAt.IsZero())

	templates, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	require.NoError(t, svc.Delete(ctx, added.ID))
	assert.ErrorIs(t, svc.Delete(ctx, added.ID), ErrNotFound)
}

func TestTemplateService_AddRequiresName(t *testing.T) {
	svc := NewTemplateService(store.New(storage.NewMemoryKV()))

	_, err := svc.Add(context.Background(), core.Template{Name: "  "})
	assert.ErrorIs(t, err, ErrEmptyEntry)
}

func TestTemplateService_ToggleFavorite(t *testing.T) {
	svc := NewTemplateService(store.New(storage.NewMemoryKV()))
	ctx := context.Background()

	added, err := svc.Add(ctx, core.Template{Name: "Internet bill"})
	require.NoError(t, err)
	assert.False(t, added.IsFavorite)

	toggled, err := svc.ToggleFavorite(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = svc.ToggleFavorite(ctx, added.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)

	_, err = svc.ToggleFavorite(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPresetService_PersistsCriteriaVerbatim(t *testing.T) {
	st := store.New(storage.NewMemoryKV())
	svc := NewPresetService(st)
	ctx := context.Background()

	criteria := core.FilterCriteria{
		QuickSearch: "rent",
		Category:    "All",
		Status:      "PAID",
		MinAmount:   "abc", // raw form state, kept as-is
	}
	added, err := svc.Add(ctx, core.FilterPreset{Name: "Paid rent", Criteria: criteria})
	require.NoError(t, err)

	presets, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, criteria, presets[0].Criteria)
	assert.Equal(t, "All", presets[0].Criteria.Category)

	toggled, err := svc.ToggleFavorite(ctx, added.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	require.NoError(t, svc.Delete(ctx, added.ID))
	assert.ErrorIs(t, svc.Delete(ctx, added.ID), ErrNotFound)
}
