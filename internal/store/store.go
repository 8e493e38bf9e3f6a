// Package store layers typed collections on top of the key-value store.
// Every collection lives under one fixed key as a single JSON array and is
// read and written wholesale, so a load always reflects one consistent
// snapshot of that collection.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"outlay/internal/core"
	"outlay/internal/storage"
)

// Collection keys. These names are part of the export/backup surface and
// must stay stable across releases.
const (
	KeyExpenses               = "expenses-data"
	KeyCategories             = "categories-data"
	KeyNonRecurringCategories = "non-recurring-categories-data"
	KeyPaymentTypes           = "payment-types-data"
	KeyTemplates              = "expense-templates"
	KeyFilterPresets          = "filter-presets"
	KeyLastBackup             = "last-backup-date"
)

// DefaultCategories seeds the recurring category list on first run.
func DefaultCategories() []string {
	return []string{
		"Mortgage", "Internet", "Electricity", "Trash", "HOA",
		"Water", "Phone Bill", "Subscription", "Rent",
	}
}

// DefaultNonRecurringCategories seeds the non-recurring category list.
func DefaultNonRecurringCategories() []string {
	return []string{"Handyman", "Home Improvement", "Gas", "Costco", "Amazon"}
}

// DefaultPaymentTypes seeds the payment type list.
func DefaultPaymentTypes() []string {
	return []string{"Cash", "Online", "InStore"}
}

// Collection is one typed JSON-array collection bound to a KV key. A missing
// key yields the seed value; a corrupt document is logged and replaced by the
// seed rather than wedging every caller.
type Collection[T any] struct {
	kv   storage.KV
	key  string
	seed func() []T
}

func NewCollection[T any](kv storage.KV, key string, seed func() []T) *Collection[T] {
	if seed == nil {
		seed = func() []T { return nil }
	}
	return &Collection[T]{kv: kv, key: key, seed: seed}
}

func (c *Collection[T]) Key() string { return c.key }

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.kv.Get(ctx, c.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return c.seed(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		slog.WarnContext(ctx, "Corrupt collection document, falling back to seed",
			"key", c.key, "error", err)
		return c.seed(), nil
	}
	return items, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.kv.Put(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Store bundles every collection plus the last-backup marker.
type Store struct {
	Expenses               *Collection[core.Expense]
	Categories             *Collection[string]
	NonRecurringCategories *Collection[string]
	PaymentTypes           *Collection[string]
	Templates              *Collection[core.Template]
	Presets                *Collection[core.FilterPreset]

	kv storage.KV
}

func New(kv storage.KV) *Store {
	return &Store{
		Expenses:               NewCollection[core.Expense](kv, KeyExpenses, nil),
		Categories:             NewCollection(kv, KeyCategories, DefaultCategories),
		NonRecurringCategories: NewCollection(kv, KeyNonRecurringCategories, DefaultNonRecurringCategories),
		PaymentTypes:           NewCollection(kv, KeyPaymentTypes, DefaultPaymentTypes),
		Templates:              NewCollection[core.Template](kv, KeyTemplates, nil),
		Presets:                NewCollection[core.FilterPreset](kv, KeyFilterPresets, nil),
		kv:                     kv,
	}
}

// CategoriesFor returns the category collection matching the expense type.
func (s *Store) CategoriesFor(typ core.ExpenseType) *Collection[string] {
	if typ == core.NonRecurring {
		return s.NonRecurringCategories
	}
	return s.Categories
}

// LastBackup returns the time of the most recent backup, zero if none was
// ever recorded.
func (s *Store) LastBackup(ctx context.Context) (time.Time, error) {
	raw, err := s.kv.Get(ctx, KeyLastBackup)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("load %s: %w", KeyLastBackup, err)
	}

	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		slog.WarnContext(ctx, "Unreadable last-backup marker", "error", err)
		return time.Time{}, nil
	}
	return t, nil
}

func (s *Store) SetLastBackup(ctx context.Context, t time.Time) error {
	raw := []byte(t.UTC().Format(time.RFC3339))
	if err := s.kv.Put(ctx, KeyLastBackup, raw); err != nil {
		return fmt.Errorf("save %s: %w", KeyLastBackup, err)
	}
	return nil
}
