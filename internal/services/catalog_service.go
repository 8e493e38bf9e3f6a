package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outlay/internal/core"
	"outlay/internal/store"
)

var (
	ErrDuplicateEntry = errors.New("entry already exists")
	ErrEmptyEntry     = errors.New("entry cannot be empty")
)

// CatalogService manages the category lists (one per expense type) and the
// payment type list. Matching is case-insensitive on insert so "rent" and
// "Rent" cannot coexist, but stored casing is preserved.
type CatalogService struct {
	store *store.Store
}

func NewCatalogService(st *store.Store) *CatalogService {
	return &CatalogService{store: st}
}

func (s *CatalogService) Categories(ctx context.Context, typ core.ExpenseType) ([]string, error) {
	return s.store.CategoriesFor(typ).Load(ctx)
}

func (s *CatalogService) AddCategory(ctx context.Context, typ core.ExpenseType, name string) ([]string, error) {
	return s.addEntry(ctx, s.store.CategoriesFor(typ), name)
}

func (s *CatalogService) PaymentTypes(ctx context.Context) ([]string, error) {
	return s.store.PaymentTypes.Load(ctx)
}

func (s *CatalogService) AddPaymentType(ctx context.Context, name string) ([]string, error) {
	return s.addEntry(ctx, s.store.PaymentTypes, name)
}

func (s *CatalogService) addEntry(ctx context.Context, col *store.Collection[string], name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyEntry
	}

	entries, err := col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range entries {
		if strings.EqualFold(existing, name) {
			return nil, fmt.Errorf("add %q: %w", name, ErrDuplicateEntry)
		}
	}

	entries = append(entries, name)
	if err := col.Save(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}
