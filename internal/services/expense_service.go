// Package services orchestrates the domain operations over the store:
// expense CRUD, catalog management, templates and presets, recurring
// placeholders, and backups. Every mutation follows the same order: validate,
// write durably, then announce the change. A failed announcement never fails
// the request.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/export"
	"outlay/internal/store"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrTypeImmutable = errors.New("expense type cannot change after creation")
	ErrUnknownFormat = errors.New("unknown import format")
)

// EventPublisher announces collection changes to the backup worker.
type EventPublisher interface {
	PublishStoreChanged(ctx context.Context, msg *amqp.StoreEventMessage) error
}

// ExpenseService owns the expense collection lifecycle.
type ExpenseService struct {
	store     *store.Store
	publisher EventPublisher
}

func NewExpenseService(st *store.Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{store: st, publisher: publisher}
}

// List returns the full expense collection.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.Expenses.Load(ctx)
}

// Add validates and persists a new expense. The id is always assigned here;
// client-supplied ids are ignored.
func (s *ExpenseService) Add(ctx context.Context, e core.Expense) (core.Expense, error) {
	e.ID = uuid.NewString()
	e.Normalize()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	records = append(records, e)

	if err := s.store.Expenses.Save(ctx, records); err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, amqp.ActionSaved, len(records))
	slog.InfoContext(ctx, "Expense added",
		"id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return e, nil
}

// Update replaces the record with the same id. The expense type is fixed at
// creation; an update that tries to flip it is rejected.
func (s *ExpenseService) Update(ctx context.Context, e core.Expense) (core.Expense, error) {
	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return core.Expense{}, err
	}

	idx := -1
	for i := range records {
		if records[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return core.Expense{}, fmt.Errorf("update expense %s: %w", e.ID, ErrNotFound)
	}
	if e.Type != records[idx].Type {
		return core.Expense{}, ErrTypeImmutable
	}

	e.Normalize()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	records[idx] = e
	if err := s.store.Expenses.Save(ctx, records); err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, amqp.ActionSaved, len(records))
	return e, nil
}

// Delete removes one record by id.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return err
	}

	kept := records[:0]
	found := false
	for _, e := range records {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("delete expense %s: %w", id, ErrNotFound)
	}

	if err := s.store.Expenses.Save(ctx, kept); err != nil {
		return err
	}

	s.publish(ctx, amqp.ActionSaved, len(kept))
	return nil
}

// BulkDelete removes every record whose id is in ids and reports how many
// were removed. Unknown ids are ignored.
func (s *ExpenseService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	toDelete := make(map[string]bool, len(ids))
	for _, id := range ids {
		toDelete[id] = true
	}

	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	removed := 0
	for _, e := range records {
		if toDelete[e.ID] {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Expenses.Save(ctx, kept); err != nil {
		return 0, err
	}

	s.publish(ctx, amqp.ActionSaved, len(kept))
	slog.InfoContext(ctx, "Bulk delete complete", "removed", removed, "remaining", len(kept))
	return removed, nil
}

// DeleteAllByType removes every record of one expense type and reports how
// many were removed. Records of the other type are untouched.
func (s *ExpenseService) DeleteAllByType(ctx context.Context, typ core.ExpenseType) (int, error) {
	if !typ.Valid() {
		return 0, fmt.Errorf("delete all %q: %w", string(typ), core.ErrInvalidType)
	}

	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	removed := 0
	for _, e := range records {
		if e.Type == typ {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Expenses.Save(ctx, kept); err != nil {
		return 0, err
	}

	s.publish(ctx, amqp.ActionSaved, len(kept))
	slog.InfoContext(ctx, "Type-scoped delete complete",
		"type", string(typ), "removed", removed, "remaining", len(kept))
	return removed, nil
}

// ExportJSON renders the full collection as a JSON backup document.
func (s *ExpenseService) ExportJSON(ctx context.Context) ([]byte, error) {
	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return nil, err
	}
	return export.JSON(records)
}

// ExportCSV renders the full collection as a CSV backup document.
func (s *ExpenseService) ExportCSV(ctx context.Context) ([]byte, error) {
	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return nil, err
	}
	return export.CSV(records)
}

// ImportJSON replaces the whole collection with the parsed backup.
func (s *ExpenseService) ImportJSON(ctx context.Context, data []byte) (int, error) {
	records, err := export.ParseJSON(data)
	if err != nil {
		return 0, err
	}

	if err := s.store.Expenses.Save(ctx, records); err != nil {
		return 0, err
	}

	s.publish(ctx, amqp.ActionRestored, len(records))
	slog.InfoContext(ctx, "JSON import complete", "records", len(records))
	return len(records), nil
}

// ImportCSV appends the parseable rows to the existing collection.
func (s *ExpenseService) ImportCSV(ctx context.Context, data []byte) (int, error) {
	imported := export.ParseCSV(data)
	if len(imported) == 0 {
		return 0, nil
	}

	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return 0, err
	}
	records = append(records, imported...)

	if err := s.store.Expenses.Save(ctx, records); err != nil {
		return 0, err
	}

	s.publish(ctx, amqp.ActionRestored, len(records))
	slog.InfoContext(ctx, "CSV import complete", "imported", len(imported), "total", len(records))
	return len(imported), nil
}

func (s *ExpenseService) publish(ctx context.Context, action string, count int) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewStoreEventMessage(store.KeyExpenses, action, count)
	if err := s.publisher.PublishStoreChanged(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish store event",
			"collection", msg.Collection, "error", err)
	}
}
