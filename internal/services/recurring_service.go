package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"outlay/internal/amqp"
	"outlay/internal/core"
	"outlay/internal/store"
)

// RecurringService seeds the current month with placeholder records: every
// recurring category that has no record in the current UTC month gets a $0
// PENDING entry, so the bill shows up as owed before the user fills in the
// real amount.
type RecurringService struct {
	store     *store.Store
	publisher EventPublisher
}

func NewRecurringService(st *store.Store, publisher EventPublisher) *RecurringService {
	return &RecurringService{store: st, publisher: publisher}
}

// EnsureCurrentMonth creates the missing placeholders for the month that
// contains now and returns how many were created. It is idempotent within a
// month: categories that already have any recurring record this month are
// left alone, whatever that record's status or amount.
func (s *RecurringService) EnsureCurrentMonth(ctx context.Context, now time.Time) (int, error) {
	categories, err := s.store.Categories.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load categories: %w", err)
	}
	records, err := s.store.Expenses.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load expenses: %w", err)
	}

	now = now.UTC()
	today := core.NewDate(now.Year(), int(now.Month()), now.Day())

	seen := make(map[string]bool, len(categories))
	for _, e := range records {
		if e.Type == core.Recurring && e.Date.SameMonth(today) {
			seen[e.Category] = true
		}
	}

	created := 0
	for _, category := range categories {
		if seen[category] {
			continue
		}

		placeholder := core.Expense{
			ID:          uuid.NewString(),
			Date:        today,
			Category:    category,
			Description: category,
			Type:        core.Recurring,
			Amount:      core.Money{Cents: 0},
			Status:      core.StatusPending,
		}
		placeholder.Normalize()
		records = append(records, placeholder)
		created++
	}

	if created == 0 {
		return 0, nil
	}

	if err := s.store.Expenses.Save(ctx, records); err != nil {
		return 0, fmt.Errorf("save placeholders: %w", err)
	}

	if s.publisher != nil {
		msg := amqp.NewStoreEventMessage(store.KeyExpenses, amqp.ActionSaved, len(records))
		if err := s.publisher.PublishStoreChanged(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish store event", "error", err)
		}
	}

	slog.InfoContext(ctx, "Recurring placeholders created",
		"created", created,
		"month", today.MonthName(),
		"year", today.Year())
	return created, nil
}
