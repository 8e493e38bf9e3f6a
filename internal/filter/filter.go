package filter

import (
	"strings"

	"outlay/internal/core"
)

// Apply runs the composed filter pass: record type first (cheapest, most
// selective), then the basic criteria, then any active advanced criteria
// AND-ed on top. Input order is preserved; ordering is the sort step's job.
//
// The basic and advanced date ranges are independent and may both be active;
// a record must satisfy every active bound.
func Apply(records []core.Expense, typ core.ExpenseType, basic Basic, adv Advanced) []core.Expense {
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if e.Type != typ {
			continue
		}
		if !matchBasic(e, basic) {
			continue
		}
		if !adv.IsZero() && !matchAdvanced(e, adv) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchBasic(e core.Expense, b Basic) bool {
	if !b.DateFrom.IsZero() && e.Date.Before(b.DateFrom.Time) {
		return false
	}
	if !b.DateTo.IsZero() && e.Date.After(b.DateTo.Time) {
		return false
	}
	if len(b.SelectedCategories) > 0 && !contains(b.SelectedCategories, e.Category) {
		return false
	}
	if b.Query != "" && !containsFold(e.Description, b.Query) {
		return false
	}
	return true
}

func matchAdvanced(e core.Expense, a Advanced) bool {
	if a.QuickSearch != "" && !matchQuickSearch(e, a.QuickSearch) {
		return false
	}
	if a.Category != "" && e.Category != a.Category {
		return false
	}
	if a.PaymentType != "" && e.PaymentType != a.PaymentType {
		return false
	}
	if a.Status != "" && string(e.Status) != a.Status {
		return false
	}
	if a.Month != "" && e.Month != a.Month {
		return false
	}
	if a.MinCents != nil && e.Amount.Cents < *a.MinCents {
		return false
	}
	if a.MaxCents != nil && e.Amount.Cents > *a.MaxCents {
		return false
	}
	if !a.StartDate.IsZero() && e.Date.Before(a.StartDate.Time) {
		return false
	}
	if !a.EndDate.IsZero() && e.Date.After(a.EndDate.Time) {
		return false
	}
	if a.PaidBy != "" && !containsFold(e.By, a.PaidBy) {
		return false
	}
	return true
}

// matchQuickSearch ORs a case-insensitive substring match over the four
// searchable sub-fields: description, category, stringified amount, and the
// month label. A record passes if any of them match.
func matchQuickSearch(e core.Expense, term string) bool {
	return containsFold(e.Description, term) ||
		containsFold(e.Category, term) ||
		strings.Contains(e.Amount.String(), term) ||
		containsFold(e.Month, term)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
