// Package filter implements the client-side list pipeline: predicate
// composition over the expense store, total-order sorting, and fixed-size
// pagination. Everything here is a pure function of (records, criteria).
package filter

import (
	"strconv"
	"strings"

	"outlay/internal/core"
)

// Basic is the always-visible filter bar: date range, multi-select
// categories, and free-text search over descriptions. Zero values mean "no
// constraint"; an empty category set matches everything, not nothing.
type Basic struct {
	DateFrom           core.Date
	DateTo             core.Date
	SelectedCategories []string
	Query              string
}

// Advanced is the parsed form of a core.FilterCriteria snapshot. The three
// "no constraint" encodings of the raw form (absent, empty string, "All")
// collapse into one unset representation here: empty string, nil bound, or
// zero date.
type Advanced struct {
	QuickSearch string
	Category    string
	PaymentType string
	Status      string
	MinCents    *int64
	MaxCents    *int64
	StartDate   core.Date
	EndDate     core.Date
	PaidBy      string
	Month       string
}

// ParseAdvanced collapses the raw criteria's sentinels. Amount bounds that do
// not parse as numbers impose no constraint; same for malformed dates.
func ParseAdvanced(c core.FilterCriteria) Advanced {
	adv := Advanced{
		QuickSearch: settled(c.QuickSearch),
		Category:    settled(c.Category),
		PaymentType: settled(c.PaymentType),
		Status:      settled(c.Status),
		PaidBy:      settled(c.PaidBy),
		Month:       settled(c.Month),
	}
	adv.MinCents = parseBound(c.MinAmount)
	adv.MaxCents = parseBound(c.MaxAmount)
	if d, err := core.ParseDate(c.StartDate); err == nil {
		adv.StartDate = d
	}
	if d, err := core.ParseDate(c.EndDate); err == nil {
		adv.EndDate = d
	}
	return adv
}

// IsZero reports whether no advanced criterion is active.
func (a Advanced) IsZero() bool {
	return a.QuickSearch == "" && a.Category == "" && a.PaymentType == "" &&
		a.Status == "" && a.MinCents == nil && a.MaxCents == nil &&
		a.StartDate.IsZero() && a.EndDate.IsZero() && a.PaidBy == "" && a.Month == ""
}

func settled(v string) string {
	v = strings.TrimSpace(v)
	if v == "All" {
		return ""
	}
	return v
}

func parseBound(v string) *int64 {
	v = strings.TrimSpace(v)
	if v == "" || v == "All" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil // unparseable bounds are ignored, not rejected
	}
	cents := core.MoneyFromFloat(f).Cents
	return &cents
}
