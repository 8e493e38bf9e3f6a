// Package summary computes the paid-expense aggregations behind the summary
// cards: per-category totals, yearly totals, and per-category rolling
// averages over active months.
package summary

import (
	"sort"

	"outlay/internal/core"
)

// AllYears is the explicit "no year restriction" value.
const AllYears = 0

// AvailableYears lists the distinct UTC years present in the data, newest
// first.
func AvailableYears(records []core.Expense) []int {
	seen := map[int]bool{}
	for _, e := range records {
		seen[e.Date.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// CategorySummary totals PAID records per category for the given year and
// type. Every category in the provided list gets an entry, zero-total
// categories included; callers may hide zeros, the aggregation never does.
func CategorySummary(records []core.Expense, categories []string, year int, typ core.ExpenseType) map[string]core.Money {
	out := make(map[string]core.Money, len(categories))
	for _, cat := range categories {
		out[cat] = core.Money{}
	}
	for _, e := range records {
		if !includeInTotals(e, year, typ) {
			continue
		}
		if _, known := out[e.Category]; !known {
			continue
		}
		out[e.Category] = core.Money{Cents: out[e.Category].Cents + e.Amount.Cents}
	}
	return out
}

// YearlyTotal sums PAID records of the given type for one year, or across
// all years when year is AllYears.
func YearlyTotal(records []core.Expense, year int, typ core.ExpenseType) core.Money {
	var total int64
	for _, e := range records {
		if includeInTotals(e, year, typ) {
			total += e.Amount.Cents
		}
	}
	return core.Money{Cents: total}
}

// PaidCount counts the records participating in YearlyTotal.
func PaidCount(records []core.Expense, year int, typ core.ExpenseType) int {
	n := 0
	for _, e := range records {
		if includeInTotals(e, year, typ) {
			n++
		}
	}
	return n
}

func includeInTotals(e core.Expense, year int, typ core.ExpenseType) bool {
	if e.Type != typ || !e.IsPaid() {
		return false
	}
	return year == AllYears || e.Date.Year() == year
}

// monthKey identifies one (year, month) activity bucket.
type monthKey struct {
	year  int
	month int
}

// CategoryAverages computes, for each category with paid history, the
// average spend per month that actually had activity. The divisor is the
// count of active months, not 12.
func CategoryAverages(records []core.Expense) map[string]core.Money {
	sums := map[string]map[monthKey]int64{}
	for _, e := range records {
		if !e.IsPaid() {
			continue
		}
		buckets, ok := sums[e.Category]
		if !ok {
			buckets = map[monthKey]int64{}
			sums[e.Category] = buckets
		}
		buckets[monthKey{e.Date.Year(), e.Date.MonthIndex()}] += e.Amount.Cents
	}

	out := make(map[string]core.Money, len(sums))
	for cat, buckets := range sums {
		var total int64
		for _, cents := range buckets {
			total += cents
		}
		out[cat] = core.Money{Cents: total / int64(len(buckets))}
	}
	return out
}

// SpendLevel classifies one month's category spend against the historical
// average.
type SpendLevel string

const (
	SpendAbove   SpendLevel = "above"
	SpendNear    SpendLevel = "near"
	SpendBelow   SpendLevel = "below"
	SpendNeutral SpendLevel = "neutral" // no history to compare against
)

// ClassifySpend compares a month's spend to the category average using the
// fixed thresholds: ratio > 1.2 above, (0.8, 1.2] near, <= 0.8 below.
func ClassifySpend(amount, average core.Money) SpendLevel {
	if average.Cents <= 0 {
		return SpendNeutral
	}
	ratio := float64(amount.Cents) / float64(average.Cents)
	switch {
	case ratio > 1.2:
		return SpendAbove
	case ratio > 0.8:
		return SpendNear
	default:
		return SpendBelow
	}
}
