package filter

import (
	"sort"
	"strings"

	"outlay/internal/core"
)

// SortKey selects the list comparator.
type SortKey string

const (
	SortDateDesc    SortKey = "date-desc" // default
	SortDateAsc     SortKey = "date-asc"
	SortAmountDesc  SortKey = "amount-desc"
	SortAmountAsc   SortKey = "amount-asc"
	SortPaymentAsc  SortKey = "payment-asc"
	SortPaymentDesc SortKey = "payment-desc"
)

// Sort returns a sorted copy of records. The sort is stable so ties keep
// their filtered order; absent payment types compare as the empty string.
func Sort(records []core.Expense, key SortKey) []core.Expense {
	out := make([]core.Expense, len(records))
	copy(out, records)

	var less func(a, b core.Expense) bool
	switch key {
	case SortDateAsc:
		less = func(a, b core.Expense) bool { return a.Date.Before(b.Date.Time) }
	case SortAmountDesc:
		less = func(a, b core.Expense) bool { return a.Amount.Cents > b.Amount.Cents }
	case SortAmountAsc:
		less = func(a, b core.Expense) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortPaymentAsc:
		less = func(a, b core.Expense) bool { return strings.Compare(a.PaymentType, b.PaymentType) < 0 }
	case SortPaymentDesc:
		less = func(a, b core.Expense) bool { return strings.Compare(a.PaymentType, b.PaymentType) > 0 }
	default: // date-desc
		less = func(a, b core.Expense) bool { return a.Date.After(b.Date.Time) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
