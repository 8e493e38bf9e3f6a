package core

import "time"

// Template is a saved draft of form field values for fast re-entry of
// similar expenses. Templates have their own lifecycle, independent of the
// expense store.
type Template struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        ExpenseType `json:"type"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Amount      Money       `json:"amount"`
	PaymentType string      `json:"paymentType"`
	By          string      `json:"by"`
	Status      Status      `json:"status"`
	IsFavorite  bool        `json:"isFavorite"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// FilterCriteria is the raw advanced-filter snapshot as the user entered it.
// Values are kept verbatim (including "All" sentinels and unparseable amount
// bounds) so saved presets restore exactly; the filter engine collapses the
// sentinels when the criteria are applied.
type FilterCriteria struct {
	QuickSearch string `json:"quickSearch,omitempty"`
	Category    string `json:"category,omitempty"`
	PaymentType string `json:"paymentType,omitempty"`
	Status      string `json:"status,omitempty"`
	MinAmount   string `json:"minAmount,omitempty"`
	MaxAmount   string `json:"maxAmount,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	PaidBy      string `json:"paidBy,omitempty"`
	Month       string `json:"month,omitempty"`
}

// FilterPreset is a saved named snapshot of advanced-filter criteria.
type FilterPreset struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Criteria   FilterCriteria `json:"criteria"`
	IsFavorite bool           `json:"isFavorite"`
	CreatedAt  time.Time      `json:"createdAt"`
}
