package core

import (
	"errors"
	"strings"
)

const (
	Recurring    ExpenseType = "Recurring"
	NonRecurring ExpenseType = "Non-Recurring"
)

const (
	StatusPaid    Status = "PAID"
	StatusPending Status = "PENDING"
	StatusOverdue Status = "OVERDUE"
)

type (
	// ExpenseType is fixed at creation and determines which category set
	// owns the record.
	ExpenseType string

	// Status is the user-set lifecycle marker. Only PAID records participate
	// in totals; PENDING and OVERDUE drive notifications.
	Status string

	// SubTransaction is one line item of an itemized expense.
	SubTransaction struct {
		Date        Date   `json:"date"`
		Amount      Money  `json:"amount"`
		Description string `json:"description"`
	}

	// Expense is the sole persisted entity. Month is a cached display label;
	// every path that writes Date goes through Normalize so the two never
	// drift.
	Expense struct {
		ID              string           `json:"id"`
		Date            Date             `json:"date"`
		Month           string           `json:"month"`
		Category        string           `json:"category"`
		Description     string           `json:"description"`
		Type            ExpenseType      `json:"type"`
		Amount          Money            `json:"amount"`
		PaymentType     string           `json:"paymentType,omitempty"`
		By              string           `json:"by,omitempty"`
		Status          Status           `json:"status"`
		SubTransactions []SubTransaction `json:"subTransactions,omitempty"`
	}
)

var (
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidType      = errors.New("invalid expense type")
	ErrInvalidStatus    = errors.New("invalid status")
)

func (t ExpenseType) Valid() bool {
	return t == Recurring || t == NonRecurring
}

func (s Status) Valid() bool {
	return s == StatusPaid || s == StatusPending || s == StatusOverdue
}

// Normalize recomputes the derived fields: the cached month label from the
// date, and the parent amount from sub-transactions when any are present.
// It must be called by every create and edit path.
func (e *Expense) Normalize() {
	if !e.Date.IsZero() {
		e.Month = e.Date.MonthName()
	}
	if len(e.SubTransactions) > 0 {
		var sum int64
		for _, st := range e.SubTransactions {
			sum += st.Amount.Cents
		}
		e.Amount = Money{Cents: sum}
	}
}

func (e Expense) Validate() error {
	if err := e.Date.ValidateSet(); err != nil {
		return err
	}
	if !e.Type.Valid() {
		return ErrInvalidType
	}
	if !e.Status.Valid() {
		return ErrInvalidStatus
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	for _, st := range e.SubTransactions {
		if err := st.Amount.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSet rejects the zero date; expenses always carry an effective date.
func (d Date) ValidateSet() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// IsPaid reports whether the record participates in totals.
func (e Expense) IsPaid() bool {
	return e.Status == StatusPaid
}
