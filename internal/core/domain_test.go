package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExpense() Expense {
	return Expense{
		ID:          "test-1",
		Date:        NewDate(2024, 1, 15),
		Category:    "Rent",
		Description: "January rent",
		Type:        Recurring,
		Amount:      Money{Cents: 100000},
		Status:      StatusPaid,
	}
}

func TestExpenseValidate(t *testing.T) {
	e := validExpense()
	require.NoError(t, e.Validate())

	missingCategory := validExpense()
	missingCategory.Category = "  "
	assert.ErrorIs(t, missingCategory.Validate(), ErrEmptyCategory)

	missingDescription := validExpense()
	missingDescription.Description = ""
	assert.ErrorIs(t, missingDescription.Validate(), ErrEmptyDescription)

	badType := validExpense()
	badType.Type = "Weekly"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidType)

	badStatus := validExpense()
	badStatus.Status = "DONE"
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidStatus)

	negative := validExpense()
	negative.Amount = Money{Cents: -1}
	assert.ErrorIs(t, negative.Validate(), ErrInvalidAmount)

	zeroDate := validExpense()
	zeroDate.Date = Date{}
	assert.ErrorIs(t, zeroDate.Validate(), ErrInvalidDate)
}

func TestNormalizeRecomputesMonth(t *testing.T) {
	e := validExpense()
	e.Month = "March" // stale cached label
	e.Normalize()
	assert.Equal(t, "January", e.Month)

	e.Date = NewDate(2024, 12, 31)
	e.Normalize()
	assert.Equal(t, "December", e.Month)
}

func TestNormalizeSumsSubTransactions(t *testing.T) {
	e := validExpense()
	e.SubTransactions = []SubTransaction{
		{Date: NewDate(2024, 1, 10), Amount: Money{Cents: 1050}, Description: "part one"},
		{Date: NewDate(2024, 1, 12), Amount: Money{Cents: 2545}, Description: "part two"},
	}
	e.Amount = Money{Cents: 999} // stale, must be re-derived
	e.Normalize()
	assert.Equal(t, int64(3595), e.Amount.Cents)

	// Removing all line items leaves the last amount untouched
	e.SubTransactions = nil
	e.Normalize()
	assert.Equal(t, int64(3595), e.Amount.Cents)
}

func TestDateUTCBucketing(t *testing.T) {
	d, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, 12, d.MonthIndex())
	assert.Equal(t, "December", d.MonthName())
}

func TestExpenseJSONRoundTrip(t *testing.T) {
	e := validExpense()
	e.PaymentType = "Online"
	e.By = "Alice"
	e.Normalize()

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var got Expense
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, e, got)
}

func TestExpenseJSONOmitsEmptyOptionalFields(t *testing.T) {
	b, err := json.Marshal(validExpense())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "subTransactions")
	assert.NotContains(t, string(b), "paymentType")
}
