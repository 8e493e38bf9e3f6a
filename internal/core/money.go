// Package core holds the expense tracker's domain types.
//
// Money is kept as fixed-point cents internally; decimal strings appear only
// at the JSON/CSV boundary. This keeps the sub-transaction sum invariant
// exact instead of tolerating floating rounding.
package core

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Money is a non-negative currency amount in minor units (cents).
type Money struct {
	Cents int64
}

var ErrInvalidAmount = errors.New("invalid amount")

// ParseCents converts a decimal string to cents with half-up rounding on the
// third decimal place. Zero is allowed (auto-generated placeholder records
// carry a $0 amount); negative values are not.
//
// Examples:
//
//	ParseCents("12.34") -> 1234, nil
//	ParseCents("12.346") -> 1235, nil (rounds up)
//	ParseCents("0") -> 0, nil
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// MoneyFromFloat converts a decimal currency value to cents with half-up
// rounding. Used at the JSON boundary where amounts arrive as numbers.
func MoneyFromFloat(v float64) Money {
	if v >= 0 {
		return Money{Cents: int64(v*100 + 0.5)}
	}
	return Money{Cents: int64(v*100 - 0.5)}
}

// Float returns the decimal currency value for display and aggregation output.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount the way the number would print in a summary:
// no trailing zeros ("1000", "12.34", "12.5").
func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', -1, 64)
}

// Format renders the amount with exactly two decimals ("1000.00").
func (m Money) Format() string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10) + "." + twoDigits(c%100)
	if neg {
		return "-" + s
	}
	return s
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MarshalJSON writes the amount as a decimal number, matching the stored
// record shape ("amount": 12.34).
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return ErrInvalidAmount
		}
		s = unquoted
	}
	if s == "null" || s == "" {
		m.Cents = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	*m = MoneyFromFloat(v)
	return nil
}
