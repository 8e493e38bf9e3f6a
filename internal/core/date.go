package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Date is a calendar day in a fixed UTC calendar. All temporal grouping
// (year buckets, month buckets) reads the UTC components so a record dated
// 2024-12-31 lands in 2024 regardless of the host timezone.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string into a UTC Date.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current UTC calendar day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// Year returns the UTC calendar year.
func (d Date) Year() int {
	return d.Time.UTC().Year()
}

// MonthIndex returns the UTC month as 1-12.
func (d Date) MonthIndex() int {
	return int(d.Time.UTC().Month())
}

// MonthName returns the full English month name ("January" .. "December").
func (d Date) MonthName() string {
	return d.Time.UTC().Month().String()
}

// Before and After compare calendar days; the embedded time.Time methods
// already do the right thing since all Dates sit at UTC midnight.

// SameMonth reports whether both dates fall in the same UTC year and month.
func (d Date) SameMonth(other Date) bool {
	return d.Year() == other.Year() && d.MonthIndex() == other.MonthIndex()
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthNames lists the full month names in calendar order, matching the
// display labels cached on expense records.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}
