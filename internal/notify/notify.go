// Package notify derives the read-side alerts: unpaid-expense reminders and
// the monthly backup nudge. Nothing here mutates state; status transitions
// stay user-driven.
package notify

import (
	"math"
	"strconv"
	"time"

	"outlay/internal/core"
)

// Reminder is a PENDING or OVERDUE expense enriched for display.
type Reminder struct {
	core.Expense
	IsCurrentMonth bool   `json:"isCurrentMonth"`
	DaysDiff       int    `json:"daysDiff"`
	MonthYear      string `json:"monthYear"`
}

// PendingAndOverdue filters to unpaid records and enriches each with the
// current-month flag and the day distance from now. A future-dated PENDING
// record yields a negative DaysDiff; that is display information, not an
// error.
func PendingAndOverdue(records []core.Expense, now time.Time) []Reminder {
	now = now.UTC()
	var out []Reminder
	for _, e := range records {
		if e.Status != core.StatusPending && e.Status != core.StatusOverdue {
			continue
		}
		// Floor, not truncate: a record due tomorrow seen mid-day is one
		// day out (-1), never zero.
		diff := int(math.Floor(now.Sub(e.Date.Time).Hours() / 24))
		out = append(out, Reminder{
			Expense:        e,
			IsCurrentMonth: e.Date.Year() == now.Year() && e.Date.MonthIndex() == int(now.Month()),
			DaysDiff:       diff,
			MonthYear:      e.Month + " " + strconv.Itoa(e.Date.Year()),
		})
	}
	return out
}

// BackupDue reports whether the monthly backup reminder should fire: within
// the last 7 days of the month and no backup recorded for the current month
// yet. A zero lastBackup means no backup was ever taken.
func BackupDue(lastBackup time.Time, now time.Time) bool {
	now = now.UTC()
	lastDayOfMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	daysUntilMonthEnd := lastDayOfMonth - now.Day()
	if daysUntilMonthEnd > 7 {
		return false
	}
	if lastBackup.IsZero() {
		return true
	}
	lastBackup = lastBackup.UTC()
	sameMonth := lastBackup.Year() == now.Year() && lastBackup.Month() == now.Month()
	return !sameMonth
}
