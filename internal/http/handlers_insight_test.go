package http

import (
	"context"
	nethttp "net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
	"outlay/internal/summary"
)

func TestSummaryIncludesZeroTotalCategories(t *testing.T) {
	s, _ := newTestServer(t)
	createExpense(t, s, nil) // Rent only

	w := doRequest(t, s, nethttp.MethodGet, "/api/summary", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var resp summaryResponse
	decodeBody(t, w, &resp)

	byCategory := map[string]categorySummaryRow{}
	for _, row := range resp.Categories {
		byCategory[row.Category] = row
	}

	// Every seeded recurring category appears, spend or not.
	require.Contains(t, byCategory, "Rent")
	require.Contains(t, byCategory, "Water")
	assert.Equal(t, int64(100050), byCategory["Rent"].Total.Cents)
	assert.Zero(t, byCategory["Water"].Total.Cents)

	assert.Equal(t, int64(100050), resp.YearlyTotal.Cents)
	assert.Equal(t, 1, resp.PaidCount)
	assert.Equal(t, []int{2024}, resp.Years)
}

func TestSummaryYearFilter(t *testing.T) {
	s, _ := newTestServer(t)
	createExpense(t, s, nil)
	createExpense(t, s, map[string]any{"date": "2023-06-01", "amount": 10.0, "description": "old rent"})

	w := doRequest(t, s, nethttp.MethodGet, "/api/summary?year=2023", nil)
	var resp summaryResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 2023, resp.Year)
	assert.Equal(t, int64(1000), resp.YearlyTotal.Cents)

	w = doRequest(t, s, nethttp.MethodGet, "/api/summary?year=all", nil)
	decodeBody(t, w, &resp)
	assert.Equal(t, summary.AllYears, resp.Year)
	assert.Equal(t, int64(101050), resp.YearlyTotal.Cents)
}

func TestSummaryPendingExcluded(t *testing.T) {
	s, _ := newTestServer(t)
	createExpense(t, s, map[string]any{"status": "PENDING"})

	w := doRequest(t, s, nethttp.MethodGet, "/api/summary", nil)
	var resp summaryResponse
	decodeBody(t, w, &resp)
	assert.Zero(t, resp.YearlyTotal.Cents)
	assert.Zero(t, resp.PaidCount)
}

func TestInsightCacheHitAndInvalidation(t *testing.T) {
	s, _ := newTestServer(t)
	createExpense(t, s, nil)

	first := doRequest(t, s, nethttp.MethodGet, "/api/summary", nil)
	require.Equal(t, nethttp.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get("X-Cache"))

	second := doRequest(t, s, nethttp.MethodGet, "/api/summary", nil)
	assert.Equal(t, "hit", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	// A mutation purges the cache; the next read recomputes.
	createExpense(t, s, map[string]any{"description": "another", "amount": 5.0})

	third := doRequest(t, s, nethttp.MethodGet, "/api/summary", nil)
	assert.Empty(t, third.Header().Get("X-Cache"))

	var resp summaryResponse
	decodeBody(t, third, &resp)
	assert.Equal(t, int64(100550), resp.YearlyTotal.Cents)
}

func TestAnalytics(t *testing.T) {
	s, _ := newTestServer(t)
	createExpense(t, s, map[string]any{"date": "2022-03-01", "amount": 100.0, "description": "y1"})
	createExpense(t, s, map[string]any{"date": "2023-03-01", "amount": 150.0, "description": "y2"})
	createExpense(t, s, map[string]any{"date": "2024-03-01", "amount": 225.0, "description": "y3"})
	createExpense(t, s, map[string]any{"date": "2024-04-01", "status": "PENDING", "description": "unpaid"})

	w := doRequest(t, s, nethttp.MethodGet, "/api/analytics", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var resp analyticsResponse
	decodeBody(t, w, &resp)

	require.Len(t, resp.YearlyTotals, 3) // pending record contributes nothing
	assert.Equal(t, 2022, resp.YearlyTotals[0].Year)
	assert.Equal(t, int64(10000), resp.YearlyTotals[0].Total.Cents)

	require.Len(t, resp.Growth, 2)
	assert.InDelta(t, 50.0, resp.Growth[0].GrowthPct, 0.001)

	require.NotNil(t, resp.Forecast)
	assert.Equal(t, 2025, resp.Forecast.NextYear)

	require.NotEmpty(t, resp.CategoryPatterns)
	assert.Equal(t, "Rent", resp.CategoryPatterns[0].Category)
	require.NotEmpty(t, resp.MonthlyTotals)
}

func TestAnalyticsSingleYearHasNoForecast(t *testing.T) {
	s, _ := newTestServer(t)
	createExpense(t, s, nil)

	w := doRequest(t, s, nethttp.MethodGet, "/api/analytics", nil)
	var resp analyticsResponse
	decodeBody(t, w, &resp)
	assert.Nil(t, resp.Forecast)
}

func TestNotifications(t *testing.T) {
	s, st := newTestServer(t)
	createExpense(t, s, map[string]any{"status": "PENDING", "description": "water bill"})
	createExpense(t, s, map[string]any{"status": "OVERDUE", "description": "late hoa", "category": "HOA"})
	createExpense(t, s, map[string]any{"description": "already paid"})

	// A backup recorded this month keeps the nudge quiet whatever the date.
	require.NoError(t, st.SetLastBackup(context.Background(), time.Now().UTC()))

	w := doRequest(t, s, nethttp.MethodGet, "/api/notifications", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var resp notificationsResponse
	decodeBody(t, w, &resp)

	require.Len(t, resp.Reminders, 2)
	for _, reminder := range resp.Reminders {
		assert.NotEqual(t, core.StatusPaid, reminder.Status)
		assert.Contains(t, reminder.MonthYear, "2024")
	}
	assert.False(t, resp.BackupDue)
	require.NotNil(t, resp.LastBackup)
}

func TestNotificationsEmptyStore(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(t, s, nethttp.MethodGet, "/api/notifications", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var resp notificationsResponse
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Reminders)
	assert.Nil(t, resp.LastBackup)
}
