package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func TestCategoryPatternsAggregation(t *testing.T) {
	records := []core.Expense{
		paid(core.NewDate(2023, 1, 1), "Rent", 100000),
		paid(core.NewDate(2024, 1, 1), "Rent", 100000),
		paid(core.NewDate(2024, 2, 1), "Gas", 5000),
	}
	patterns := CategoryPatterns(records)
	require.Len(t, patterns, 2)

	rent := patterns[0] // sorted by total desc
	assert.Equal(t, "Rent", rent.Category)
	assert.Equal(t, int64(200000), rent.Total.Cents)
	assert.Equal(t, 2, rent.Count)
	assert.Equal(t, int64(100000), rent.YearlyAverage.Cents) // 2 years
	assert.Equal(t, int64(100000), rent.PerTransaction.Cents)
	assert.InDelta(t, 97.56, rent.SharePct, 0.01)

	gas := patterns[1]
	assert.Equal(t, "Gas", gas.Category)
	assert.InDelta(t, 2.44, gas.SharePct, 0.01)
}

func TestCategoryTrendHalvesComparison(t *testing.T) {
	// Four active months: first half averages 100.00, second 200.00 -> up 100%.
	buckets := []monthBucket{
		{2024, 1, 10000},
		{2024, 2, 10000},
		{2024, 3, 20000},
		{2024, 4, 20000},
	}
	trend := categoryTrend(buckets)
	assert.Equal(t, "up", trend.Direction)
	assert.InDelta(t, 100.0, trend.Percent, 0.001)
}

func TestCategoryTrendUsesLastSixBuckets(t *testing.T) {
	// Eight months; only the last six count. Months 3-5 avg 100, 6-8 avg 400.
	buckets := []monthBucket{
		{2024, 1, 900000},
		{2024, 2, 900000},
		{2024, 3, 10000},
		{2024, 4, 10000},
		{2024, 5, 10000},
		{2024, 6, 40000},
		{2024, 7, 40000},
		{2024, 8, 40000},
	}
	trend := categoryTrend(buckets)
	assert.Equal(t, "up", trend.Direction)
	assert.InDelta(t, 300.0, trend.Percent, 0.001)
}

func TestCategoryTrendOddCountFloorSplit(t *testing.T) {
	// Five buckets split 2/3.
	buckets := []monthBucket{
		{2024, 1, 10000},
		{2024, 2, 10000},
		{2024, 3, 5000},
		{2024, 4, 5000},
		{2024, 5, 5000},
	}
	trend := categoryTrend(buckets)
	assert.Equal(t, "down", trend.Direction)
	assert.InDelta(t, -50.0, trend.Percent, 0.001)
}

func TestCategoryTrendGuards(t *testing.T) {
	assert.Equal(t, Trend{Direction: "stable"}, categoryTrend(nil))
	assert.Equal(t, Trend{Direction: "stable"}, categoryTrend([]monthBucket{{2024, 1, 100}}))

	// Zero first half: direction up but percent guarded to 0.
	trend := categoryTrend([]monthBucket{{2024, 1, 0}, {2024, 2, 5000}})
	assert.Equal(t, "up", trend.Direction)
	assert.Equal(t, 0.0, trend.Percent)
}

func TestMonthlyTotals(t *testing.T) {
	records := []core.Expense{
		paid(core.NewDate(2023, 1, 5), "Rent", 10000),
		paid(core.NewDate(2024, 1, 5), "Rent", 20000),
		paid(core.NewDate(2024, 6, 5), "Gas", 5000),
	}
	totals := MonthlyTotals(records)
	require.Len(t, totals, 12)
	assert.Equal(t, "January", totals[0].Month)
	assert.Equal(t, int64(30000), totals[0].Total.Cents) // both years fold in
	assert.Equal(t, 2, totals[0].Count)
	assert.Equal(t, int64(5000), totals[5].Total.Cents)
	assert.Equal(t, int64(0), totals[11].Total.Cents)
}
