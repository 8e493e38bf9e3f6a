// Package analytics derives the spending insights shown on the analytics
// view: year-over-year growth, a least-squares forecast for next year, and
// per-category trend classification. All functions are pure transformations
// over a pre-filtered record list; callers pass in the paid records of one
// expense type (see FilterPaid).
package analytics

import (
	"sort"

	"outlay/internal/core"
)

type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// YearStat aggregates one UTC calendar year.
type YearStat struct {
	Year    int                `json:"year"`
	Total   core.Money         `json:"total"`
	Count   int                `json:"count"`
	ByMonth map[int]core.Money `json:"byMonth"` // month 1-12 -> total
}

// Growth is one adjacent-year comparison.
type Growth struct {
	Year      int        `json:"year"`
	GrowthPct float64    `json:"growthPct"`
	Current   core.Money `json:"current"`
	Previous  core.Money `json:"previous"`
}

// Forecast is the next-year spend prediction from the regression line.
type Forecast struct {
	NextYear  int            `json:"nextYear"`
	Predicted core.Money     `json:"predicted"`
	Trend     TrendDirection `json:"trend"`
}

// FilterPaid keeps the PAID records of one type; analytics only ever sees
// paid spend.
func FilterPaid(records []core.Expense, typ core.ExpenseType) []core.Expense {
	out := make([]core.Expense, 0, len(records))
	for _, e := range records {
		if e.Type == typ && e.IsPaid() {
			out = append(out, e)
		}
	}
	return out
}

// YearlyTotals buckets records per UTC year, ascending.
func YearlyTotals(records []core.Expense) []YearStat {
	byYear := map[int]*YearStat{}
	for _, e := range records {
		year := e.Date.Year()
		stat, ok := byYear[year]
		if !ok {
			stat = &YearStat{Year: year, ByMonth: map[int]core.Money{}}
			byYear[year] = stat
		}
		stat.Total.Cents += e.Amount.Cents
		stat.Count++
		month := e.Date.MonthIndex()
		stat.ByMonth[month] = core.Money{Cents: stat.ByMonth[month].Cents + e.Amount.Cents}
	}

	out := make([]YearStat, 0, len(byYear))
	for _, stat := range byYear {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// YearOverYearGrowth compares each chronologically adjacent pair of years.
// A zero previous-year total yields growth 0 rather than a division by zero;
// the "new data, no growth metric" reading of that edge.
func YearOverYearGrowth(stats []YearStat) []Growth {
	var out []Growth
	for i := 1; i < len(stats); i++ {
		current, previous := stats[i], stats[i-1]
		g := Growth{
			Year:     current.Year,
			Current:  current.Total,
			Previous: previous.Total,
		}
		if previous.Total.Cents != 0 {
			g.GrowthPct = float64(current.Total.Cents-previous.Total.Cents) / float64(previous.Total.Cents) * 100
		}
		out = append(out, g)
	}
	return out
}

// LinearForecast fits an ordinary least-squares line over (year index,
// yearly total) pairs and extrapolates one index past the last observed
// year. Needs at least two years of data, else nil.
func LinearForecast(stats []YearStat) *Forecast {
	n := len(stats)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, stat := range stats {
		x := float64(i)
		y := float64(stat.Total.Cents)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	predicted := slope*fn + intercept
	trend := TrendStable
	if slope > 0 {
		trend = TrendIncreasing
	} else if slope < 0 {
		trend = TrendDecreasing
	}

	return &Forecast{
		NextYear:  stats[n-1].Year + 1,
		Predicted: core.MoneyFromFloat(predicted / 100.0),
		Trend:     trend,
	}
}
