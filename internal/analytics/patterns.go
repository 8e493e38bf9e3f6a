package analytics

import (
	"sort"

	"outlay/internal/core"
)

// Trend is the last-6-months direction and magnitude for one category.
type Trend struct {
	Direction string  `json:"direction"` // "up", "down", "stable"
	Percent   float64 `json:"percent"`
}

// CategoryPattern is the per-category breakdown row on the analytics view.
type CategoryPattern struct {
	Category       string     `json:"category"`
	Total          core.Money `json:"total"`
	Count          int        `json:"count"`
	YearlyAverage  core.Money `json:"yearlyAverage"`
	PerTransaction core.Money `json:"perTransaction"`
	SharePct       float64    `json:"sharePct"`
	Trend          Trend      `json:"trend"`
}

// MonthTotal is one calendar-month bucket across all years.
type MonthTotal struct {
	Month string     `json:"month"`
	Total core.Money `json:"total"`
	Count int        `json:"count"`
}

type monthBucket struct {
	year  int
	month int
	cents int64
}

// CategoryPatterns aggregates per-category totals, averages, share of the
// grand total, and the recent trend, sorted by total spend descending.
func CategoryPatterns(records []core.Expense) []CategoryPattern {
	type acc struct {
		total   int64
		count   int
		byYear  map[int]bool
		byMonth map[[2]int]int64
	}
	accs := map[string]*acc{}
	var grand int64

	for _, e := range records {
		a, ok := accs[e.Category]
		if !ok {
			a = &acc{byYear: map[int]bool{}, byMonth: map[[2]int]int64{}}
			accs[e.Category] = a
		}
		a.total += e.Amount.Cents
		a.count++
		a.byYear[e.Date.Year()] = true
		a.byMonth[[2]int{e.Date.Year(), e.Date.MonthIndex()}] += e.Amount.Cents
		grand += e.Amount.Cents
	}

	out := make([]CategoryPattern, 0, len(accs))
	for cat, a := range accs {
		p := CategoryPattern{
			Category: cat,
			Total:    core.Money{Cents: a.total},
			Count:    a.count,
		}
		if len(a.byYear) > 0 {
			p.YearlyAverage = core.Money{Cents: a.total / int64(len(a.byYear))}
		}
		if a.count > 0 {
			p.PerTransaction = core.Money{Cents: a.total / int64(a.count)}
		}
		if grand > 0 {
			p.SharePct = float64(a.total) / float64(grand) * 100
		}

		buckets := make([]monthBucket, 0, len(a.byMonth))
		for key, cents := range a.byMonth {
			buckets = append(buckets, monthBucket{year: key[0], month: key[1], cents: cents})
		}
		p.Trend = categoryTrend(buckets)
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Cents != out[j].Total.Cents {
			return out[i].Total.Cents > out[j].Total.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// categoryTrend classifies the last up-to-6 chronologically distinct month
// buckets: the series splits into halves (floor division on odd counts), each
// half is averaged, and the halves are compared. A zero first-half average
// yields 0 percent, guarded unlike the year-over-year path.
func categoryTrend(buckets []monthBucket) Trend {
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].year != buckets[j].year {
			return buckets[i].year < buckets[j].year
		}
		return buckets[i].month < buckets[j].month
	})
	if len(buckets) > 6 {
		buckets = buckets[len(buckets)-6:]
	}
	if len(buckets) < 2 {
		return Trend{Direction: "stable"}
	}

	half := len(buckets) / 2
	firstAvg := avgCents(buckets[:half])
	secondAvg := avgCents(buckets[half:])

	t := Trend{Direction: "stable"}
	if secondAvg > firstAvg {
		t.Direction = "up"
	} else if secondAvg < firstAvg {
		t.Direction = "down"
	}
	if firstAvg > 0 {
		t.Percent = (secondAvg - firstAvg) / firstAvg * 100
	}
	return t
}

func avgCents(buckets []monthBucket) float64 {
	var sum int64
	for _, b := range buckets {
		sum += b.cents
	}
	return float64(sum) / float64(len(buckets))
}

// MonthlyTotals buckets spend into the 12 calendar months regardless of
// year: actual totals per month, not averages.
func MonthlyTotals(records []core.Expense) []MonthTotal {
	out := make([]MonthTotal, 12)
	for i := range out {
		out[i].Month = core.MonthNames[i]
	}
	for _, e := range records {
		idx := e.Date.MonthIndex() - 1
		out[idx].Total.Cents += e.Amount.Cents
		out[idx].Count++
	}
	return out
}
