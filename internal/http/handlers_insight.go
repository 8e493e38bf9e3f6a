package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"outlay/internal/analytics"
	"outlay/internal/core"
	"outlay/internal/notify"
	"outlay/internal/summary"
)

// cachedJSON serves the response from the insight cache when present,
// otherwise builds, stores, and serves it. Cache keys are the full request
// URI, so every parameter combination caches independently.
func (s *Server) cachedJSON(w http.ResponseWriter, r *http.Request, build func() (any, error)) {
	key := r.URL.RequestURI()
	if data, ok := s.insightCache.Get(key); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Cache", "hit")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	v, err := build()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.insightCache.Set(key, data)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type categorySummaryRow struct {
	Category       string             `json:"category"`
	Total          core.Money         `json:"total"`
	MonthlyAverage core.Money         `json:"monthlyAverage"`
	CurrentMonth   core.Money         `json:"currentMonth"`
	Level          summary.SpendLevel `json:"level"`
}

type summaryResponse struct {
	Type        core.ExpenseType     `json:"type"`
	Year        int                  `json:"year"` // 0 means all years
	Years       []int                `json:"years"`
	Categories  []categorySummaryRow `json:"categories"`
	YearlyTotal core.Money           `json:"yearlyTotal"`
	PaidCount   int                  `json:"paidCount"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	typ, err := parseType(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	year := summary.AllYears
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" && !strings.EqualFold(v, "all") {
		if y, parseErr := strconv.Atoi(v); parseErr == nil {
			year = y
		}
	}

	s.cachedJSON(w, r, func() (any, error) {
		records, err := s.expenses.List(r.Context())
		if err != nil {
			return nil, err
		}
		categories, err := s.catalog.Categories(r.Context(), typ)
		if err != nil {
			return nil, err
		}

		typed := make([]core.Expense, 0, len(records))
		for _, e := range records {
			if e.Type == typ {
				typed = append(typed, e)
			}
		}

		totals := summary.CategorySummary(records, categories, year, typ)
		averages := summary.CategoryAverages(typed)

		now := time.Now().UTC()
		currentMonth := map[string]int64{}
		for _, e := range typed {
			if e.IsPaid() && e.Date.Year() == now.Year() && e.Date.MonthIndex() == int(now.Month()) {
				currentMonth[e.Category] += e.Amount.Cents
			}
		}

		rows := make([]categorySummaryRow, 0, len(categories))
		for _, cat := range categories {
			month := core.Money{Cents: currentMonth[cat]}
			rows = append(rows, categorySummaryRow{
				Category:       cat,
				Total:          totals[cat],
				MonthlyAverage: averages[cat],
				CurrentMonth:   month,
				Level:          summary.ClassifySpend(month, averages[cat]),
			})
		}

		return summaryResponse{
			Type:        typ,
			Year:        year,
			Years:       summary.AvailableYears(typed),
			Categories:  rows,
			YearlyTotal: summary.YearlyTotal(records, year, typ),
			PaidCount:   summary.PaidCount(records, year, typ),
		}, nil
	})
}

type analyticsResponse struct {
	Type             core.ExpenseType            `json:"type"`
	YearlyTotals     []analytics.YearStat        `json:"yearlyTotals"`
	Growth           []analytics.Growth          `json:"growth"`
	Forecast         *analytics.Forecast         `json:"forecast"` // null without enough history
	CategoryPatterns []analytics.CategoryPattern `json:"categoryPatterns"`
	MonthlyTotals    []analytics.MonthTotal      `json:"monthlyTotals"`
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	typ, err := parseType(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.cachedJSON(w, r, func() (any, error) {
		records, err := s.expenses.List(r.Context())
		if err != nil {
			return nil, err
		}

		paid := analytics.FilterPaid(records, typ)
		stats := analytics.YearlyTotals(paid)

		return analyticsResponse{
			Type:             typ,
			YearlyTotals:     stats,
			Growth:           analytics.YearOverYearGrowth(stats),
			Forecast:         analytics.LinearForecast(stats),
			CategoryPatterns: analytics.CategoryPatterns(paid),
			MonthlyTotals:    analytics.MonthlyTotals(paid),
		}, nil
	})
}

type notificationsResponse struct {
	Reminders  []notify.Reminder `json:"reminders"`
	BackupDue  bool              `json:"backupDue"`
	LastBackup *time.Time        `json:"lastBackup,omitempty"`
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	s.cachedJSON(w, r, func() (any, error) {
		records, err := s.expenses.List(r.Context())
		if err != nil {
			return nil, err
		}
		lastBackup, err := s.st.LastBackup(r.Context())
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		resp := notificationsResponse{
			Reminders: notify.PendingAndOverdue(records, now),
			BackupDue: notify.BackupDue(lastBackup, now),
		}
		if resp.Reminders == nil {
			resp.Reminders = []notify.Reminder{}
		}
		if !lastBackup.IsZero() {
			resp.LastBackup = &lastBackup
		}
		return resp, nil
	})
}
