package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"outlay/internal/core"
	"outlay/internal/filter"
)

// maxBodyBytes bounds request bodies; import payloads are the largest
// legitimate input and stay well under this.
const maxBodyBytes = 8 << 20

var errBadBody = errors.New("malformed request body")

// decodeJSON reads a bounded JSON body into v, rejecting trailing garbage.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	if dec.More() {
		return errBadBody
	}
	return nil
}

// listQuery is the parsed expense-list request: which tab, the basic filter
// bar, any advanced criteria, and the sort/page selection.
type listQuery struct {
	typ   core.ExpenseType
	basic filter.Basic
	adv   filter.Advanced
	sort  filter.SortKey
	page  int
}

// parseListQuery decodes the list parameters. Malformed dates and amount
// bounds impose no constraint, matching the form behavior; only an unknown
// expense type is rejected.
func parseListQuery(q url.Values) (listQuery, error) {
	lq := listQuery{
		typ:  core.Recurring,
		sort: filter.SortDateDesc,
		page: 1,
	}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		typ := core.ExpenseType(v)
		if !typ.Valid() {
			return listQuery{}, fmt.Errorf("unknown expense type %q: %w", v, core.ErrInvalidType)
		}
		lq.typ = typ
	}

	if v := strings.TrimSpace(q.Get("dateFrom")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			lq.basic.DateFrom = d
		}
	}
	if v := strings.TrimSpace(q.Get("dateTo")); v != "" {
		if d, err := core.ParseDate(v); err == nil {
			lq.basic.DateTo = d
		}
	}
	if v := strings.TrimSpace(q.Get("categories")); v != "" {
		for _, c := range strings.Split(v, ",") {
			if c = strings.TrimSpace(c); c != "" {
				lq.basic.SelectedCategories = append(lq.basic.SelectedCategories, c)
			}
		}
	}
	lq.basic.Query = strings.TrimSpace(q.Get("query"))

	lq.adv = filter.ParseAdvanced(core.FilterCriteria{
		QuickSearch: q.Get("quickSearch"),
		Category:    q.Get("category"),
		PaymentType: q.Get("paymentType"),
		Status:      q.Get("status"),
		MinAmount:   q.Get("minAmount"),
		MaxAmount:   q.Get("maxAmount"),
		StartDate:   q.Get("startDate"),
		EndDate:     q.Get("endDate"),
		PaidBy:      q.Get("paidBy"),
		Month:       q.Get("month"),
	})

	if v := strings.TrimSpace(q.Get("sort")); v != "" {
		lq.sort = filter.SortKey(v)
	}
	if v := strings.TrimSpace(q.Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			lq.page = p
		}
	}
	return lq, nil
}

// parseType reads the type query parameter, defaulting to Recurring.
func parseType(q url.Values) (core.ExpenseType, error) {
	v := strings.TrimSpace(q.Get("type"))
	if v == "" {
		return core.Recurring, nil
	}
	typ := core.ExpenseType(v)
	if !typ.Valid() {
		return "", fmt.Errorf("unknown expense type %q: %w", v, core.ErrInvalidType)
	}
	return typ, nil
}
