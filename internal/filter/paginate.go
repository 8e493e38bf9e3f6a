package filter

import "outlay/internal/core"

// PageSize is the fixed list page size.
const PageSize = 10

// Page is one slice of a filtered, sorted list. StartIndex/EndIndex are the
// zero-based half-open bounds of the slice within the full list.
type Page struct {
	Items      []core.Expense
	TotalPages int
	StartIndex int
	EndIndex   int
}

// Paginate slices records into the 1-based pageIndex. A page index beyond
// the last page yields an empty page; clamping is the caller's concern, not
// this layer's.
func Paginate(records []core.Expense, pageIndex, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if pageIndex < 1 {
		pageIndex = 1
	}
	total := (len(records) + pageSize - 1) / pageSize

	start := (pageIndex - 1) * pageSize
	if start >= len(records) {
		return Page{Items: []core.Expense{}, TotalPages: total, StartIndex: len(records), EndIndex: len(records)}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return Page{Items: records[start:end], TotalPages: total, StartIndex: start, EndIndex: end}
}
