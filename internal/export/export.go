// Package export serializes the expense collection to the two backup
// formats, JSON and CSV, and parses both back for restore. JSON restore
// replaces the collection wholesale; CSV restore appends tolerant,
// best-effort rows.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
)

// ErrNotArray is returned when a JSON restore document is not a top-level
// array of expense records.
var ErrNotArray = errors.New("backup document must be a JSON array")

var csvHeader = []string{
	"Date", "Month", "Category", "Description", "Type",
	"Amount", "Payment Type", "By", "Status",
}

// Filename builds the dated backup name, e.g. "expenses-2024-06-25.json".
func Filename(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.UTC().Format("2006-01-02"), ext)
}

// JSON renders the full collection as an indented JSON array.
func JSON(records []core.Expense) ([]byte, error) {
	if records == nil {
		records = []core.Expense{}
	}
	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	return out, nil
}

// ParseJSON parses a JSON backup. The document must be a top-level array;
// anything else is rejected rather than guessed at. Records are normalized
// on the way in so stale month labels from old backups self-heal.
func ParseJSON(data []byte) ([]core.Expense, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var records []core.Expense
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("parse backup: %w", err)
	}
	for i := range records {
		records[i].Normalize()
	}
	return records, nil
}

// CSV renders the collection as a 9-column spreadsheet with a header row.
func CSV(records []core.Expense) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range records {
		row := []string{
			e.Date.String(),
			e.Month,
			e.Category,
			e.Description,
			string(e.Type),
			e.Amount.String(),
			e.PaymentType,
			e.By,
			string(e.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV parses a CSV backup. The first line is always treated as a header
// and skipped. Rows that are short or fail to parse are dropped silently;
// a partial restore beats no restore for hand-edited spreadsheets. Every
// imported record gets a fresh id so a re-import cannot collide with
// existing data.
func ParseCSV(data []byte) []core.Expense {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var records []core.Expense
	first := true
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		if first {
			first = false
			continue
		}
		if e, ok := parseRow(row); ok {
			records = append(records, e)
		}
	}
	return records
}

func parseRow(row []string) (core.Expense, bool) {
	if len(row) < 9 {
		return core.Expense{}, false
	}

	date, err := core.ParseDate(row[0])
	if err != nil {
		return core.Expense{}, false
	}
	amount, err := core.ParseCents(row[5])
	if err != nil {
		return core.Expense{}, false
	}

	typ := core.ExpenseType(row[4])
	if !typ.Valid() {
		return core.Expense{}, false
	}
	status := core.Status(row[8])
	if !status.Valid() {
		status = core.StatusPaid
	}

	e := core.Expense{
		ID:          uuid.NewString(),
		Date:        date,
		Category:    row[2],
		Description: row[3],
		Type:        typ,
		Amount:      core.Money{Cents: amount},
		PaymentType: row[6],
		By:          row[7],
		Status:      status,
	}
	if e.Category == "" || e.Description == "" {
		return core.Expense{}, false
	}
	e.Normalize()
	return e, true
}
