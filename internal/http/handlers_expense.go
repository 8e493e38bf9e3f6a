package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"outlay/internal/core"
	"outlay/internal/export"
	"outlay/internal/filter"
	"outlay/internal/log"
	"outlay/internal/services"
)

type listResponse struct {
	Items      []core.Expense `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalItems int            `json:"totalItems"`
	TotalPages int            `json:"totalPages"`
	StartIndex int            `json:"startIndex"`
	EndIndex   int            `json:"endIndex"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	lq, err := parseListQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	records, err := s.expenses.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	matched := filter.Apply(records, lq.typ, lq.basic, lq.adv)
	sorted := filter.Sort(matched, lq.sort)

	// Page indexes beyond the end clamp to the last page rather than
	// returning an empty slice; deleting the only record on the last page
	// would otherwise strand the client.
	page := lq.page
	if totalPages := (len(sorted) + filter.PageSize - 1) / filter.PageSize; totalPages > 0 && page > totalPages {
		page = totalPages
	}
	p := filter.Paginate(sorted, page, filter.PageSize)

	writeJSON(w, http.StatusOK, listResponse{
		Items:      p.Items,
		Page:       page,
		PageSize:   filter.PageSize,
		TotalItems: len(sorted),
		TotalPages: p.TotalPages,
		StartIndex: p.StartIndex,
		EndIndex:   p.EndIndex,
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.expenses.Add(r.Context(), e)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	e.ID = r.PathValue("id")

	updated, err := s.expenses.Update(r.Context(), e)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// handleBulkDelete removes records either by explicit id list or, when the
// type field is set, every record of that expense type.
func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs  []string `json:"ids"`
		Type string   `json:"type"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		deleted int
		err     error
	)
	if req.Type != "" {
		deleted, err = s.expenses.DeleteAllByType(r.Context(), core.ExpenseType(req.Type))
	} else {
		deleted, err = s.expenses.BulkDelete(r.Context(), req.IDs)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if deleted > 0 {
		s.invalidate()
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "json"
	}

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "json":
		data, err = s.expenses.ExportJSON(r.Context())
		contentType = "application/json"
	case "csv":
		data, err = s.expenses.ExportCSV(r.Context())
		contentType = "text/csv"
	default:
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("export format %q: %w", format, services.ErrUnknownFormat).Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := export.Filename("expenses", format, time.Now().UTC())
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "json"
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed reading request body")
		return
	}

	var imported int
	switch format {
	case "json":
		imported, err = s.expenses.ImportJSON(r.Context(), body)
	case "csv":
		imported, err = s.expenses.ImportCSV(r.Context(), body)
	default:
		writeError(w, http.StatusUnprocessableEntity,
			fmt.Errorf("import format %q: %w", format, services.ErrUnknownFormat).Error())
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.FromContext(r.Context()).InfoContext(r.Context(), "Import completed",
		"format", format,
		log.FieldCount, imported)
	s.invalidate()
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}
