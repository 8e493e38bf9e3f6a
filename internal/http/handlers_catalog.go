package http

import (
	"net/http"
	"time"

	"outlay/internal/core"
	"outlay/internal/log"
)

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	typ, err := parseType(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	categories, err := s.catalog.Categories(r.Context(), typ)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type core.ExpenseType `json:"type"`
		Name string           `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Type == "" {
		req.Type = core.Recurring
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidType.Error())
		return
	}

	categories, err := s.catalog.AddCategory(r.Context(), req.Type, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	s.invalidate()

	// A new recurring category gets its zero-amount placeholder for the
	// current month right away instead of waiting for the next startup.
	if req.Type == core.Recurring {
		if created, seedErr := s.recurring.EnsureCurrentMonth(r.Context(), time.Now()); seedErr != nil {
			log.FromContext(r.Context()).WarnContext(r.Context(), "Recurring seed after category add failed",
				log.FieldError, seedErr)
		} else if created > 0 {
			log.FromContext(r.Context()).InfoContext(r.Context(), "Recurring placeholders created",
				log.FieldCount, created)
		}
	}

	writeJSON(w, http.StatusCreated, categories)
}

func (s *Server) handleListPaymentTypes(w http.ResponseWriter, r *http.Request) {
	paymentTypes, err := s.catalog.PaymentTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentTypes)
}

func (s *Server) handleAddPaymentType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	paymentTypes, err := s.catalog.AddPaymentType(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentTypes)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if templates == nil {
		templates = []core.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t core.Template
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.templates.Add(r.Context(), t)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleTemplateFavorite(w http.ResponseWriter, r *http.Request) {
	updated, err := s.templates.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.presets.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if presets == nil {
		presets = []core.FilterPreset{}
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleCreatePreset(w http.ResponseWriter, r *http.Request) {
	var p core.FilterPreset
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.presets.Add(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.presets.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTogglePresetFavorite(w http.ResponseWriter, r *http.Request) {
	updated, err := s.presets.ToggleFavorite(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
