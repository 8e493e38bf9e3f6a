// Package http exposes the expense store as a JSON API: list and CRUD over
// expenses, summary and analytics reads, notifications, the category and
// payment-type catalogs, templates and filter presets, and import/export.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"outlay/internal/cache"
	"outlay/internal/services"
	"outlay/internal/store"
)

type Server struct {
	http.Server

	st        *store.Store
	expenses  *services.ExpenseService
	catalog   *services.CatalogService
	templates *services.TemplateService
	presets   *services.PresetService
	recurring *services.RecurringService

	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// insightCache holds marshaled summary/analytics/notification responses
	// keyed by request URI. Any mutation purges it wholesale; recomputing a
	// handful of aggregations is cheaper than tracking which keys a write
	// touched.
	insightCache *cache.LRUCache[[]byte]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, st *store.Store,
	expenses *services.ExpenseService,
	catalog *services.CatalogService,
	templates *services.TemplateService,
	presets *services.PresetService,
	recurring *services.RecurringService,
	cacheSize int, cacheTTL time.Duration) *Server {

	s := &Server{
		st:           st,
		expenses:     expenses,
		catalog:      catalog,
		templates:    templates,
		presets:      presets,
		recurring:    recurring,
		rateLimiter:  newRateLimiter(),
		metrics:      &securityMetrics{},
		insightCache: cache.NewLRUCache[[]byte](cacheSize, cacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.insightCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("POST /api/expenses/bulk-delete", s.handleBulkDelete)
	mux.HandleFunc("GET /api/expenses/export", s.handleExport)
	mux.HandleFunc("POST /api/expenses/import", s.handleImport)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/analytics", s.handleAnalytics)
	mux.HandleFunc("GET /api/notifications", s.handleNotifications)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	mux.HandleFunc("GET /api/payment-types", s.handleListPaymentTypes)
	mux.HandleFunc("POST /api/payment-types", s.handleAddPaymentType)

	mux.HandleFunc("GET /api/templates", s.handleListTemplates)
	mux.HandleFunc("POST /api/templates", s.handleCreateTemplate)
	mux.HandleFunc("DELETE /api/templates/{id}", s.handleDeleteTemplate)
	mux.HandleFunc("POST /api/templates/{id}/favorite", s.handleToggleTemplateFavorite)

	mux.HandleFunc("GET /api/presets", s.handleListPresets)
	mux.HandleFunc("POST /api/presets", s.handleCreatePreset)
	mux.HandleFunc("DELETE /api/presets/{id}", s.handleDeletePreset)
	mux.HandleFunc("POST /api/presets/{id}/favorite", s.handleTogglePresetFavorite)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.middleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// invalidate drops the cached read responses. Called by every mutation.
func (s *Server) invalidate() {
	s.insightCache.Purge()
}

// Shutdown stops the cleanup goroutines before shutting down the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady verifies the store is reachable before reporting ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.st.Expenses.Load(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"store":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
