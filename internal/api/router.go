package api

import (
	"net/http"

	"github.com/dynfw/firewall-sync/internal/api/handler"
	"github.com/dynfw/firewall-sync/internal/api/middleware"
	"github.com/dynfw/firewall-sync/internal/publicip"
	"github.com/dynfw/firewall-sync/internal/service"
	"github.com/dynfw/firewall-sync/internal/storage"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(
	store storage.Storage,
	syncService *service.SyncService,
	fetcher *publicip.Fetcher,
	triggerKey string,
	recordTag string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)

	// Health check (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes (trigger key required)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(triggerKey))

		// The sync trigger
		syncHandler := handler.NewSyncHandler(syncService)
		r.Post("/sync", syncHandler.Trigger)

		// Observed IPs
		ipHandler := handler.NewIPHandler(store, fetcher, recordTag)
		r.Post("/ip", ipHandler.Report)
		r.Get("/ip", ipHandler.Latest)

		// Sync history
		runHandler := handler.NewRunHandler(store)
		r.Get("/runs", runHandler.List)
	})

	return r
}
