package handler

import (
	"net/http"
	"strconv"

	"github.com/dynfw/firewall-sync/internal/storage"
)

// RunHandler handles the sync-history endpoint.
type RunHandler struct {
	store storage.Storage
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(store storage.Storage) *RunHandler {
	return &RunHandler{store: store}
}

// List lists recent sync runs, newest first.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	runs, err := h.store.ListSyncRuns(r.Context(), limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, runs)
}
