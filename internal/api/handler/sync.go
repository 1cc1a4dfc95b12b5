package handler

import (
	"log"
	"net/http"

	"github.com/dynfw/firewall-sync/internal/service"
)

// SyncHandler handles the sync trigger endpoint.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// Trigger runs one sync pass. Every failure collapses to a 400 carrying the
// error's message text; success returns a plain status message.
func (h *SyncHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	resp, err := h.syncService.Sync(r.Context())
	if err != nil {
		log.Printf("Sync failed: %v", err)
		respondText(w, http.StatusBadRequest, err.Error())
		return
	}

	respondText(w, http.StatusOK, resp.Message)
}
