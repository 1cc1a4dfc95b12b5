package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/netip"
	"time"

	"github.com/dynfw/firewall-sync/internal/domain"
	"github.com/dynfw/firewall-sync/internal/publicip"
	"github.com/dynfw/firewall-sync/internal/storage"
	"github.com/google/uuid"
)

// IPHandler handles the observed-IP endpoints.
type IPHandler struct {
	store   storage.Storage
	fetcher *publicip.Fetcher
	tag     string
}

// NewIPHandler creates a new IPHandler.
func NewIPHandler(store storage.Storage, fetcher *publicip.Fetcher, tag string) *IPHandler {
	if tag == "" {
		tag = domain.DefaultRecordTag
	}
	return &IPHandler{store: store, fetcher: fetcher, tag: tag}
}

// Report records an observed public IP. An empty body (or empty ip field)
// asks the server to discover its own public address first.
func (h *IPHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req domain.ReportIPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ip := req.IP
	if ip == "" {
		if h.fetcher == nil {
			respondError(w, http.StatusBadRequest, "ip is required")
			return
		}
		fetched, err := h.fetcher.Fetch(r.Context())
		if err != nil {
			respondError(w, http.StatusBadGateway, err.Error())
			return
		}
		ip = fetched
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid IP address")
		return
	}

	rec := &domain.IPRecord{
		ID:        uuid.New().String(),
		Tag:       h.tag,
		IP:        addr.String(),
		CreatedAt: time.Now(),
	}
	if err := h.store.CreateIPRecord(r.Context(), rec); err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, rec)
}

// Latest returns the most recently recorded IP.
func (h *IPHandler) Latest(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.LatestIPRecord(r.Context(), h.tag)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}
