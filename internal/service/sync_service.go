package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dynfw/firewall-sync/internal/domain"
	"github.com/dynfw/firewall-sync/internal/firewall"
	"github.com/dynfw/firewall-sync/internal/storage"
	"github.com/google/uuid"
)

// SyncService runs the read-compare-write sequence that keeps the firewall
// allow-list in step with the latest recorded public IP.
type SyncService struct {
	store storage.Storage
	rules firewall.RuleClient
	tag   string
}

// NewSyncService creates a new SyncService. tag selects which record-store
// partition holds the observed IPs.
func NewSyncService(store storage.Storage, rules firewall.RuleClient, tag string) *SyncService {
	if tag == "" {
		tag = domain.DefaultRecordTag
	}
	return &SyncService{store: store, rules: rules, tag: tag}
}

// Sync performs one sync pass:
//  1. read the newest recorded IP
//  2. read the current allow-list
//  3. if the IP is already present, stop; otherwise append it and write the
//     full list back
//
// Each pass is recorded as a SyncRun. Sync returns the error unchanged so
// the handler can surface its message verbatim; there is no retry and no
// rollback of a read once the write fails.
func (s *SyncService) Sync(ctx context.Context) (*domain.SyncResponse, error) {
	run := &domain.SyncRun{
		ID:        uuid.New().String(),
		Status:    domain.SyncStatusPending,
		StartedAt: time.Now(),
	}
	if err := s.store.CreateSyncRun(ctx, run); err != nil {
		return nil, fmt.Errorf("recording sync run: %w", err)
	}

	rec, err := s.store.LatestIPRecord(ctx, s.tag)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			err = fmt.Errorf("no IP record found for tag %q: %w", s.tag, err)
		}
		s.finish(run, domain.SyncStatusFailed, err)
		return nil, err
	}
	run.ObservedIP = rec.IP

	current, err := s.rules.GetRules(ctx)
	if err != nil {
		s.finish(run, domain.SyncStatusFailed, err)
		return nil, err
	}

	if current.Contains(rec.IP) {
		run.RuleCount = len(current)
		s.finish(run, domain.SyncStatusNoChanges, nil)
		return &domain.SyncResponse{
			RunID:   run.ID,
			Status:  domain.SyncStatusNoChanges,
			IP:      rec.IP,
			Message: fmt.Sprintf("no changes: %s already allowed", rec.IP),
		}, nil
	}

	updated := current.WithIP(rec.IP)
	if err := s.rules.ReplaceRules(ctx, updated); err != nil {
		s.finish(run, domain.SyncStatusFailed, err)
		return nil, err
	}

	run.RuleCount = len(updated)
	s.finish(run, domain.SyncStatusUpdated, nil)
	return &domain.SyncResponse{
		RunID:   run.ID,
		Status:  domain.SyncStatusUpdated,
		IP:      rec.IP,
		Message: fmt.Sprintf("firewall rules updated: added %s", rec.IP),
	}, nil
}

// finish closes out the run record. Failures here are logged, not returned:
// the sync outcome already stands on its own.
func (s *SyncService) finish(run *domain.SyncRun, status string, cause error) {
	now := time.Now()
	run.Status = status
	run.CompletedAt = &now
	if cause != nil {
		run.Error = cause.Error()
	}
	if err := s.store.UpdateSyncRun(context.Background(), run); err != nil {
		log.Printf("Warning: Failed to update sync run %s: %v", run.ID, err)
	}
}
