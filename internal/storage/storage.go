package storage

import (
	"context"

	"github.com/dynfw/firewall-sync/internal/domain"
)

// Storage defines the interface for the record store.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Close closes the storage connection.
	Close() error

	// IP records
	CreateIPRecord(ctx context.Context, rec *domain.IPRecord) error
	// LatestIPRecord returns the most recently written record for tag.
	// Returns domain.ErrNotFound when no record matches.
	LatestIPRecord(ctx context.Context, tag string) (*domain.IPRecord, error)
	ListIPRecords(ctx context.Context, tag string, limit int) ([]*domain.IPRecord, error)

	// Sync runs
	CreateSyncRun(ctx context.Context, run *domain.SyncRun) error
	UpdateSyncRun(ctx context.Context, run *domain.SyncRun) error
	ListSyncRuns(ctx context.Context, limit, offset int) ([]*domain.SyncRun, error)
}
