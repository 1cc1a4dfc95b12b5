package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dynfw/firewall-sync/internal/domain"
)

// Store is an in-memory implementation of the storage interface for testing.
type Store struct {
	mu sync.RWMutex

	records  []*domain.IPRecord
	syncRuns map[string]*domain.SyncRun
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		syncRuns: make(map[string]*domain.SyncRun),
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateIPRecord(ctx context.Context, rec *domain.IPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *rec
	s.records = append(s.records, &c)
	return nil
}

func (s *Store) LatestIPRecord(ctx context.Context, tag string) (*domain.IPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.IPRecord
	for _, rec := range s.records {
		if rec.Tag != tag {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}

	c := *latest
	return &c, nil
}

func (s *Store) ListIPRecords(ctx context.Context, tag string, limit int) ([]*domain.IPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.IPRecord
	for _, rec := range s.records {
		if rec.Tag == tag {
			c := *rec
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) CreateSyncRun(ctx context.Context, run *domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *run
	s.syncRuns[run.ID] = &c
	return nil
}

func (s *Store) UpdateSyncRun(ctx context.Context, run *domain.SyncRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.syncRuns[run.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *run
	s.syncRuns[run.ID] = &c
	return nil
}

func (s *Store) ListSyncRuns(ctx context.Context, limit, offset int) ([]*domain.SyncRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.SyncRun, 0, len(s.syncRuns))
	for _, run := range s.syncRuns {
		c := *run
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
