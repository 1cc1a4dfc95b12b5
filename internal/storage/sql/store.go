package sql

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/dynfw/firewall-sync/internal/domain"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Store implements the storage.Storage interface using SQL.
type Store struct {
	db *sqlx.DB
}

// New creates a new SQL store and runs pending migrations.
func New(driver, dsn string) (*Store, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(driver); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) CreateIPRecord(ctx context.Context, rec *domain.IPRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ip_records (id, tag, ip, created_at) VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.Tag, rec.IP, rec.CreatedAt)
	return err
}

// LatestIPRecord returns the most recently written record for tag.
// The descending created_at order is what makes "latest" well defined; the
// sync relies on it rather than on the store's default result order.
func (s *Store) LatestIPRecord(ctx context.Context, tag string) (*domain.IPRecord, error) {
	var rec domain.IPRecord
	err := s.db.GetContext(ctx, &rec,
		`SELECT id, tag, ip, created_at FROM ip_records
		 WHERE tag = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, tag)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return &rec, err
}

func (s *Store) ListIPRecords(ctx context.Context, tag string, limit int) ([]*domain.IPRecord, error) {
	var recs []*domain.IPRecord
	err := s.db.SelectContext(ctx, &recs,
		`SELECT id, tag, ip, created_at FROM ip_records
		 WHERE tag = $1 ORDER BY created_at DESC, id DESC LIMIT $2`, tag, limit)
	return recs, err
}

func (s *Store) CreateSyncRun(ctx context.Context, run *domain.SyncRun) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sync_runs (id, observed_ip, status, rule_count, error, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.ObservedIP, run.Status, run.RuleCount, run.Error, run.StartedAt, run.CompletedAt)
	return err
}

func (s *Store) UpdateSyncRun(ctx context.Context, run *domain.SyncRun) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE sync_runs SET observed_ip = $1, status = $2, rule_count = $3, error = $4, completed_at = $5
		 WHERE id = $6`,
		run.ObservedIP, run.Status, run.RuleCount, run.Error, run.CompletedAt, run.ID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) ListSyncRuns(ctx context.Context, limit, offset int) ([]*domain.SyncRun, error) {
	var runs []*domain.SyncRun
	err := s.db.SelectContext(ctx, &runs,
		`SELECT id, observed_ip, status, rule_count, error, started_at, completed_at
		 FROM sync_runs ORDER BY started_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	return runs, err
}
