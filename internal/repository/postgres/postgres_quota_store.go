// Package postgres provides a Postgres-backed implementation of the quota store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roguepikachu/namesmith/internal/repository"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

// QuotaStore keeps one row per client key holding the JSONB timestamp log.
type QuotaStore struct {
	pool *pgxpool.Pool
}

// NewQuotaStore creates a new Postgres-backed quota store.
func NewQuotaStore(pool *pgxpool.Pool) *QuotaStore {
	return &QuotaStore{pool: pool}
}

// EnsureSchema creates required tables if they don't exist.
func (s *QuotaStore) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS quota_logs (
    key TEXT PRIMARY KEY,
    timestamps JSONB NOT NULL DEFAULT '[]'::jsonb,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_quota_logs_updated_at ON quota_logs (updated_at);
`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return err
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

// Load returns the stored log. Missing or malformed rows read as empty.
func (s *QuotaStore) Load(ctx context.Context, key string) ([]int64, error) {
	const q = `SELECT timestamps FROM quota_logs WHERE key = $1`
	var raw []byte
	err := s.pool.QueryRow(ctx, q, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query quota log: %w", err)
	}
	return decode(ctx, key, raw), nil
}

// Save overwrites the stored log.
func (s *QuotaStore) Save(ctx context.Context, key string, ts []int64) error {
	if err := upsert(ctx, s.pool, key, ts); err != nil {
		return fmt.Errorf("save quota log: %w", err)
	}
	return nil
}

// Update locks the row with SELECT ... FOR UPDATE, applies fn and writes the
// result in the same transaction.
func (s *QuotaStore) Update(ctx context.Context, key string, fn func([]int64) []int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Make sure a row exists so the lock below always has something to hold.
	const ensure = `INSERT INTO quota_logs (key) VALUES ($1) ON CONFLICT (key) DO NOTHING`
	if _, err := tx.Exec(ctx, ensure, key); err != nil {
		return fmt.Errorf("ensure quota row: %w", err)
	}
	const lock = `SELECT timestamps FROM quota_logs WHERE key = $1 FOR UPDATE`
	var raw []byte
	if err := tx.QueryRow(ctx, lock, key).Scan(&raw); err != nil {
		return fmt.Errorf("lock quota row: %w", err)
	}
	next := fn(decode(ctx, key, raw))
	if err := upsert(ctx, tx, key, next); err != nil {
		return fmt.Errorf("update quota log: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func upsert(ctx context.Context, db execer, key string, ts []int64) error {
	const q = `
INSERT INTO quota_logs (key, timestamps, updated_at)
VALUES ($1, $2::jsonb, NOW())
ON CONFLICT (key) DO UPDATE SET timestamps = EXCLUDED.timestamps, updated_at = NOW()
`
	_, err := db.Exec(ctx, q, key, string(repository.EncodeTimestamps(ts)))
	return err
}

func decode(ctx context.Context, key string, raw []byte) []int64 {
	ts, ok := repository.DecodeTimestamps(raw)
	if !ok {
		logger.WithField(ctx, "key", key).Warn("malformed quota log, treating as empty")
	}
	return ts
}

var (
	_ repository.QuotaStore   = (*QuotaStore)(nil)
	_ repository.QuotaUpdater = (*QuotaStore)(nil)
)
