// Package redis provides a Redis-backed implementation of the quota store.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/roguepikachu/namesmith/internal/repository"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

const maxTxRetries = 5

// QuotaStore keeps each client's log under quota:<key> as a JSON array.
type QuotaStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuotaStore creates a Redis-backed quota store. ttl bounds how long an idle
// key survives; it should be at least the quota window. Zero keeps keys forever.
func NewQuotaStore(client *redis.Client, ttl time.Duration) *QuotaStore {
	return &QuotaStore{client: client, ttl: ttl}
}

func keyQuota(key string) string { return "quota:" + key }

// Load returns the stored log. Missing or malformed values read as empty.
func (s *QuotaStore) Load(ctx context.Context, key string) ([]int64, error) {
	raw, err := s.client.Get(ctx, keyQuota(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decode(ctx, key, raw), nil
}

// Save overwrites the stored log.
func (s *QuotaStore) Save(ctx context.Context, key string, ts []int64) error {
	if err := s.client.Set(ctx, keyQuota(key), repository.EncodeTimestamps(ts), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Update runs fn inside a WATCH/MULTI transaction, retrying when the key
// changed underneath it.
func (s *QuotaStore) Update(ctx context.Context, key string, fn func([]int64) []int64) error {
	k := keyQuota(key)
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, k).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		next := fn(decode(ctx, key, raw))
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, repository.EncodeTimestamps(next), s.ttl)
			return nil
		})
		return err
	}
	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("redis update: %w", err)
	}
	return repository.ErrConflict
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
