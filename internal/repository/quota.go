// Package repository defines storage contracts for the request quota log.
package repository

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrConflict is returned by a QuotaUpdater that kept losing to concurrent
// writers and gave up without saving.
var ErrConflict = errors.New("quota update conflict")

// QuotaStore persists the request-timestamp log of one client key. Timestamps
// are epoch milliseconds in the order they were recorded. Loading a key that
// was never saved yields an empty slice and no error.
type QuotaStore interface {
	Load(ctx context.Context, key string) ([]int64, error)
	Save(ctx context.Context, key string, timestamps []int64) error
}

// QuotaUpdater is implemented by stores able to run a read-modify-write of one
// key atomically. fn receives the current log and returns the log to persist;
// it may be invoked more than once if a concurrent writer interferes.
type QuotaUpdater interface {
	Update(ctx context.Context, key string, fn func(current []int64) []int64) error
}

// DecodeTimestamps parses a stored JSON array of epoch milliseconds. ok is
// false when raw is not such an array; callers then treat the log as empty.
func DecodeTimestamps(raw []byte) (ts []int64, ok bool) {
	if len(raw) == 0 {
		return nil, true
	}
	if err := json.Unmarshal(raw, &ts); err != nil {
		return nil, false
	}
	return ts, true
}

// EncodeTimestamps renders the log as a JSON array; nil encodes as [].
func EncodeTimestamps(ts []int64) []byte {
	if ts == nil {
		ts = []int64{}
	}
	b, _ := json.Marshal(ts)
	return b
}
