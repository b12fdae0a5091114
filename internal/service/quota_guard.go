package service

import (
	"context"
	"errors"
	"time"

	"github.com/roguepikachu/namesmith/internal/repository"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

// QuotaPolicy bounds how many generations a client may request per window.
type QuotaPolicy struct {
	MaxRequests int
	Window      time.Duration
}

// NewQuotaPolicy builds a policy from the configured request count and window in hours.
func NewQuotaPolicy(maxRequests, windowHours int) QuotaPolicy {
	return QuotaPolicy{MaxRequests: maxRequests, Window: time.Duration(windowHours) * time.Hour}
}

// QuotaStatus is a read-only view of a client's quota.
type QuotaStatus struct {
	Used      int
	Limit     int
	Remaining int
	// ResetAt is when the oldest counted request leaves the window; zero when nothing is counted.
	ResetAt time.Time
}

// Guard enforces the rolling-window request quota.
type Guard struct {
	store  repository.QuotaStore
	clock  Clock
	policy QuotaPolicy
}

// NewGuard creates a Guard over store.
func NewGuard(store repository.QuotaStore, clock Clock, policy QuotaPolicy) *Guard {
	return &Guard{store: store, clock: clock, policy: policy}
}

// Policy returns the configured policy.
func (g *Guard) Policy() QuotaPolicy { return g.policy }

// Prune returns the timestamps (epoch ms) younger than window relative to now,
// keeping their order.
func Prune(timestamps []int64, now int64, window time.Duration) []int64 {
	windowMs := window.Milliseconds()
	out := make([]int64, 0, len(timestamps))
	for _, ts := range timestamps {
		if now-ts < windowMs {
			out = append(out, ts)
		}
	}
	return out
}

// CheckAndConsume reports whether key may make another request and, if so,
// records it. Stale entries are dropped from the stored log either way.
// Store failures are logged; an unreadable log counts as empty.
func (g *Guard) CheckAndConsume(ctx context.Context, key string) bool {
	now := g.clock.Now().UnixMilli()
	var allowed, decided bool
	decide := func(current []int64) []int64 {
		pruned := Prune(current, now, g.policy.Window)
		allowed = len(pruned) < g.policy.MaxRequests
		decided = true
		if allowed {
			pruned = append(pruned, now)
		}
		return pruned
	}

	if u, ok := g.store.(repository.QuotaUpdater); ok {
		if err := u.Update(ctx, key, decide); err != nil {
			logger.With(ctx, map[string]any{"key": key, "error": err.Error()}).Error("quota update failed")
			if errors.Is(err, repository.ErrConflict) {
				return false
			}
			if !decided {
				decide(nil)
			}
		}
		return allowed
	}

	current, err := g.store.Load(ctx, key)
	if err != nil {
		logger.With(ctx, map[string]any{"key": key, "error": err.Error()}).Error("quota load failed")
		current = nil
	}
	next := decide(current)
	if err := g.store.Save(ctx, key, next); err != nil {
		logger.With(ctx, map[string]any{"key": key, "error": err.Error()}).Error("quota save failed")
	}
	return allowed
}

// Status reports key's usage without recording a request.
func (g *Guard) Status(ctx context.Context, key string) QuotaStatus {
	now := g.clock.Now()
	current, err := g.store.Load(ctx, key)
	if err != nil {
		logger.With(ctx, map[string]any{"key": key, "error": err.Error()}).Error("quota load failed")
	}
	pruned := Prune(current, now.UnixMilli(), g.policy.Window)
	st := QuotaStatus{Used: len(pruned), Limit: g.policy.MaxRequests}
	st.Remaining = st.Limit - st.Used
	if st.Remaining < 0 {
		st.Remaining = 0
	}
	if len(pruned) > 0 {
		oldest := pruned[0]
		for _, ts := range pruned[1:] {
			if ts < oldest {
				oldest = ts
			}
		}
		st.ResetAt = time.UnixMilli(oldest).UTC().Add(g.policy.Window)
	}
	return st
}
