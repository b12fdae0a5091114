// Package analytics records product events such as searches and domain checks.
package analytics

import (
	"context"

	"github.com/roguepikachu/namesmith/pkg/logger"
)

// Event names.
const (
	EventGenerateNames    = "generate_names"
	EventQuotaExceeded    = "quota_exceeded"
	EventGenerationFailed = "generation_failed"
	EventDomainCheck      = "domain_check"
)

// Params are the event attributes.
type Params map[string]any

// Tracker records events. Implementations must not block the caller for long
// and must never fail it.
type Tracker interface {
	Track(ctx context.Context, event string, params Params)
}

// LogTracker writes events as structured log entries.
type LogTracker struct{}

// Track logs event at info level with its params.
func (LogTracker) Track(ctx context.Context, event string, params Params) {
	fields := make(map[string]any, len(params)+1)
	for k, v := range params {
		fields[k] = v
	}
	fields["event"] = event
	logger.With(ctx, fields).Info("analytics event")
}

// Nop discards events.
type Nop struct{}

func (Nop) Track(context.Context, string, Params) {}
