// Package service contains the name generation business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roguepikachu/namesmith/internal/analytics"
	"github.com/roguepikachu/namesmith/internal/domain"
)

// anonymousKey is the quota key for callers without a client id.
const anonymousKey = "anonymous"

// QuotaExceededMessage is shown to users who used up their quota window.
const QuotaExceededMessage = "Daily limit reached. Please try again tomorrow!"

var (
	// ErrEmptyQuery is returned when the keywords are blank.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrInvalidFilters is returned when a filter value is not allowed.
	ErrInvalidFilters = errors.New("invalid filters")
	// ErrQuotaExceeded is returned when the caller used up its quota window.
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// Generator produces name suggestions.
type Generator interface {
	Generate(ctx context.Context, query string, filters domain.FilterSelection) ([]domain.GeneratedName, error)
}

// AvailabilityChecker reports the free zones for a name.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, name string) []domain.DomainAvailability
}

// NameService runs quota check, generation and domain lookups.
type NameService struct {
	guard     *Guard
	generator Generator
	checker   AvailabilityChecker
	tracker   analytics.Tracker
}

// Option configures a NameService.
type Option func(*NameService)

// WithTracker sets the analytics tracker.
func WithTracker(t analytics.Tracker) Option { return func(s *NameService) { s.tracker = t } }

// NewNameService creates a NameService.
func NewNameService(guard *Guard, generator Generator, checker AvailabilityChecker, opts ...Option) *NameService {
	s := &NameService{guard: guard, generator: generator, checker: checker, tracker: analytics.Nop{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func quotaKey(clientID string) string {
	if clientID == "" {
		return anonymousKey
	}
	return clientID
}

// Generate validates the input, spends one unit of clientID's quota and asks
// the generator for names. The returned list replaces any earlier result.
func (s *NameService) Generate(ctx context.Context, clientID, query string, filters domain.FilterSelection) ([]domain.GeneratedName, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := filters.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFilters, err)
	}
	s.tracker.Track(ctx, analytics.EventGenerateNames, analytics.Params{"search_query": query})

	if !s.guard.CheckAndConsume(ctx, quotaKey(clientID)) {
		s.tracker.Track(ctx, analytics.EventQuotaExceeded, analytics.Params{"limit": s.guard.Policy().MaxRequests})
		return nil, ErrQuotaExceeded
	}
	names, err := s.generator.Generate(ctx, query, filters)
	if err != nil {
		s.tracker.Track(ctx, analytics.EventGenerationFailed, nil)
		return nil, fmt.Errorf("generate names: %w", err)
	}
	if names == nil {
		names = []domain.GeneratedName{}
	}
	return names, nil
}

// CheckDomains returns the available zones for name. It never fails.
func (s *NameService) CheckDomains(ctx context.Context, name string) []domain.DomainAvailability {
	found := s.checker.CheckAvailability(ctx, name)
	s.tracker.Track(ctx, analytics.EventDomainCheck, analytics.Params{"name": name, "available": len(found)})
	return found
}

// QuotaStatus reports clientID's quota usage.
func (s *NameService) QuotaStatus(ctx context.Context, clientID string) QuotaStatus {
	return s.guard.Status(ctx, quotaKey(clientID))
}
