// Package domaincheck looks up which domain zones are free for a generated
// name. Lookups are best effort: failures read as "not available".
package domaincheck

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/roguepikachu/namesmith/internal/domain"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

// DefaultZones are the zones offered, in priority order.
var DefaultZones = []string{".com", ".net", ".org", ".io", ".co", ".app"}

// MaxZonesChecked limits how many zones one availability check queries.
const MaxZonesChecked = 3

// lookupInterval spaces consecutive lookups of one availability check.
const lookupInterval = 100 * time.Millisecond

// Normalize lowercases name and drops every character outside [a-z0-9].
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Checker probes zones for a name through a Lookup. Lookups made by one
// CheckAvailability call are spaced by interval; separate calls do not wait
// on each other.
type Checker struct {
	lookup   Lookup
	zones    []string
	interval time.Duration
	timeout  time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithZones replaces the zone list.
func WithZones(zones ...string) Option {
	return func(c *Checker) { c.zones = append([]string(nil), zones...) }
}

// WithInterval replaces the spacing between lookups of one check. Zero or
// less disables pacing.
func WithInterval(d time.Duration) Option { return func(c *Checker) { c.interval = d } }

// WithTimeout replaces the bound on a single zone check, pacing included.
func WithTimeout(d time.Duration) Option { return func(c *Checker) { c.timeout = d } }

// NewChecker creates a Checker over lookup.
func NewChecker(lookup Lookup, opts ...Option) *Checker {
	c := &Checker{
		lookup:   lookup,
		zones:    DefaultZones,
		interval: lookupInterval,
		timeout:  LookupTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checker) newLimiter() *rate.Limiter {
	if c.interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(c.interval), 1)
}

// CheckOne reports whether name+zone is available. Every failure, including
// an empty normalized name, yields false.
func (c *Checker) CheckOne(ctx context.Context, name, zone string) bool {
	return c.checkOne(ctx, nil, name, zone)
}

// checkOne waits for limiter, when set, and looks the domain up. The wait
// counts toward the check's timeout.
func (c *Checker) checkOne(ctx context.Context, limiter *rate.Limiter, name, zone string) bool {
	label := Normalize(name)
	if label == "" {
		return false
	}
	fqdn := label + zone
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			logger.With(ctx, map[string]any{"domain": fqdn, "error": err.Error()}).Warn("domain check not started")
			return false
		}
	}
	available, err := c.lookup.Available(ctx, fqdn)
	if err != nil {
		logger.With(ctx, map[string]any{"domain": fqdn, "error": err.Error()}).Warn("domain check failed")
		return false
	}
	return available
}

// CheckAvailability queries the first MaxZonesChecked zones concurrently and
// returns the available ones in zone order. It never fails.
func (c *Checker) CheckAvailability(ctx context.Context, name string) []domain.DomainAvailability {
	zones := c.zones
	if len(zones) > MaxZonesChecked {
		zones = zones[:MaxZonesChecked]
	}
	results := make([]bool, len(zones))
	limiter := c.newLimiter()

	var g errgroup.Group
	g.SetLimit(MaxZonesChecked)
	for i, zone := range zones {
		i, zone := i, zone
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic checking %s: %v", zone, r)
				}
			}()
			results[i] = c.checkOne(ctx, limiter, name, zone)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.With(ctx, map[string]any{"name": name, "error": err.Error()}).Error("domain availability check aborted")
	}

	out := make([]domain.DomainAvailability, 0, len(zones))
	for i, zone := range zones {
		if results[i] {
			out = append(out, domain.DomainAvailability{Zone: zone, Available: true})
		}
	}
	return out
}
