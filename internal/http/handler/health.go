package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roguepikachu/namesmith/pkg"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

// HealthCheck is the legacy ping endpoint.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"ok": true}, "ok"))
}

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler provides liveness and readiness probes.
type HealthHandler struct {
	pg          Pinger
	redis       Pinger
	pingTimeout time.Duration
}

// NewHealthHandler constructs a HealthHandler. Nil clients are not checked.
func NewHealthHandler(pg *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	var pgPinger, redisPinger Pinger
	if pg != nil {
		pgPinger = pgPingerAdapter{pg}
	}
	if rdb != nil {
		redisPinger = redisPingerAdapter{rdb}
	}
	return &HealthHandler{pg: pgPinger, redis: redisPinger, pingTimeout: time.Second}
}

type pgPingerAdapter struct{ pool *pgxpool.Pool }

func (p pgPingerAdapter) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

type redisPingerAdapter struct{ c *redis.Client }

func (r redisPingerAdapter) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

// DependencyCheck is the readiness result for one dependency.
type DependencyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Liveness reports that the process is up. Do not check external deps here.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"status": "alive"}, "ok"))
}

// Readiness checks the quota store and cache backends.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.pingTimeout)
	defer cancel()

	results := make([]DependencyCheck, 0, 2)
	ready := true
	for _, dep := range []struct {
		name string
		p    Pinger
	}{{"postgres", h.pg}, {"redis", h.redis}} {
		if dep.p == nil {
			continue
		}
		if err := dep.p.Ping(ctx); err != nil {
			ready = false
			results = append(results, DependencyCheck{Name: dep.name, Status: "down", Error: err.Error()})
			continue
		}
		results = append(results, DependencyCheck{Name: dep.name, Status: "up"})
	}

	if ready {
		c.JSON(http.StatusOK, pkg.NewResponse(http.StatusOK, gin.H{"ready": true, "checks": results}, "ready"))
		return
	}
	logger.Warn(c.Request.Context(), "readiness failed: %+v", results)
	c.JSON(http.StatusServiceUnavailable, pkg.NewResponse(http.StatusServiceUnavailable, gin.H{"ready": false, "checks": results}, "not ready"))
}
