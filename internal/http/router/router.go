// Package router sets up the HTTP routes for the namesmith API server.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/namesmith/internal/http/handler"
	"github.com/roguepikachu/namesmith/internal/http/middleware"
	"github.com/roguepikachu/namesmith/pkg"
)

// NewRouter initializes the Gin engine with middleware and every route.
func NewRouter(names *handler.Handler, health *handler.HealthHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestIDMiddleware(), middleware.RequestLogger())

	r.GET(pkg.HealthCheckPath, handler.HealthCheck)
	r.GET(pkg.LivenessPath, health.Liveness)
	r.GET(pkg.ReadinessPath, health.Readiness)

	r.POST(pkg.NamesPath, names.Generate)
	r.GET(pkg.DomainsPath, names.Domains)
	r.GET(pkg.QuotaPath, names.Quota)
	return r
}
