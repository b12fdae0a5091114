// Package main is the entry point for the namesmith API server.
package main

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roguepikachu/namesmith/internal/analytics"
	"github.com/roguepikachu/namesmith/internal/config"
	"github.com/roguepikachu/namesmith/internal/data"
	"github.com/roguepikachu/namesmith/internal/domaincheck"
	"github.com/roguepikachu/namesmith/internal/http/handler"
	"github.com/roguepikachu/namesmith/internal/http/router"
	"github.com/roguepikachu/namesmith/internal/namegen"
	"github.com/roguepikachu/namesmith/internal/repository"
	"github.com/roguepikachu/namesmith/internal/repository/fake"
	pgrepo "github.com/roguepikachu/namesmith/internal/repository/postgres"
	redisrepo "github.com/roguepikachu/namesmith/internal/repository/redis"
	"github.com/roguepikachu/namesmith/internal/service"
	"github.com/roguepikachu/namesmith/pkg/logger"
)

func main() {
	ctx := context.Background()
	config.InitConf()
	logger.InitLogging()
	conf := config.Conf

	var (
		rdb  *redis.Client
		pool *pgxpool.Pool
	)
	if conf.QuotaBackend == config.BackendRedis || conf.DomainCacheTTLSeconds > 0 {
		rdb = data.NewRedisClient(conf.RedisAddr)
		defer rdb.Close()
	}
	if conf.QuotaBackend == config.BackendPostgres {
		var err error
		pool, err = data.NewPostgresPool(ctx, conf.PostgresDSN())
		if err != nil {
			logger.Fatal(ctx, "failed to connect to postgres: %v", err)
		}
		defer pool.Close()
	}

	policy := service.NewQuotaPolicy(conf.MaxRequests, conf.WindowHours)
	store := quotaStore(ctx, conf.QuotaBackend, rdb, pool, policy.Window)
	guard := service.NewGuard(store, service.RealClock{}, policy)

	gen := namegen.NewClient(conf.OpenAIAPIKey)
	gen.Endpoint = conf.OpenAIURL
	gen.Model = conf.OpenAIModel
	gen.Prompt = namegen.PromptOptions{OmitEmptyFilters: conf.OmitEmptyFilters}
	if conf.OpenAIAPIKey == "" {
		logger.Warn(ctx, "OPENAI_API_KEY is not set, name generation will fail")
	}

	var lookup domaincheck.Lookup = domaincheck.NewWhoisLookup(conf.WhoisURL)
	if conf.DomainCacheTTLSeconds > 0 {
		lookup = domaincheck.NewCachedLookup(lookup, rdb, time.Duration(conf.DomainCacheTTLSeconds)*time.Second)
	}
	checker := domaincheck.NewChecker(lookup)

	svc := service.NewNameService(guard, gen, checker, service.WithTracker(analytics.LogTracker{}))
	r := router.NewRouter(handler.NewHandler(svc), handler.NewHealthHandler(pool, rdb))

	logger.With(ctx, map[string]any{
		"port":          conf.Port,
		"quota_backend": conf.QuotaBackend,
		"max_requests":  policy.MaxRequests,
		"window":        policy.Window.String(),
	}).Info("starting namesmith api")
	if err := r.Run(":" + conf.Port); err != nil {
		logger.Fatal(ctx, "failed to start server: %v", err)
	}
}

func quotaStore(ctx context.Context, backend string, rdb *redis.Client, pool *pgxpool.Pool, window time.Duration) repository.QuotaStore {
	switch backend {
	case config.BackendRedis:
		return redisrepo.NewQuotaStore(rdb, window)
	case config.BackendPostgres:
		s := pgrepo.NewQuotaStore(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			logger.Fatal(ctx, "failed to prepare quota table: %v", err)
		}
		return s
	default:
		return fake.NewQuotaStore()
	}
}
