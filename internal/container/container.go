package container

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	database "github.com/jiamizhongshifu/xiaozhou/app/db"
	"github.com/jiamizhongshifu/xiaozhou/config"
	generativeAI "github.com/jiamizhongshifu/xiaozhou/internal/api/generative_ai"
	"github.com/jiamizhongshifu/xiaozhou/internal/api/planner"
	"github.com/jiamizhongshifu/xiaozhou/internal/cache"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *slog.Logger
	Pool           *pgxpool.Pool
	Redis          *cache.RedisStore
	Cache          cache.Store
	PlannerService *planner.ServiceImpl
	PlannerHandler *planner.HandlerImpl
}

// NewContainer wires the planner to its generator, history store and cache.
// pool may be nil, in which case history is disabled.
func NewContainer(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Pool: pool}

	generator, err := generativeAI.NewTextGenerator(ctx, cfg.LLM, planner.SystemPrompt, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	c.Cache = c.newCache(ctx)

	var repo planner.Repository
	if pool != nil {
		repo = planner.NewRepository(pool, logger)
	} else {
		logger.Warn("No database pool, itinerary history is disabled")
	}

	timeout := cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = cfg.Server.Timeout
	}
	c.PlannerService = planner.NewServiceImpl(generator, repo, c.Cache, planner.Options{
		Source:   generativeAI.Source(cfg.LLM.Provider),
		Timeout:  timeout,
		CacheTTL: cfg.Cache.TTL,
	}, logger)
	c.PlannerHandler = planner.NewHandlerImpl(c.PlannerService, logger)
	return c, nil
}

// newCache picks the configured backend, falling back to memory when redis
// cannot be reached.
func (c *Container) newCache(ctx context.Context) cache.Store {
	ttl, cleanup := c.Config.Cache.TTL, c.Config.Cache.Cleanup
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}

	if c.Config.Cache.Backend == cache.BackendRedis {
		rcfg := c.Config.Repositories.Redis
		store := cache.NewRedisStore(redis.NewClient(&redis.Options{
			Addr:     rcfg.Address,
			Password: rcfg.Password,
			DB:       rcfg.DB,
		}))
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		err := store.Ping(pingCtx)
		if err == nil {
			c.Logger.Info("Using redis itinerary cache", slog.String("address", rcfg.Address))
			c.Redis = store
			return store
		}
		c.Logger.Warn("Redis unavailable, using in-memory cache", slog.Any("error", err))
		_ = store.Close()
	}
	c.Logger.Info("Using in-memory itinerary cache", slog.Duration("ttl", ttl))
	return cache.NewMemoryStore(ttl, cleanup)
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	if c.Pool == nil {
		return false
	}
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
