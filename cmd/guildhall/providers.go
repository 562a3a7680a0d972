package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/guildhall/internal/cache"
	"github.com/cory-johannsen/guildhall/internal/config"
	"github.com/cory-johannsen/guildhall/internal/game/character"
	"github.com/cory-johannsen/guildhall/internal/httpapi"
	"github.com/cory-johannsen/guildhall/internal/server"
	"github.com/cory-johannsen/guildhall/internal/service"
	"github.com/cory-johannsen/guildhall/internal/storage/postgres"
)

// healthInterval is how often the database probe runs.
const healthInterval = 15 * time.Second

// App is the assembled serve command.
type App struct {
	Lifecycle *server.Lifecycle
}

// Services holds the use-case layer without any transport.
type Services struct {
	Characters *service.CharacterService
	Guilds     *service.GuildService
}

func provideRules(cfg config.Config) service.Rules {
	return service.Rules{
		MaxLevel:        cfg.Character.MaxLevel,
		MaxGuildMembers: cfg.Guild.MaxMembers,
		RosterTTL:       cfg.Cache.TTL,
	}
}

func providePool(ctx context.Context, cfg config.Config, logger *zap.Logger) (*postgres.Pool, func(), error) {
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pool, pool.Close, nil
}

func provideRosterCache(cfg config.Config, logger *zap.Logger) (service.RosterCache, func(), error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		client, err := cache.NewRedisClient(cfg.Cache.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using redis roster cache", zap.String("addr", cfg.Cache.RedisAddr))
		cleanup := func() {
			if err := client.Close(); err != nil {
				logger.Warn("closing redis client", zap.Error(err))
			}
		}
		return cache.NewRedis[[]*character.Character](client, cfg.Cache.KeyPrefix, logger), cleanup, nil
	default:
		return cache.NewMemory[[]*character.Character](), func() {}, nil
	}
}

func provideHealthProbe(pool *postgres.Pool, logger *zap.Logger) *server.HealthProbe {
	return server.NewHealthProbe("postgres", pool, healthInterval, logger)
}

func provideHandler(chars *service.CharacterService, guilds *service.GuildService, probe *server.HealthProbe, logger *zap.Logger) *httpapi.Handler {
	return httpapi.NewHandler(chars, guilds, logger).WithHealth(probe.Healthy)
}

func provideHTTPService(cfg config.Config, h *httpapi.Handler, logger *zap.Logger) *server.HTTPService {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      h.Routes(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	return server.NewHTTPService(srv, cfg.HTTP.ShutdownTimeout, logger)
}

func newApp(httpSvc *server.HTTPService, probe *server.HealthProbe, logger *zap.Logger) *App {
	lc := server.NewLifecycle(logger)
	lc.Add("postgres-health", probe)
	lc.Add("http", httpSvc)
	return &App{Lifecycle: lc}
}
