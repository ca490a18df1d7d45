// Package bootstrap connects the process-wide runtime dependencies.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"storyhub/internal/cache"
	"storyhub/internal/config"
	"storyhub/internal/database"
	"storyhub/internal/middleware"
	"storyhub/internal/observability"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// Migrate applies the schema after connecting.
	Migrate bool
}

// InitRuntime connects to the database and, when configured, Redis. Redis is
// optional: an unreachable server yields a nil client and a warning.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	middleware.Logger = middleware.NewLogger(cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	if opts.Migrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("schema migration failed: %w", err)
		}
	}

	if cfg.RedisURL == "" {
		middleware.Logger.Info("REDIS_URL not set; token revocation and cross-instance feed disabled")
		return db, nil, nil
	}

	rdb, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		middleware.Logger.Warn("redis unavailable; token revocation and cross-instance feed disabled",
			slog.String("error", err.Error()))
		return db, nil, nil
	}

	return db, rdb, nil
}

// InitTracing starts the tracer provider described by cfg.
func InitTracing(cfg *config.Config) (func(context.Context) error, error) {
	return observability.InitTracing(observability.TracingConfig{
		ServiceName:  observability.ServiceName,
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: cfg.TracingSamplerRatio,
	})
}
