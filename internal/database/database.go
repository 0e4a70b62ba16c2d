package database

import (
	"context"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/config"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/database/memory"
	"github.com/siahsang/blogapi/internal/database/mongodb"
	"github.com/siahsang/blogapi/internal/database/postgres"
)

// Closer releases the connections held by a store.
type Closer func(ctx context.Context) error

// Open connects the store selected by cfg.DB.Driver and returns its repositories.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (core.Repositories, Closer, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		store, err := postgres.Open(ctx, postgres.Options{
			URI:          cfg.DB.URI,
			MaxOpenConns: cfg.DB.MaxOpenConns,
			MaxIdleConns: cfg.DB.MaxIdleConns,
			MaxIdleTime:  cfg.DB.MaxIdleTime,
			QueryTimeout: cfg.DB.QueryTimeout,
		}, log)
		if err != nil {
			return core.Repositories{}, nil, err
		}
		return store.Repositories(), func(context.Context) error { return store.Close() }, nil

	case config.DriverMongo:
		store, err := mongodb.Open(ctx, mongodb.Options{
			URI:          cfg.DB.URI,
			Database:     cfg.DB.Name,
			MaxPoolSize:  uint64(cfg.DB.MaxOpenConns),
			MaxIdleTime:  cfg.DB.MaxIdleTime,
			QueryTimeout: cfg.DB.QueryTimeout,
		}, log)
		if err != nil {
			return core.Repositories{}, nil, err
		}
		return store.Repositories(), store.Close, nil

	case config.DriverMemory:
		log.Warn("Using the in-memory store, data is lost on restart")
		return memory.New().Repositories(), func(context.Context) error { return nil }, nil

	default:
		return core.Repositories{}, nil, xerrors.Newf("database: unsupported driver %q", cfg.DB.Driver)
	}
}
