package main

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/golang-cz/devslog"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blogapi/internal/auth"
	"github.com/siahsang/blogapi/internal/config"
	"github.com/siahsang/blogapi/internal/core"
	"github.com/siahsang/blogapi/internal/database"
)

type application struct {
	config *config.Config
	logger *slog.Logger
	core   *core.Core
	auth   *auth.Auth
	wg     sync.WaitGroup
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Errors loading configuration", "error", xerrors.Sprint(err))
		os.Exit(1)
	}

	logger := configLogger(cfg)
	logger.Info("Starting application...", "env", cfg.Env, "db_driver", cfg.DB.Driver)

	repos, closeDB, err := database.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Errors opening database connection", "error", xerrors.Sprint(err))
		os.Exit(1)
	}

	defer func() {
		if err := closeDB(context.Background()); err != nil {
			logger.Error("Errors closing database connection", "error", err.Error())
		}
	}()

	logger.Info("Database connection established successfully")

	app := newApplication(cfg, logger, repos)

	if err := app.serve(); err != nil {
		logger.Error("Errors starting server", "error", xerrors.Sprint(err))
		os.Exit(1)
	}
}

func newApplication(cfg *config.Config, logger *slog.Logger, repos core.Repositories) *application {
	return &application{
		config: cfg,
		logger: logger,
		core:   core.NewCore(repos, logger),
		auth:   auth.New(cfg.JWT.Secret, cfg.JWT.TTL),
	}
}

func configLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	handler := devslog.NewHandler(
		os.Stdout, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     slog.LevelDebug,
			},
			NewLineAfterLog: false,
		})

	return slog.New(handler)
}
