package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdobak/go-xerrors"
)

func (app *application) serve() error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.Port),
		Handler:      app.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("Shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			shutdownError <- err
			return
		}

		app.logger.Info("Completing background tasks", "addr", server.Addr)
		app.wg.Wait()
		shutdownError <- nil
	}()

	app.logger.Info("Starting server", "addr", server.Addr, "env", app.config.Env)

	err := server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return xerrors.New(err)
	}

	if err := <-shutdownError; err != nil {
		return xerrors.New(err)
	}

	app.logger.Info("Stopped server", "addr", server.Addr)
	return nil
}
