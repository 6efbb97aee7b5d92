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
)

// serve builds the HTTP server and blocks until it receives a SIGINT or
// SIGTERM signal, then shuts down gracefully: in-flight requests are given
// 20 seconds to complete. The caller closes the connection pool afterwards.
func (app *applicationDependencies) serve() error {
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit
		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()

		shutdownErr <- apiServer.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "address", apiServer.Addr, "environment", app.config.environment, "static_dir", app.config.staticDir)

	if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// ErrServerClosed only means Shutdown was called; its result is what counts.
	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", apiServer.Addr)
	return nil
}
