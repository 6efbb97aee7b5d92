// Package main is the entry point for the book catalog API server.
// It wires together configuration, the database connection, and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/bookcatalog/internal/data"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
	"golang.org/x/time/rate"
)

// appVersion is the current version of the API, shown in logs.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config serverConfig // Server configuration loaded from env and flags
	logger *slog.Logger // Structured logger that writes to stdout
	models data.Models  // Database model layer for the books table
}

// main is the application entry point.
// It loads configuration, opens the database, ensures the schema, and starts the HTTP server.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	settings, err := loadConfig(os.Args[1:])
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	db, err := openDB(settings, logger)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer db.Close() // Close the pool cleanly when main() returns.

	logger.Info("database connection pool established", "version", appVersion, "tls", settings.requireTLS())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = data.EnsureSchema(ctx, db)
	cancel()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	appInstance := &applicationDependencies{
		config: settings,
		logger: logger,
		models: data.NewModels(db),
	}

	if err := appInstance.serve(); err != nil {
		logger.Error(err.Error())
		db.Close()
		os.Exit(1)
	}
}

// openDB opens a PostgreSQL connection pool and pings it until it answers or
// the configured number of attempts is used up. Attempts are paced by a
// token bucket refilling once every two seconds.
func openDB(settings serverConfig, logger *slog.Logger) (*sql.DB, error) {
	// sql.Open only validates the DSN format; it does not actually connect yet.
	db, err := sql.Open("postgres", settings.dsn())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.db.maxOpenConns)
	db.SetMaxIdleConns(settings.db.maxOpenConns)
	db.SetConnMaxIdleTime(15 * time.Minute)

	attempts := max(settings.db.connectAttempts, 1)
	limiter := rate.NewLimiter(rate.Every(2*time.Second), 1)

	for attempt := 1; ; attempt++ {
		if err = limiter.Wait(context.Background()); err != nil {
			break
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = db.PingContext(ctx)
		cancel()
		if err == nil {
			return db, nil
		}

		if attempt >= attempts {
			break
		}
		logger.Warn("database not reachable, retrying", "attempt", attempt, "max_attempts", attempts, "error", err.Error())
	}

	db.Close()
	return nil, fmt.Errorf("connect to database: %w", err)
}
