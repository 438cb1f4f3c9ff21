package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/karthiknish/aroosi-swift-sub004/internal/config"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/postgres"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/sqlite"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// setupAppDatabase opens the configured database and applies pending
// migrations.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case driverPostgres:
		return setupPostgres(ctx, cfg.Database.URL, logger)
	case driverSQLite:
		db, err := sqlite.OpenAndMigrate(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to set up sqlite database: %w", err)
		}
		logger.Info("database connection established", "driver", driverSQLite)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func setupPostgres(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	version, err := postgres.Migrate(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database connection established",
		"driver", driverPostgres,
		"schema_version", version)
	return db, nil
}
