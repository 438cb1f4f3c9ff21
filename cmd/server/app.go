package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/karthiknish/aroosi-swift-sub004/internal/catalog"
	"github.com/karthiknish/aroosi-swift-sub004/internal/config"
	"github.com/karthiknish/aroosi-swift-sub004/internal/domain/scoring"
	"github.com/karthiknish/aroosi-swift-sub004/internal/events"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/postgres"
	"github.com/karthiknish/aroosi-swift-sub004/internal/platform/sqlite"
	"github.com/karthiknish/aroosi-swift-sub004/internal/service"
	"github.com/karthiknish/aroosi-swift-sub004/internal/store"
)

// Both backends satisfy the service repositories.
var (
	_ service.ResponseRepository = (*postgres.PostgresResponseStore)(nil)
	_ service.ReportRepository   = (*postgres.PostgresReportStore)(nil)
	_ service.ResponseRepository = (*sqlite.ResponseStore)(nil)
	_ service.ReportRepository   = (*sqlite.ReportStore)(nil)
)

// trackerShutdownTimeout bounds how long shutdown waits for queued events.
const trackerShutdownTimeout = 5 * time.Second

// application holds the shared dependencies and releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	catalog       *catalog.Catalog
	responseStore store.ResponseStore
	reportStore   store.ReportStore
	scorer        scoring.Service
	tracker       *events.AsyncTracker
	reportService service.ReportService
}

// newApplication wires every dependency on top of an open, migrated db.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.catalog, err = loadCatalog(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	if !app.catalog.WeightsNormalized(catalog.DefaultWeightTolerance) {
		logger.Warn("catalog category weights do not sum to 1, scores may fall outside [0,100]",
			"weight_sum", app.catalog.WeightSum(),
			"catalog_version", app.catalog.Version())
	}
	logger.Info("catalog loaded",
		"catalog_version", app.catalog.Version(),
		"questions", app.catalog.TotalQuestions())

	params, err := scoring.NewParams(scoring.ParamsConfig{
		ExcellentThreshold: cfg.Scoring.ExcellentThreshold,
		GoodThreshold:      cfg.Scoring.GoodThreshold,
		FairThreshold:      cfg.Scoring.FairThreshold,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid scoring configuration: %w", err)
	}
	app.scorer, err = scoring.NewServiceWithParams(app.catalog.Categories(), params)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring service: %w", err)
	}

	switch cfg.Database.Driver {
	case driverPostgres:
		app.responseStore = postgres.NewPostgresResponseStore(db, logger)
		app.reportStore = postgres.NewPostgresReportStore(db, logger)
	case driverSQLite:
		app.responseStore = sqlite.NewResponseStore(db, logger)
		app.reportStore = sqlite.NewReportStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLogHandler(logger))
	app.tracker = events.NewAsyncTracker(emitter, events.AsyncTrackerConfig{
		QueueSize:   cfg.Analytics.QueueSize,
		WorkerCount: cfg.Analytics.WorkerCount,
	}, logger)

	app.reportService, err = service.NewReportService(
		app.responseStore,
		app.reportStore,
		app.scorer,
		app.tracker,
		service.SystemClock{},
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return c, nil
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// Run serves HTTP until ctx is canceled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains the tracker and closes the database.
func (app *application) cleanup() {
	if app.tracker != nil {
		ctx, cancel := context.WithTimeout(context.Background(), trackerShutdownTimeout)
		if err := app.tracker.Close(ctx); err != nil {
			app.logger.Warn("analytics events lost on shutdown", "error", err)
		}
		cancel()
		app.tracker = nil
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
		app.db = nil
	}

	app.logger.Info("application shutdown completed")
}
