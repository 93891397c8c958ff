// Package bootstrap wires up logging, database connectivity, and migrations
// before the bot runtime starts.
package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/surveybot/catalog"
	"github.com/m3rciful/surveybot/config"
	"github.com/m3rciful/surveybot/database"
	"github.com/m3rciful/surveybot/logger"
)

// Options control the bootstrap pipeline. Nil hooks fall back to the
// package defaults; tests override them to stub infrastructure.
type Options struct {
	Config *config.Config

	LoggerInit  func(*config.Config) error
	Connect     func(config.DatabaseConfig) (*sqlx.DB, error)
	Migrate     func(config.DatabaseConfig) error
	LoadCatalog func(path string) (*catalog.Catalog, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	DB      *sqlx.DB
	Catalog *catalog.Catalog
}

// Run initializes the logger, connects to the database, applies migrations,
// and loads the question catalog.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.Init
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	connect := opts.Connect
	if connect == nil {
		connect = database.Connect
	}
	db, err := connect(opts.Config.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = database.RunMigrations
	}
	if err := migrate(opts.Config.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	loadCatalog := opts.LoadCatalog
	if loadCatalog == nil {
		loadCatalog = catalog.Load
	}
	cat, err := loadCatalog(opts.Config.Survey.CatalogPath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: catalog load failed: %w", err)
	}

	return &Result{DB: db, Catalog: cat}, nil
}
