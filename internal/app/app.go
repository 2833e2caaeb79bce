package app

import (
	"context"
	"log/slog"

	"timesheet/internal/adapter/holiday"
	msql "timesheet/internal/adapter/mysql"
	"timesheet/internal/config"
	"timesheet/internal/migrate"
	"timesheet/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log        *slog.Logger
	authHeader string
	uc         *usecase.Timesheet
	db         *msql.Client
}

// New connects to MySQL, applies migrations and builds the use case.
func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	if err := cfg.RequireMySQL(); err != nil {
		return nil, err
	}
	// Run migrations before opening the stores for use
	if err := migrate.Run(ctx, cfg.MySQL.DSN, cfg.MySQL.TablePrefix, log); err != nil {
		return nil, err
	}
	db, err := msql.NewClient(ctx, cfg.MySQL.DSN, cfg.MySQL.TablePrefix, log)
	if err != nil {
		return nil, err
	}

	fetcher := holiday.NewClient(cfg.Holiday.BaseURL, cfg.Holiday.Timeout, log)
	uc := &usecase.Timesheet{
		Log:        log,
		Entries:    db.Entries(),
		Configs:    db.UserConfigs(),
		Holidays:   holiday.NewCache(cfg.Holiday.CacheDir, cfg.Holiday.CacheTTL, fetcher, log),
		Directory:  db.Directory(),
		Rules:      db.AccessRules(),
		AdminGroup: cfg.AdminGroup,
	}
	return &App{log: log, authHeader: cfg.HTTP.AuthHeader, uc: uc, db: db}, nil
}

// NewWithUseCase builds an App around an already wired use case.
func NewWithUseCase(log *slog.Logger, authHeader string, uc *usecase.Timesheet) *App {
	return &App{log: log, authHeader: authHeader, uc: uc}
}

// Timesheet exposes the use case to the CLI commands.
func (a *App) Timesheet() *usecase.Timesheet { return a.uc }

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
