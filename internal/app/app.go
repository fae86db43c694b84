package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/widget-service/internal/config"
	"github.com/poofware/widget-service/internal/repositories"
	"github.com/poofware/widget-service/internal/utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App struct holds references to config & the widget store.
type App struct {
	Config     *config.Config
	WidgetRepo repositories.WidgetRepository
}

// NewApp opens the configured store and, if enabled, migrates and seeds it.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	utils.Logger.Infof("Initializing %s App (store=%s)", cfg.AppName, cfg.StoreDriver)

	repo, err := OpenWidgetRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, WidgetRepo: repo}

	if cfg.AutoMigrate {
		if err := a.Migrate(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	if cfg.LDFlag_SeedDbWithTestData {
		if err := SeedAllTestData(ctx, repo); err != nil {
			a.Close()
			return nil, fmt.Errorf("seed test data: %w", err)
		}
	}
	return a, nil
}

// Migrate applies the widgets schema when the store is SQL-backed.
func (a *App) Migrate(ctx context.Context) error {
	m, ok := a.WidgetRepo.(repositories.Migrator)
	if !ok {
		utils.Logger.Debugf("store %s needs no migration", a.Config.StoreDriver)
		return nil
	}
	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate %s store: %w", a.Config.StoreDriver, err)
	}
	utils.Logger.Infof("%s store schema is up to date", a.Config.StoreDriver)
	return nil
}

func (a *App) Close() {
	if a.WidgetRepo != nil {
		a.WidgetRepo.Close()
		utils.Logger.Infof("%s store closed.", a.Config.AppName)
	}
}

// OpenWidgetRepository builds the repository named by cfg.StoreDriver.
func OpenWidgetRepository(ctx context.Context, cfg *config.Config) (repositories.WidgetRepository, error) {
	switch cfg.StoreDriver {
	case repositories.StoreDriverMemory:
		return repositories.NewMemoryWidgetRepository(), nil
	case repositories.StoreDriverSQLite:
		return repositories.NewSQLiteWidgetRepository(ctx, cfg.SQLitePath)
	case repositories.StoreDriverPostgres:
		pool, err := connectWithRetry(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		return repositories.NewPostgresWidgetRepository(pool), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func connectWithRetry(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		dbPool, err = newDBPool(ctx, databaseURL)
		if err == nil {
			utils.Logger.Infof("Connected to DB on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)

		if i == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return pgxpool.ConnectConfig(ctx, cfg)
}
