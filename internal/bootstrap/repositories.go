package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CityProduction_Go/internal/config"
	"github.com/osse101/CityProduction_Go/internal/database"
	"github.com/osse101/CityProduction_Go/internal/database/postgres"
	"github.com/osse101/CityProduction_Go/internal/database/sqlite"
	"github.com/osse101/CityProduction_Go/internal/repository"
)

// Persistence holds the optional report store. All fields are nil when
// PERSIST_REPORTS is off; Pool is set for postgres, SQLite for sqlite.
type Persistence struct {
	Pool    *pgxpool.Pool
	SQLite  *sqlite.Store
	Reports repository.ProductionReports
}

// InitializePersistence opens the configured report store, applies migrations
// and builds the report repository
func InitializePersistence(ctx context.Context, cfg *config.Config) (*Persistence, error) {
	if !cfg.PersistReports {
		slog.Info(LogMsgPersistenceDisabled)
		return &Persistence{}, nil
	}

	if cfg.ReportStore == config.ReportStoreSQLite {
		return initializeSQLite(ctx, cfg)
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied)

	slog.Info(LogMsgPersistenceEnabled, "store", config.ReportStorePostgres, "db_host", cfg.DBHost, "db_name", cfg.DBName)
	return &Persistence{
		Pool:    pool,
		Reports: postgres.NewProductionRepository(pool),
	}, nil
}

func initializeSQLite(ctx context.Context, cfg *config.Config) (*Persistence, error) {
	if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
		if err := os.MkdirAll(dir, DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
	}

	store, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
	}

	slog.Info(LogMsgPersistenceEnabled, "store", config.ReportStoreSQLite, "path", cfg.SQLitePath)
	return &Persistence{SQLite: store, Reports: store}, nil
}

// Closer returns the SQLite store for shutdown, or nil when it is not in use
func (p *Persistence) Closer() io.Closer {
	if p.SQLite == nil {
		return nil
	}
	return p.SQLite
}

// HealthPool returns the store for readiness checks, or nil without persistence
func (p *Persistence) HealthPool() database.Pool {
	switch {
	case p.Pool != nil:
		return p.Pool
	case p.SQLite != nil:
		return storeHealth{store: p.SQLite}
	default:
		return nil
	}
}

// storeHealth lets readiness ping the SQLite store; Closer owns closing it
type storeHealth struct {
	store *sqlite.Store
}

func (h storeHealth) Ping(ctx context.Context) error { return h.store.Ping(ctx) }
func (h storeHealth) Close()                         {}
