package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/osse101/CityProduction_Go/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies all pending embedded migrations
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrationsSubFS())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToApplyMigrations, err)
	}

	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "path", r.Source.Path, "duration", r.Duration)
	}
	return nil
}

func migrationsSubFS() fs.FS {
	sub, err := fs.Sub(migrationsFS, MigrationsDir)
	if err != nil {
		panic(err)
	}
	return sub
}
