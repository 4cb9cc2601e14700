// Package sqlite stores production reports in a local SQLite file, for the
// operator CLI and single-node runs without PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/logger"
	"github.com/osse101/CityProduction_Go/internal/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	insertReportSQL = `
		INSERT INTO production_reports (report_id, city_id, turn, rules_digest, failures, computed_at)
		VALUES (:report_id, :city_id, :turn, :rules_digest, :failures, :computed_at)`

	insertLineSQL = `
		INSERT INTO production_report_lines (
			report_id, resource_type, flat_before_doubled, percentage_bonus,
			flat_after_doubled, total, rounding, rejected_entries, entries)
		VALUES (:report_id, :resource_type, :flat_before_doubled, :percentage_bonus,
			:flat_after_doubled, :total, :rounding, :rejected_entries, :entries)`

	selectLatestReportSQL = `
		SELECT report_id, city_id, turn, rules_digest, failures, computed_at
		FROM production_reports
		WHERE city_id = ?
		ORDER BY turn DESC, computed_at DESC
		LIMIT 1`

	selectLinesSQL = `
		SELECT report_id, resource_type, flat_before_doubled, percentage_bonus, flat_after_doubled,
		       total, rounding, rejected_entries, entries
		FROM production_report_lines
		WHERE report_id = ?
		ORDER BY resource_type`
)

type reportRow struct {
	ReportID    string `db:"report_id"`
	CityID      string `db:"city_id"`
	Turn        int    `db:"turn"`
	RulesDigest string `db:"rules_digest"`
	Failures    string `db:"failures"`
	ComputedAt  int64  `db:"computed_at"`
}

type lineRow struct {
	ReportID          string `db:"report_id"`
	ResourceType      string `db:"resource_type"`
	FlatBeforeDoubled int    `db:"flat_before_doubled"`
	PercentageBonus   int    `db:"percentage_bonus"`
	FlatAfterDoubled  int    `db:"flat_after_doubled"`
	Total             int    `db:"total"`
	Rounding          string `db:"rounding"`
	RejectedEntries   int    `db:"rejected_entries"`
	Entries           string `db:"entries"`
}

// Store is a repository.ProductionReports backed by SQLite
type Store struct {
	db *sqlx.DB
}

var _ repository.ProductionReports = (*Store)(nil)

// Open opens or creates the database file at path and applies migrations
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open(driverName, path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpen, err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := migrate(ctx, db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	logger.FromContext(ctx).Debug(LogMsgStoreOpened, "path", path)
	return &Store{db: db}, nil
}

// Ping checks that the database file is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, sub)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}

	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Debug(LogMsgMigrationApplied, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// SaveCityReport inserts the report header and all lines in one transaction
func (s *Store) SaveCityReport(ctx context.Context, report *domain.CityProductionReport) error {
	failures, err := json.Marshal(nonNil(report.Failures))
	if err != nil {
		return fmt.Errorf("failed to marshal failures: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToBeginTransaction, err)
	}
	defer func() { _ = tx.Rollback() }()

	header := reportRow{
		ReportID:    report.ID,
		CityID:      report.CityID,
		Turn:        report.Turn,
		RulesDigest: report.RulesDigest,
		Failures:    string(failures),
		ComputedAt:  report.ComputedAt.UnixNano(),
	}
	if _, err := tx.NamedExecContext(ctx, insertReportSQL, header); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToInsertReport, err)
	}

	for _, line := range report.Lines {
		entries, err := json.Marshal(nonNil(line.Entries))
		if err != nil {
			return fmt.Errorf("failed to marshal entries for %s: %w", line.ResourceType, err)
		}
		row := lineRow{
			ReportID:          report.ID,
			ResourceType:      string(line.ResourceType),
			FlatBeforeDoubled: line.FlatBeforeBonus,
			PercentageBonus:   line.PercentageBonus,
			FlatAfterDoubled:  line.FlatAfterBonus,
			Total:             line.Total,
			Rounding:          line.Rounding.String(),
			RejectedEntries:   line.RejectedEntries,
			Entries:           string(entries),
		}
		if _, err := tx.NamedExecContext(ctx, insertLineSQL, row); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToInsertLine, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// GetLatestCityReport loads the newest report of a city with its lines
func (s *Store) GetLatestCityReport(ctx context.Context, cityID string) (*domain.CityProductionReport, error) {
	var header reportRow
	if err := s.db.GetContext(ctx, &header, selectLatestReportSQL, cityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: city %q", domain.ErrReportNotFound, cityID)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryReport, err)
	}

	report := &domain.CityProductionReport{
		ID:          header.ReportID,
		CityID:      header.CityID,
		Turn:        header.Turn,
		RulesDigest: header.RulesDigest,
		ComputedAt:  time.Unix(0, header.ComputedAt).UTC(),
	}
	if err := json.Unmarshal([]byte(header.Failures), &report.Failures); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failures: %w", err)
	}
	if len(report.Failures) == 0 {
		report.Failures = nil
	}

	var rows []lineRow
	if err := s.db.SelectContext(ctx, &rows, selectLinesSQL, header.ReportID); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryLines, err)
	}

	for _, row := range rows {
		line, err := row.toLine()
		if err != nil {
			return nil, err
		}
		report.Lines = append(report.Lines, line)
	}
	return report, nil
}

func (r lineRow) toLine() (domain.ProductionLine, error) {
	line := domain.ProductionLine{
		ResourceType:    domain.ResourceTypeID(r.ResourceType),
		FlatBeforeBonus: r.FlatBeforeDoubled,
		PercentageBonus: r.PercentageBonus,
		FlatAfterBonus:  r.FlatAfterDoubled,
		Total:           r.Total,
		RejectedEntries: r.RejectedEntries,
	}

	rd, err := domain.ParseRoundingDirection(r.Rounding)
	if err != nil {
		return line, err
	}
	line.Rounding = rd

	if err := json.Unmarshal([]byte(r.Entries), &line.Entries); err != nil {
		return line, fmt.Errorf("failed to unmarshal entries for %s: %w", r.ResourceType, err)
	}
	if len(line.Entries) == 0 {
		line.Entries = nil
	}
	return line, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
