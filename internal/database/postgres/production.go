package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/CityProduction_Go/internal/domain"
	"github.com/osse101/CityProduction_Go/internal/repository"
)

const (
	insertReportSQL = `
		INSERT INTO production_reports (report_id, city_id, turn, rules_digest, failures, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	insertLineSQL = `
		INSERT INTO production_report_lines (
			report_id, resource_type, flat_before_doubled, percentage_bonus,
			flat_after_doubled, total, rounding, rejected_entries, entries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectLatestReportSQL = `
		SELECT report_id, city_id, turn, rules_digest, failures, computed_at
		FROM production_reports
		WHERE city_id = $1
		ORDER BY turn DESC, computed_at DESC
		LIMIT 1`

	selectLinesSQL = `
		SELECT resource_type, flat_before_doubled, percentage_bonus, flat_after_doubled,
		       total, rounding, rejected_entries, entries
		FROM production_report_lines
		WHERE report_id = $1
		ORDER BY resource_type`
)

// ProductionRepository stores city production reports in PostgreSQL
type ProductionRepository struct {
	db *pgxpool.Pool
}

var _ repository.ProductionReports = (*ProductionRepository)(nil)

// NewProductionRepository creates a new ProductionRepository
func NewProductionRepository(db *pgxpool.Pool) *ProductionRepository {
	return &ProductionRepository{db: db}
}

// SaveCityReport inserts the report header and all lines in one transaction
func (r *ProductionRepository) SaveCityReport(ctx context.Context, report *domain.CityProductionReport) error {
	reportID, err := uuid.Parse(report.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInvalidReportID, err)
	}

	failures, err := json.Marshal(nonNilFailures(report.Failures))
	if err != nil {
		return fmt.Errorf("failed to marshal failures: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, insertReportSQL,
		reportID, report.CityID, report.Turn, report.RulesDigest, failures, report.ComputedAt,
	); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToInsertReport, err)
	}

	batch := &pgx.Batch{}
	for _, line := range report.Lines {
		entries, err := json.Marshal(nonNilEntries(line.Entries))
		if err != nil {
			return fmt.Errorf("failed to marshal entries for %s: %w", line.ResourceType, err)
		}
		batch.Queue(insertLineSQL,
			reportID, string(line.ResourceType), line.FlatBeforeBonus, line.PercentageBonus,
			line.FlatAfterBonus, line.Total, line.Rounding.String(), line.RejectedEntries, entries,
		)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToInsertLine, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// GetLatestCityReport loads the newest report of a city with its lines
func (r *ProductionRepository) GetLatestCityReport(ctx context.Context, cityID string) (*domain.CityProductionReport, error) {
	var (
		reportID uuid.UUID
		failures []byte
		report   domain.CityProductionReport
	)

	err := r.db.QueryRow(ctx, selectLatestReportSQL, cityID).Scan(
		&reportID, &report.CityID, &report.Turn, &report.RulesDigest, &failures, &report.ComputedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: city %q", domain.ErrReportNotFound, cityID)
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryReport, err)
	}
	report.ID = reportID.String()

	if err := json.Unmarshal(failures, &report.Failures); err != nil {
		return nil, fmt.Errorf("failed to unmarshal failures: %w", err)
	}
	if len(report.Failures) == 0 {
		report.Failures = nil
	}

	rows, err := r.db.Query(ctx, selectLinesSQL, reportID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryLines, err)
	}
	defer rows.Close()

	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		report.Lines = append(report.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryLines, err)
	}

	return &report, nil
}

func scanLine(rows pgx.Rows) (domain.ProductionLine, error) {
	var (
		line         domain.ProductionLine
		resourceType string
		rounding     string
		entries      []byte
	)
	if err := rows.Scan(&resourceType, &line.FlatBeforeBonus, &line.PercentageBonus,
		&line.FlatAfterBonus, &line.Total, &rounding, &line.RejectedEntries, &entries); err != nil {
		return line, fmt.Errorf("%w: %s: %v", domain.ErrDatabaseError, ErrMsgFailedToQueryLines, err)
	}
	line.ResourceType = domain.ResourceTypeID(resourceType)

	rd, err := domain.ParseRoundingDirection(rounding)
	if err != nil {
		return line, err
	}
	line.Rounding = rd

	if err := json.Unmarshal(entries, &line.Entries); err != nil {
		return line, fmt.Errorf("failed to unmarshal entries for %s: %w", resourceType, err)
	}
	if len(line.Entries) == 0 {
		line.Entries = nil
	}
	return line, nil
}

func nonNilFailures(f []domain.ResourceFailure) []domain.ResourceFailure {
	if f == nil {
		return []domain.ResourceFailure{}
	}
	return f
}

func nonNilEntries(e []domain.ProductionEntry) []domain.ProductionEntry {
	if e == nil {
		return []domain.ProductionEntry{}
	}
	return e
}
