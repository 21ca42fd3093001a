package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	reconciliation "plant-reconcile/internal/reconciliation/domain"
)

//go:embed schema.sql
var schema string

// Run is an archived reconciliation run.
type Run struct {
	ID              string
	PlantID         string
	Cadence         string
	Summary         reconciliation.Summary
	Recommendations []string
	CreatedAt       time.Time
}

// Metric is one archived report row.
type Metric struct {
	Position  int
	CheckType string
	Metric    string
	Number    *float64
	Text      string
	Status    string
}

// Repository archives reconciliation reports, keeping the latest run per plant.
type Repository struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, types: pgtype.NewMap()}
}

// EnsureSchema creates the archive tables if they are missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if r == nil || r.db == nil {
		return errors.New("reconciliation repo: nil db")
	}
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// SaveReport replaces the plant's archived run with report and returns the new run id.
func (r *Repository) SaveReport(ctx context.Context, plantID, cadence string, report reconciliation.Report) (string, error) {
	if r == nil || r.db == nil {
		return "", errors.New("reconciliation repo: nil db")
	}
	if plantID == "" {
		return "", errors.New("reconciliation repo: empty plant id")
	}
	runID := uuid.NewString()
	recommendations := report.Recommendations
	if recommendations == nil {
		recommendations = []string{}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM reconciliation_runs WHERE plant_id = $1`, plantID); err != nil {
		return "", fmt.Errorf("reconciliation repo: delete previous run: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO reconciliation_runs (
	id, plant_id, cadence, total_metrics, valid_metrics, missing_metrics, quality_score, recommendations, created_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9
)`,
		runID, plantID, cadence, report.Summary.Total, report.Summary.Valid, report.Summary.Missing,
		report.Summary.Score, recommendations, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("reconciliation repo: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO reconciliation_metrics (
	run_id, position, check_type, metric, value_number, value_text, status
) VALUES (
	$1,$2,$3,$4,$5,$6,$7
)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()
	for i, row := range report.Rows {
		if _, err := stmt.ExecContext(ctx, runID, i, row.CheckType, row.Metric, numberOf(row.Value), row.Value.String(), row.Status); err != nil {
			return "", fmt.Errorf("reconciliation repo: insert metric %s: %w", row.Metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// LatestRun returns the archived run for a plant.
func (r *Repository) LatestRun(ctx context.Context, plantID string) (*Run, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reconciliation repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, plant_id, cadence, total_metrics, valid_metrics, missing_metrics, quality_score, recommendations, created_at
FROM reconciliation_runs
WHERE plant_id = $1`, plantID)

	var run Run
	if err := row.Scan(
		&run.ID,
		&run.PlantID,
		&run.Cadence,
		&run.Summary.Total,
		&run.Summary.Valid,
		&run.Summary.Missing,
		&run.Summary.Score,
		r.types.SQLScanner(&run.Recommendations),
		&run.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	run.CreatedAt = run.CreatedAt.UTC()
	return &run, nil
}

// ListMetrics returns the archived rows of a run in report order.
func (r *Repository) ListMetrics(ctx context.Context, runID string) ([]Metric, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("reconciliation repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT position, check_type, metric, value_number, value_text, status
FROM reconciliation_metrics
WHERE run_id = $1
ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Metric
	for rows.Next() {
		var (
			m      Metric
			number sql.NullFloat64
		)
		if err := rows.Scan(&m.Position, &m.CheckType, &m.Metric, &number, &m.Text, &m.Status); err != nil {
			return nil, err
		}
		if number.Valid {
			v := number.Float64
			m.Number = &v
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func numberOf(v reconciliation.Value) sql.NullFloat64 {
	f, ok := v.Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
