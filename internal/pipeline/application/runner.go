package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"plant-reconcile/internal/aggregation"
	"plant-reconcile/internal/ingest"
	"plant-reconcile/internal/observability/metrics"
	plant "plant-reconcile/internal/plant/domain"
	recapp "plant-reconcile/internal/reconciliation/application"
	reconciliation "plant-reconcile/internal/reconciliation/domain"
	"plant-reconcile/internal/report"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

const (
	stageLoad      = "load"
	stageAggregate = "aggregate"
	stageReconcile = "reconcile"
	stageWrite     = "write"
	stageArchive   = "archive"
)

// Archive stores the latest reconciliation report of a plant.
type Archive interface {
	SaveReport(ctx context.Context, plantID, cadence string, r reconciliation.Report) (string, error)
}

// Outcome describes a finished run.
type Outcome struct {
	RunID     string
	Cadence   timeseries.Cadence
	Input     ingest.Result
	Report    reconciliation.Report
	Paths     []string
	ArchiveID string
}

// Runner executes the load, aggregate, reconcile and emit pipeline.
type Runner struct {
	cfg     Config
	logger  zerolog.Logger
	metrics *metrics.Metrics
	archive Archive
}

// NewRunner constructs a Runner. metrics and archive may be nil.
func NewRunner(cfg Config, logger zerolog.Logger, m *metrics.Metrics, archive Archive) *Runner {
	return &Runner{cfg: cfg, logger: logger, metrics: m, archive: archive}
}

// Run produces every output tier.
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	return r.execute(ctx, report.Tiers...)
}

// Reconcile produces only the reconciliation tier and leaves the other tiers untouched.
func (r *Runner) Reconcile(ctx context.Context) (Outcome, error) {
	return r.execute(ctx, report.TierReconciliation)
}

func (r *Runner) execute(ctx context.Context, tiers ...report.Tier) (out Outcome, err error) {
	if r == nil {
		return Outcome{}, fmt.Errorf("pipeline runner: nil")
	}
	started := time.Now()
	out.RunID = uuid.NewString()
	logger := r.logger.With().Str("run_id", out.RunID).Str("plant_id", r.cfg.PlantID).Logger()
	defer func() {
		r.metrics.ObserveRun(started, err)
		if werr := r.metrics.WriteTextfile(r.cfg.MetricsTextfile); werr != nil {
			logger.Warn().Err(werr).Str("path", r.cfg.MetricsTextfile).Msg("metrics textfile not written")
		}
	}()
	if err = r.cfg.Validate(); err != nil {
		return out, err
	}
	logger.Info().Str("input", r.cfg.InputDir).Str("output", r.cfg.OutputDir).Msg("pipeline_run_start")

	stage := time.Now()
	ds, input := ingest.NewLoader(r.cfg.Layout, logger).Load(r.cfg.InputDir)
	out.Input = input
	r.metrics.ObserveStage(stageLoad, stage)
	if r.metrics != nil {
		r.metrics.InputsMissing.Add(float64(len(input.Missing)))
		r.metrics.InputWarnings.Add(float64(len(input.Warnings)))
	}

	stage = time.Now()
	out.Cadence = r.cadence(ds)
	base, err := timeseries.Canonical(timeseries.DefaultStart, out.Cadence)
	if err != nil {
		return out, err
	}
	summary := aggregation.Aggregate(ds, base)
	if summary.WeatherErr != nil {
		logger.Warn().Err(summary.WeatherErr).Msg("weather data excluded")
	}
	r.metrics.ObserveStage(stageAggregate, stage)

	stage = time.Now()
	engine := recapp.NewEngine(logger, r.cfg.Thresholds)
	out.Report = engine.Run(recapp.Input{Dataset: ds, Summary: summary})
	r.metrics.ObserveStage(stageReconcile, stage)
	if r.metrics != nil {
		r.metrics.ReportRows.WithLabelValues(reconciliation.StatusValid).Set(float64(out.Report.Summary.Valid))
		r.metrics.ReportRows.WithLabelValues(reconciliation.StatusMissing).Set(float64(out.Report.Summary.Missing))
		r.metrics.QualityScore.Set(out.Report.Summary.Score)
		r.metrics.Recommendation.Set(float64(len(out.Report.Recommendations)))
	}

	stage = time.Now()
	out.Paths, err = r.emit(ds, summary, out.Report, tiers)
	r.metrics.ObserveStage(stageWrite, stage)
	if err != nil {
		logger.Error().Err(err).Msg("pipeline_run_failed")
		return out, err
	}

	if r.archive != nil {
		stage = time.Now()
		id, aerr := r.archive.SaveReport(ctx, r.cfg.PlantID, string(out.Cadence), out.Report)
		r.metrics.ObserveStage(stageArchive, stage)
		if aerr != nil {
			logger.Warn().Err(aerr).Msg("reconciliation archive failed")
		} else {
			out.ArchiveID = id
		}
	}

	logger.Info().
		Str("cadence", string(out.Cadence)).
		Int("files", len(out.Paths)).
		Float64("quality_score", out.Report.Summary.Score).
		Dur("elapsed", time.Since(started)).
		Msg("pipeline_run_success")
	return out, nil
}

// cadence resolves auto from the first load profile that carries timestamps.
func (r *Runner) cadence(ds plant.Dataset) timeseries.Cadence {
	if fixed, err := r.cfg.fixedCadence(); err == nil && fixed != "" {
		return fixed
	}
	for _, t := range ds.Loads {
		if t.HasTimestamps() {
			return timeseries.DetectCadence(t.Timestamps)
		}
	}
	return timeseries.CadenceHourly
}

func (r *Runner) emit(ds plant.Dataset, s aggregation.Summary, rep reconciliation.Report, tiers []report.Tier) ([]string, error) {
	var tables []report.Table
	for _, tier := range tiers {
		switch tier {
		case report.TierIntermediate:
			tables = append(tables, report.IntermediateTables(s)...)
		case report.TierFinal:
			tables = append(tables, report.FinalTables(ds, s)...)
		case report.TierReconciliation:
			tables = append(tables, report.ReconciliationTables(rep)...)
		}
	}

	w := report.NewWriter(r.cfg.OutputDir)
	paths, err := w.WriteTiers(tables, tiers...)
	if err != nil {
		return paths, err
	}
	if r.metrics != nil {
		for _, t := range tables {
			r.metrics.TablesWritten.WithLabelValues(string(t.Tier)).Inc()
		}
	}
	if !containsTier(tiers, report.TierReconciliation) {
		return paths, nil
	}

	if r.cfg.Exports.Workbook {
		data, err := report.BuildWorkbook(report.ReconciliationTables(rep))
		if err != nil {
			return paths, fmt.Errorf("pipeline: build workbook: %w", err)
		}
		path, err := w.WriteFile(report.TierReconciliation, report.WorkbookFile, data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	} else if err := w.Remove(report.TierReconciliation, report.WorkbookFile); err != nil {
		return paths, err
	}

	if r.cfg.Exports.PDF {
		data, err := report.BuildPDF(rep)
		if err != nil {
			return paths, fmt.Errorf("pipeline: build pdf: %w", err)
		}
		path, err := w.WriteFile(report.TierReconciliation, report.PDFFile, data)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	} else if err := w.Remove(report.TierReconciliation, report.PDFFile); err != nil {
		return paths, err
	}
	return paths, nil
}

func containsTier(tiers []report.Tier, tier report.Tier) bool {
	for _, t := range tiers {
		if t == tier {
			return true
		}
	}
	return false
}
