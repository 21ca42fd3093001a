package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"plant-reconcile/internal/observability/metrics"
	pipeline "plant-reconcile/internal/pipeline/application"
	reconrepo "plant-reconcile/internal/reconciliation/infrastructure/postgres"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

var (
	configPath string
	logLevel   string
	overrides  pipeline.Overrides

	archiveTimeout time.Duration

	baseStart string
	baseLimit int
)

var rootCmd = &cobra.Command{
	Use:           "plant-reconcile",
	Short:         "Energy plant data aggregation and reconciliation",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Aggregate inputs and write the intermediate, final and reconciliation tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd.Context(), (*pipeline.Runner).Run)
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Write only the reconciliation tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd.Context(), (*pipeline.Runner).Reconcile)
	},
}

var timebaseCmd = &cobra.Command{
	Use:   "timebase",
	Short: "Print the canonical time base",
	Long: `Print the canonical timestamp sequence for a cadence.

  plant-reconcile timebase --cadence hourly --limit 24
  plant-reconcile timebase --cadence minute --start 2024-06-01T00:00:00Z`,
	RunE: runTimebase,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file (default $PLANT_RECONCILE_CONFIG)")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&overrides.InputDir, "input", "", "Input directory")
	flags.StringVar(&overrides.OutputDir, "output", "", "Output directory")
	flags.StringVar(&overrides.Cadence, "cadence", "", "Time base cadence: auto, hourly, minute")
	flags.StringVar(&overrides.PlantID, "plant-id", "", "Plant identifier used by the archive")

	for _, cmd := range []*cobra.Command{runCmd, reconcileCmd} {
		f := cmd.Flags()
		f.StringVar(&overrides.DatabaseURL, "database-url", "", "Postgres DSN for the reconciliation archive")
		f.StringVar(&overrides.MetricsTextfile, "metrics-textfile", "", "Write run metrics to this Prometheus textfile")
		f.Float64Var(&overrides.Thresholds.MinQualityScore, "min-quality-score", 0, "Quality score below which a recommendation is made")
		f.Float64Var(&overrides.Thresholds.MinSufficiency, "min-sufficiency", 0, "Energy sufficiency percentage below which a recommendation is made")
		f.Float64Var(&overrides.Thresholds.MinCapacityMargin, "min-capacity-margin", 0, "Capacity margin percentage below which a recommendation is made")
		f.BoolVar(&overrides.NoWorkbook, "no-workbook", false, "Skip the xlsx workbook export")
		f.BoolVar(&overrides.NoPDF, "no-pdf", false, "Skip the PDF report export")
		f.DurationVar(&archiveTimeout, "archive-timeout", 30*time.Second, "Timeout for connecting to the archive database")
	}

	timebaseCmd.Flags().StringVar(&baseStart, "start", "", "First timestamp, RFC 3339 (default 2023-01-01T00:00:00Z)")
	timebaseCmd.Flags().IntVar(&baseLimit, "limit", 0, "Print at most this many timestamps")

	rootCmd.AddCommand(runCmd, reconcileCmd, timebaseCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func execute(ctx context.Context, stage func(*pipeline.Runner, context.Context) (pipeline.Outcome, error)) error {
	logger := newLogger()
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg = cfg.Apply(overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var archive pipeline.Archive
	if cfg.DatabaseURL != "" {
		db, err := openArchive(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Warn().Err(err).Msg("archive disabled")
		} else {
			defer db.Close()
			archive = reconrepo.NewRepository(db)
		}
	}

	outcome, err := stage(pipeline.NewRunner(cfg, logger, metrics.New(), archive), ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "quality score: %.2f%% (%d/%d metrics valid)\n",
		outcome.Report.Summary.Score, outcome.Report.Summary.Valid, outcome.Report.Summary.Total)
	for _, line := range outcome.Report.Recommendations {
		fmt.Fprintf(os.Stdout, "- %s\n", line)
	}
	fmt.Fprintf(os.Stdout, "%d files written to %s\n", len(outcome.Paths), cfg.OutputDir)
	return nil
}

func openArchive(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := reconrepo.NewRepository(db).EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db schema: %w", err)
	}
	return db, nil
}

func runTimebase(cmd *cobra.Command, args []string) error {
	cfg, err := pipeline.LoadConfig(configPath)
	if err != nil {
		return err
	}
	cfg = cfg.Apply(overrides)

	cadence := timeseries.CadenceHourly
	if cfg.Cadence != "" && !strings.EqualFold(cfg.Cadence, pipeline.CadenceAuto) {
		if cadence, err = timeseries.ParseCadence(cfg.Cadence); err != nil {
			return err
		}
	}
	start := timeseries.DefaultStart
	if baseStart != "" {
		if start, err = time.Parse(time.RFC3339, baseStart); err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
	}
	base, err := timeseries.Canonical(start.UTC(), cadence)
	if err != nil {
		return err
	}

	n := base.Len()
	if baseLimit > 0 && baseLimit < n {
		n = baseLimit
	}
	out := cmd.OutOrStdout()
	for i := 0; i < n; i++ {
		fmt.Fprintln(out, base.At(i).Format("2006-01-02 15:04:05"))
	}
	return nil
}
