package application

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"plant-reconcile/internal/ingest"
	reconciliation "plant-reconcile/internal/reconciliation/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// CadenceAuto picks the cadence from the first timestamped load profile.
const CadenceAuto = "auto"

// ErrConfig marks an unusable configuration.
var ErrConfig = errors.New("pipeline: invalid config")

// Exports toggles the document exports next to the reconciliation tables.
type Exports struct {
	Workbook bool `yaml:"workbook"`
	PDF      bool `yaml:"pdf"`
}

// Config defines one pipeline run.
type Config struct {
	PlantID         string                    `yaml:"plant_id"`
	InputDir        string                    `yaml:"input_dir"`
	OutputDir       string                    `yaml:"output_dir"`
	Cadence         string                    `yaml:"cadence"`
	Layout          ingest.Layout             `yaml:"layout"`
	Thresholds      reconciliation.Thresholds `yaml:"thresholds"`
	Exports         Exports                   `yaml:"exports"`
	DatabaseURL     string                    `yaml:"database_url"`
	MetricsTextfile string                    `yaml:"metrics_textfile"`
}

// Overrides are command-line values laid over the loaded config. Zero values are ignored.
type Overrides struct {
	PlantID         string
	InputDir        string
	OutputDir       string
	Cadence         string
	DatabaseURL     string
	MetricsTextfile string
	Thresholds      reconciliation.Thresholds
	NoWorkbook      bool
	NoPDF           bool
}

// DefaultConfig returns the configuration used when nothing else is supplied.
func DefaultConfig() Config {
	return Config{
		PlantID:    "hybrid_plant",
		InputDir:   "input",
		OutputDir:  "output",
		Cadence:    CadenceAuto,
		Layout:     ingest.DefaultLayout(),
		Thresholds: reconciliation.DefaultThresholds(),
		Exports:    Exports{Workbook: true, PDF: true},
	}
}

// LoadConfig loads config from yaml or env. An empty path falls back to PLANT_RECONCILE_CONFIG;
// with neither set the defaults and environment are used.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.InputDir = getenvDefault("PLANT_INPUT_DIR", cfg.InputDir)
	cfg.OutputDir = getenvDefault("PLANT_OUTPUT_DIR", cfg.OutputDir)
	cfg.Cadence = getenvDefault("PLANT_CADENCE", cfg.Cadence)
	cfg.DatabaseURL = getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", ""))
	cfg.MetricsTextfile = os.Getenv("PLANT_METRICS_TEXTFILE")

	if path == "" {
		path = os.Getenv("PLANT_RECONCILE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("pipeline: read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrConfig, path, err)
		}
	}
	cfg.Thresholds = mergeThresholds(reconciliation.DefaultThresholds(), cfg.Thresholds)
	return cfg, cfg.Validate()
}

// Apply returns a copy of c with the non-zero overrides applied.
func (c Config) Apply(o Overrides) Config {
	if o.PlantID != "" {
		c.PlantID = o.PlantID
	}
	if o.InputDir != "" {
		c.InputDir = o.InputDir
	}
	if o.OutputDir != "" {
		c.OutputDir = o.OutputDir
	}
	if o.Cadence != "" {
		c.Cadence = o.Cadence
	}
	if o.DatabaseURL != "" {
		c.DatabaseURL = o.DatabaseURL
	}
	if o.MetricsTextfile != "" {
		c.MetricsTextfile = o.MetricsTextfile
	}
	if o.NoWorkbook {
		c.Exports.Workbook = false
	}
	if o.NoPDF {
		c.Exports.PDF = false
	}
	c.Thresholds = mergeThresholds(c.Thresholds, o.Thresholds)
	return c
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("%w: input dir required", ErrConfig)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output dir required", ErrConfig)
	}
	if c.PlantID == "" {
		return fmt.Errorf("%w: plant id required", ErrConfig)
	}
	if _, err := c.fixedCadence(); err != nil {
		return err
	}
	return nil
}

// fixedCadence parses Cadence. It returns the empty cadence for auto.
func (c Config) fixedCadence() (timeseries.Cadence, error) {
	if c.Cadence == "" || strings.EqualFold(c.Cadence, CadenceAuto) {
		return "", nil
	}
	cadence, err := timeseries.ParseCadence(c.Cadence)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cadence, nil
}

func mergeThresholds(base, override reconciliation.Thresholds) reconciliation.Thresholds {
	if override.MinQualityScore != 0 {
		base.MinQualityScore = override.MinQualityScore
	}
	if override.MinSufficiency != 0 {
		base.MinSufficiency = override.MinSufficiency
	}
	if override.MinCapacityMargin != 0 {
		base.MinCapacityMargin = override.MinCapacityMargin
	}
	return base
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
