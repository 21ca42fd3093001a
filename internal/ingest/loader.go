package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// Layout names the inputs relative to the input root.
type Layout struct {
	LoadsDir      string `yaml:"loads_dir"`
	ProductionDir string `yaml:"production_dir"`
	StudyCase     string `yaml:"studycase"`
	TechCost      string `yaml:"tech_cost"`
	EnergyMarket  string `yaml:"energy_market"`
	Weather       string `yaml:"weather"`
	// OverlayDir holds a partial copy of the layout merged over the base inputs.
	OverlayDir string `yaml:"overlay_dir"`
}

// DefaultLayout is the directory layout produced by the simulation front end.
func DefaultLayout() Layout {
	return Layout{
		LoadsDir:      "loads",
		ProductionDir: "production",
		StudyCase:     "studycase.json",
		TechCost:      "tech_cost.json",
		EnergyMarket:  "energy_market.json",
		Weather:       filepath.Join("weather", "TMY_general.csv"),
		OverlayDir:    "overrides",
	}
}

// Issue records one input that was skipped.
type Issue struct {
	Path string
	Err  error
}

// Result summarises what the loader skipped.
type Result struct {
	Missing  []Issue
	Warnings []Issue
}

// Loader reads a plant input directory into a Dataset.
type Loader struct {
	layout Layout
	logger zerolog.Logger
	// overlay loaders skip absent inputs silently.
	overlay bool
}

func NewLoader(layout Layout, logger zerolog.Logger) *Loader {
	return &Loader{layout: mergeLayout(DefaultLayout(), layout), logger: logger}
}

// Load reads every input under root. Missing inputs leave their domain empty and malformed
// inputs are logged and excluded; Load itself never fails. When the overlay directory exists
// its inputs replace the base inputs of the same name.
func (l *Loader) Load(root string) (plant.Dataset, Result) {
	var res Result
	ds := l.read(root, &res)

	if l.layout.OverlayDir != "" {
		dir := filepath.Join(root, l.layout.OverlayDir)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			ol := *l
			ol.overlay = true
			patch := ol.read(dir, &res)
			ds = plant.Merge(ds, patch)
			l.logger.Info().
				Str("overlay", dir).
				Int("loads", len(patch.Loads)).
				Int("production", len(patch.Production)).
				Strs("components", patch.Plant.Keys()).
				Msg("overlay merged")
		}
	}

	l.logger.Info().
		Str("root", root).
		Int("loads", len(ds.Loads)).
		Int("production", len(ds.Production)).
		Int("components", ds.ComponentCount()).
		Int("technologies", ds.Costs.Len()).
		Int("market_entries", ds.Market.Len()).
		Bool("weather", ds.Weather != nil).
		Int("warnings", len(res.Warnings)).
		Msg("inputs loaded")
	return ds, res
}

func (l *Loader) read(root string, res *Result) plant.Dataset {
	var ds plant.Dataset
	ds.Loads = l.readTables(root, l.layout.LoadsDir, res)
	production := l.readTables(root, l.layout.ProductionDir, res)
	for _, table := range production {
		ds.Production = append(ds.Production, withSyntheticTimestamps(table))
	}

	if study, ok := l.readAttributes(root, l.layout.StudyCase, res); ok {
		if v, found := study.Get(plant.PlantKey); found && v.IsMap() {
			ds.Plant = v.Attributes()
		} else {
			l.record(res, filepath.Join(root, l.layout.StudyCase), fmt.Errorf("%w: %s object", ErrMissingInput, plant.PlantKey))
		}
	}
	if costs, ok := l.readAttributes(root, l.layout.TechCost, res); ok {
		ds.Costs = costs
	}
	if market, ok := l.readAttributes(root, l.layout.EnergyMarket, res); ok {
		ds.Market = market
	}

	if l.layout.Weather != "" {
		path := filepath.Join(root, l.layout.Weather)
		weather, err := ReadTable(path, "weather")
		if err != nil {
			l.record(res, path, err)
		} else {
			ds.Weather = &weather
		}
	}
	return ds
}

// readTables reads the CSV files of dir in lexical order.
func (l *Loader) readTables(root, dir string, res *Result) []plant.Table {
	path := filepath.Join(root, dir)
	entries, err := os.ReadDir(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		l.record(res, path, err)
		return nil
	}
	var tables []plant.Table
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		file := filepath.Join(path, entry.Name())
		table, err := ReadTable(file, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		if err != nil {
			l.record(res, file, err)
			continue
		}
		tables = append(tables, table)
	}
	return tables
}

func (l *Loader) readAttributes(root, name string, res *Result) (plant.Attributes, bool) {
	if name == "" {
		return plant.Attributes{}, false
	}
	path := filepath.Join(root, name)
	attrs, err := ReadAttributes(path)
	if err != nil {
		l.record(res, path, err)
		return plant.Attributes{}, false
	}
	return attrs, true
}

func (l *Loader) record(res *Result, path string, err error) {
	issue := Issue{Path: path, Err: err}
	if errors.Is(err, ErrMissingInput) {
		if l.overlay {
			return
		}
		res.Missing = append(res.Missing, issue)
		l.logger.Info().Str("path", path).Msg("input missing")
		return
	}
	res.Warnings = append(res.Warnings, issue)
	l.logger.Warn().Err(err).Str("path", path).Msg("input excluded")
}

// withSyntheticTimestamps gives a production table without a timestamp column a per-minute
// sequence starting at the default start.
func withSyntheticTimestamps(table plant.Table) plant.Table {
	if table.HasTimestamps() {
		return table
	}
	base, err := timeseries.NewTimeBase(timeseries.DefaultStart, table.Rows(), timeseries.CadenceMinute)
	if err != nil {
		return table
	}
	return table.WithTimestamps(base.Timestamps())
}

func mergeLayout(base, override Layout) Layout {
	if override.LoadsDir != "" {
		base.LoadsDir = override.LoadsDir
	}
	if override.ProductionDir != "" {
		base.ProductionDir = override.ProductionDir
	}
	if override.StudyCase != "" {
		base.StudyCase = override.StudyCase
	}
	if override.TechCost != "" {
		base.TechCost = override.TechCost
	}
	if override.EnergyMarket != "" {
		base.EnergyMarket = override.EnergyMarket
	}
	if override.Weather != "" {
		base.Weather = override.Weather
	}
	if override.OverlayDir != "" {
		base.OverlayDir = override.OverlayDir
	}
	return base
}
