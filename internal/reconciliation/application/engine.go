package application

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"plant-reconcile/internal/aggregation"
	plant "plant-reconcile/internal/plant/domain"
	reconciliation "plant-reconcile/internal/reconciliation/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

const (
	// HydrogenKWhPerKg is the energy content used to express hydrogen demand as energy.
	HydrogenKWhPerKg = 33.33
	// PeakHourCount is the number of peak and off-peak hours reported per series.
	PeakHourCount = 4
)

// Input is everything the checks read.
type Input struct {
	Dataset plant.Dataset
	Summary aggregation.Summary
}

type check struct {
	name string
	run  func(Input) []reconciliation.Node
}

// Engine runs the reconciliation checks.
type Engine struct {
	logger     zerolog.Logger
	thresholds reconciliation.Thresholds
	checks     []check
}

var checkFuncs = map[string]func(Input) []reconciliation.Node{
	reconciliation.CheckDataQuality:         checkDataQuality,
	reconciliation.CheckCapacity:            checkCapacity,
	reconciliation.CheckLoadProfile:         checkLoadProfile,
	reconciliation.CheckEnergyBalance:       checkEnergyBalance,
	reconciliation.CheckEconomic:            checkEconomic,
	reconciliation.CheckTemporal:            checkTemporal,
	reconciliation.CheckPhysicalConstraints: checkPhysicalConstraints,
}

// NewEngine builds an engine running the standard checks in reconciliation.CheckOrder.
func NewEngine(logger zerolog.Logger, thresholds reconciliation.Thresholds) *Engine {
	checks := make([]check, 0, len(reconciliation.CheckOrder))
	for _, name := range reconciliation.CheckOrder {
		checks = append(checks, check{name: name, run: checkFuncs[name]})
	}
	return &Engine{logger: logger, thresholds: thresholds, checks: checks}
}

// Run executes every check in order, flattens the results and derives the score and
// recommendations. A check that panics is logged and recorded as an empty section.
func (e *Engine) Run(in Input) reconciliation.Report {
	var results reconciliation.Results
	for _, c := range e.checks {
		started := time.Now()
		section := e.runCheck(c, in)
		results.Add(section)
		e.logger.Debug().
			Str("check", c.name).
			Int("nodes", len(section.Nodes)).
			Dur("elapsed", time.Since(started)).
			Msg("check completed")
	}
	rows := reconciliation.Flatten(results)
	summary := reconciliation.Summarize(rows)
	report := reconciliation.Report{
		Results:         results,
		Rows:            rows,
		Summary:         summary,
		Recommendations: reconciliation.Recommend(summary, results, e.thresholds),
		Overview:        overview(in),
	}
	e.logger.Info().
		Int("rows", summary.Total).
		Int("valid", summary.Valid).
		Int("missing", summary.Missing).
		Float64("quality_score", summary.Score).
		Int("recommendations", len(report.Recommendations)).
		Msg("reconciliation completed")
	return report
}

func (e *Engine) runCheck(c check, in Input) (section reconciliation.Section) {
	section = reconciliation.Section{Name: c.name}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("check", c.name).
				Str("panic", fmt.Sprint(r)).
				Msg("check failed, section left empty")
			section = reconciliation.Section{Name: c.name}
		}
	}()
	section.Nodes = c.run(in)
	return section
}

func overview(in Input) reconciliation.Overview {
	ds, s := in.Dataset, in.Summary
	return reconciliation.Overview{
		LoadProfiles:         len(ds.Loads),
		ProductionSources:    len(ds.Production),
		SystemComponents:     ds.ComponentCount(),
		TechnologyCosts:      ds.Costs.Len(),
		MarketParameters:     ds.Market.Len(),
		MaxElectricityDemand: s.Loads.Stats[aggregation.Electricity].Max,
		MaxHeatDemand:        s.Loads.Stats[aggregation.Heat].Max,
		MaxHydrogenDemand:    s.Loads.Stats[aggregation.Hydrogen].Max,
		TotalSystemCapacity:  s.Configuration.TotalCapacity,
		TotalCapitalCost:     s.Economics.CapitalCost(),
		TotalOMCost:          s.Economics.OMCost(),
		ElectricityPrice:     s.Economics.Prices.ElectricityPurchase,
		HydrogenPrice:        s.Economics.Prices.HydrogenPurchase,
	}
}

func num(key string, v float64) reconciliation.Node {
	return reconciliation.Leaf(key, reconciliation.Number(v))
}

func count(key string, n int) reconciliation.Node {
	return reconciliation.Leaf(key, reconciliation.Count(n))
}

// sumSources adds the aligned totals of sources, each scaled by factor.
func sumSources(sources []aggregation.Source, factor float64) float64 {
	var total float64
	for _, src := range sources {
		total += src.Stats.Sum * factor
	}
	return total
}

// hourKey renders an hour of the day as a two-digit key.
func hourKey(h int) string {
	return fmt.Sprintf("%02d", h)
}

func hourlyPattern(key string, profile []timeseries.HourAverage) reconciliation.Node {
	children := make([]reconciliation.Node, 0, len(profile))
	for _, h := range profile {
		children = append(children, num(hourKey(h.Hour), h.Average))
	}
	return reconciliation.Group(key, children...)
}
