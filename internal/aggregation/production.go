package aggregation

import (
	"time"

	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

const (
	// SummarySourceLimit caps the sources per class in intermediate summaries.
	SummarySourceLimit = 4
	// BalanceSourceLimit caps the sources per class in balance and consistency checks.
	BalanceSourceLimit = 2
	// SolarPowerFactor turns the irradiance-like solar signal into approximate kW.
	// It is a simplification used for energy balance figures only.
	SolarPowerFactor = 0.1
)

// Source is one classified production source.
type Source struct {
	Name       string
	Kind       plant.SourceKind
	Column     string
	Timestamps []time.Time
	Raw        []float64
	Aligned    []float64
	Stats      timeseries.Stats
}

// SummaryColumn is the column name used for the source in production summaries.
func (s Source) SummaryColumn() string {
	if s.Kind == plant.SourceSolar {
		return s.Name + "_solar_power_A_m2"
	}
	return s.Name + "_wind_power_kW"
}

// ProductionSummary is the production aggregator output.
type ProductionSummary struct {
	Solar []Source
	Wind  []Source
}

// AggregateProduction classifies every production table, picks its power column and aligns
// it to base. Unclassified sources are ignored.
func AggregateProduction(tables []plant.Table, base timeseries.TimeBase) ProductionSummary {
	var s ProductionSummary
	for _, table := range tables {
		kind := plant.ClassifySource(table.Name)
		if kind == plant.SourceUnknown {
			continue
		}
		column := plant.PowerColumn(kind, table.ColumnNames())
		raw, _ := table.Column(column)
		aligned := timeseries.Align(raw, base.Len())
		src := Source{
			Name:       table.Name,
			Kind:       kind,
			Column:     column,
			Timestamps: table.Timestamps,
			Raw:        raw,
			Aligned:    aligned,
			Stats:      timeseries.Describe(aligned),
		}
		if kind == plant.SourceSolar {
			s.Solar = append(s.Solar, src)
		} else {
			s.Wind = append(s.Wind, src)
		}
	}
	return s
}

// FirstSolar returns at most n solar sources in input order.
func (s ProductionSummary) FirstSolar(n int) []Source { return firstN(s.Solar, n) }

// FirstWind returns at most n wind sources in input order.
func (s ProductionSummary) FirstWind(n int) []Source { return firstN(s.Wind, n) }

// Empty reports whether no source was classified.
func (s ProductionSummary) Empty() bool { return len(s.Solar) == 0 && len(s.Wind) == 0 }

func firstN(sources []Source, n int) []Source {
	if n > len(sources) {
		n = len(sources)
	}
	return sources[:n]
}
