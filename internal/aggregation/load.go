package aggregation

import (
	"math"
	"strings"
	"time"

	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// Carrier is an energy form tracked by the load aggregator.
type Carrier int

const (
	Electricity Carrier = iota
	Heat
	Hydrogen
	carrierCount
)

// Carriers lists the carriers in tag-matching order.
var Carriers = []Carrier{Electricity, Heat, Hydrogen}

// Tag is the substring that assigns a demand column to the carrier.
func (c Carrier) Tag() string {
	switch c {
	case Electricity:
		return "electricity"
	case Heat:
		return "heat"
	case Hydrogen:
		return "hydrogen"
	default:
		return ""
	}
}

// Suffix is the unit suffix used in summary column names.
func (c Carrier) Suffix() string {
	switch c {
	case Electricity:
		return "electricity_kW"
	case Heat:
		return "heat_kW"
	case Hydrogen:
		return "hydrogen_kg_h"
	default:
		return ""
	}
}

// CarrierOf returns the carrier of a demand column: the first carrier whose tag the
// lower-cased name contains.
func CarrierOf(column string) (Carrier, bool) {
	lower := strings.ToLower(column)
	for _, c := range Carriers {
		if strings.Contains(lower, c.Tag()) {
			return c, true
		}
	}
	return 0, false
}

// ProfileLoad is one demand profile split by carrier.
type ProfileLoad struct {
	Name       string
	Timestamps []time.Time
	Present    [carrierCount]bool
	// Raw holds the per-row carrier sums in file length; a row where every tagged
	// column is missing stays NaN.
	Raw [carrierCount][]float64
	// Aligned holds Raw fitted to the canonical base.
	Aligned [carrierCount][]float64
}

// LoadSummary is the load aggregator output.
type LoadSummary struct {
	Profiles []ProfileLoad
	Totals   [carrierCount][]float64
	Stats    [carrierCount]timeseries.Stats
}

// HasCarrier reports whether any profile carries c.
func (s LoadSummary) HasCarrier(c Carrier) bool {
	for _, p := range s.Profiles {
		if p.Present[c] {
			return true
		}
	}
	return false
}

// AggregateLoads splits every load table by carrier, aligns it to base and sums carrier
// totals across profiles.
func AggregateLoads(tables []plant.Table, base timeseries.TimeBase) LoadSummary {
	n := base.Len()
	var s LoadSummary
	for _, c := range Carriers {
		s.Totals[c] = make([]float64, n)
	}
	for _, table := range tables {
		p := ProfileLoad{Name: table.Name, Timestamps: table.Timestamps}
		rows := table.Rows()
		for _, col := range table.Columns {
			c, ok := CarrierOf(col.Name)
			if !ok {
				continue
			}
			if !p.Present[c] {
				p.Present[c] = true
				p.Raw[c] = nanSeries(rows)
			}
			accumulate(p.Raw[c], col.Values)
		}
		for _, c := range Carriers {
			p.Aligned[c] = timeseries.Align(p.Raw[c], n)
			s.Totals[c] = timeseries.Add(s.Totals[c], p.Aligned[c])
		}
		s.Profiles = append(s.Profiles, p)
	}
	for _, c := range Carriers {
		s.Stats[c] = timeseries.Describe(s.Totals[c])
	}
	return s
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// accumulate adds values into dst, treating NaN as missing.
func accumulate(dst, values []float64) {
	for i := range dst {
		if i >= len(values) || math.IsNaN(values[i]) {
			continue
		}
		if math.IsNaN(dst[i]) {
			dst[i] = 0
		}
		dst[i] += values[i]
	}
}
