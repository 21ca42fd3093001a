package aggregation

import (
	"github.com/shopspring/decimal"

	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// PerformanceSeries returns the system performance columns: carrier totals for carriers that
// appear in any profile, then the raw signal of the first solar and first wind source.
func PerformanceSeries(loads LoadSummary, prod ProductionSummary) []timeseries.Series {
	var out []timeseries.Series
	names := map[Carrier]string{
		Electricity: "electricity_demand_kW",
		Heat:        "heat_demand_kW",
		Hydrogen:    "hydrogen_demand_kg_h",
	}
	for _, c := range Carriers {
		if loads.HasCarrier(c) {
			out = append(out, timeseries.Series{Name: names[c], Values: loads.Totals[c]})
		}
	}
	if solar := prod.FirstSolar(1); len(solar) == 1 {
		out = append(out, timeseries.Series{Name: "solar_production_A_m2", Values: solar[0].Aligned})
	}
	if wind := prod.FirstWind(1); len(wind) == 1 {
		out = append(out, timeseries.Series{Name: "wind_production_kW", Values: wind[0].Aligned})
	}
	return out
}

// BalanceSeries returns the electricity balance columns. It is empty unless both loads and
// production are present; net, surplus and deficit need both demand and a solar source.
func BalanceSeries(loads LoadSummary, prod ProductionSummary) []timeseries.Series {
	if len(loads.Profiles) == 0 || prod.Empty() {
		return nil
	}
	var (
		out            []timeseries.Series
		demand, supply []float64
	)
	if loads.HasCarrier(Electricity) {
		demand = loads.Totals[Electricity]
		out = append(out, timeseries.Series{Name: "electricity_demand_kW", Values: demand})
	}
	if solar := prod.FirstSolar(1); len(solar) == 1 {
		supply = timeseries.Scale(solar[0].Aligned, SolarPowerFactor)
		out = append(out, timeseries.Series{Name: "solar_power_kW", Values: supply})
	}
	if demand == nil || supply == nil {
		return out
	}
	net := timeseries.Add(supply, timeseries.Scale(demand, -1))
	surplus := make([]float64, len(net))
	deficit := make([]float64, len(net))
	for i, v := range net {
		if v > 0 {
			surplus[i] = v
		} else if v < 0 {
			deficit[i] = -v
		}
	}
	return append(out,
		timeseries.Series{Name: "net_electricity_kW", Values: net},
		timeseries.Series{Name: "electricity_surplus_kW", Values: surplus},
		timeseries.Series{Name: "electricity_deficit_kW", Values: deficit},
	)
}

// ComponentCost is one row of the component analysis.
type ComponentCost struct {
	Component   ComponentSummary
	CostPerUnit float64
	TotalCost   decimal.Decimal
}

// ComponentAnalysis prices every component as capacity times the unit cost of the
// technology with the same name.
func ComponentAnalysis(cfg ConfigurationSummary, costs plant.Attributes) []ComponentCost {
	out := make([]ComponentCost, 0, len(cfg.Components))
	for _, c := range cfg.Components {
		unit, _ := plant.UnitCost(costs, c.Name)
		out = append(out, ComponentCost{
			Component:   c,
			CostPerUnit: unit,
			TotalCost:   decimalOf(c.Capacity).Mul(decimalOf(unit)),
		})
	}
	return out
}
