package application

import (
	"time"

	"plant-reconcile/internal/aggregation"
	plant "plant-reconcile/internal/plant/domain"
	reconciliation "plant-reconcile/internal/reconciliation/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

func checkDataQuality(in Input) []reconciliation.Node {
	ds, s := in.Dataset, in.Summary

	var loads plant.CellCounts
	for _, t := range ds.Loads {
		c := t.Counts()
		loads.Present += c.Present
		loads.Missing += c.Missing
		loads.Negative += c.Negative
		loads.Zero += c.Zero
	}
	var prodPresent int
	for _, t := range ds.Production {
		prodPresent += t.Counts().Present
	}
	solar := len(ds.SourcesOf(plant.SourceSolar))
	wind := len(ds.SourcesOf(plant.SourceWind))

	return []reconciliation.Node{
		reconciliation.Group("load_data",
			count("total_files", len(ds.Loads)),
			count("missing_values", loads.Missing),
			count("negative_values", loads.Negative),
			count("zero_values", loads.Zero),
			count("data_completeness", loads.Present),
		),
		reconciliation.Group("production_data",
			count("total_sources", len(ds.Production)),
			count("solar_sources", solar),
			count("wind_sources", wind),
			count("data_completeness", prodPresent),
		),
		reconciliation.Group("configuration",
			count("total_components", s.Configuration.TotalEntries),
			count("missing_capacities", s.Configuration.MissingCapacities),
			count("invalid_priorities", s.Configuration.InvalidPriorities),
		),
		reconciliation.Group("economic_data",
			count("total_technologies", ds.Costs.Len()),
			count("total_market_entries", s.Economics.TotalMarketEntries),
			count("missing_costs", s.Economics.MissingCosts),
			count("invalid_prices", s.Economics.InvalidPrices),
		),
	}
}

// checkCapacity reports the renewable total under both capacity fields. Storage and
// conversion are fixed zero placeholders.
func checkCapacity(in Input) []reconciliation.Node {
	renewable := in.Summary.Configuration.Renewable
	return []reconciliation.Node{
		num("Total_System_Capacity_kW", renewable),
		num("Renewable_Capacity_kW", renewable),
		num("Storage_Capacity_kWh", 0),
		num("Conversion_Capacity_kW", 0),
	}
}

func checkLoadProfile(in Input) []reconciliation.Node {
	s := in.Summary
	elec := s.Loads.Stats[aggregation.Electricity]
	periods := float64(s.Base.Len())
	variability := 0.0
	if elec.Mean > 0 {
		variability = elec.StdDev / elec.Mean
	}
	return []reconciliation.Node{
		num("Max_Electricity_Demand_kW", elec.Max),
		num("Max_Heat_Demand_kW", s.Loads.Stats[aggregation.Heat].Max),
		num("Max_Hydrogen_Demand_kg_h", s.Loads.Stats[aggregation.Hydrogen].Max),
		num("Total_Annual_Electricity_MWh", elec.Max*periods/1000),
		num("demand_variability", variability),
		reconciliation.Group("production_totals",
			num("total_solar_production", sumSources(s.Production.FirstSolar(aggregation.BalanceSourceLimit), 1)),
			num("total_wind_production", sumSources(s.Production.FirstWind(aggregation.BalanceSourceLimit), 1)),
		),
	}
}

func checkEnergyBalance(in Input) []reconciliation.Node {
	s := in.Summary
	electricity := s.Loads.Stats[aggregation.Electricity].Sum / 1000
	heat := s.Loads.Stats[aggregation.Heat].Sum / 1000
	hydrogen := s.Loads.Stats[aggregation.Hydrogen].Sum * HydrogenKWhPerKg / 1000
	solar := sumSources(s.Production.FirstSolar(aggregation.BalanceSourceLimit), aggregation.SolarPowerFactor) / 1000
	wind := sumSources(s.Production.FirstWind(aggregation.BalanceSourceLimit), 1) / 1000

	demand := electricity + heat + hydrogen
	production := solar + wind
	sufficiency := 0.0
	if demand > 0 {
		sufficiency = production / demand * 100
	}
	return []reconciliation.Node{
		reconciliation.Group("total_demand",
			num("electricity_MWh", electricity),
			num("heat_MWh", heat),
			num("hydrogen_MWh", hydrogen),
		),
		reconciliation.Group("total_production",
			num("solar_MWh", solar),
			num("wind_MWh", wind),
		),
		reconciliation.Group("balance_metrics",
			num("total_demand_MWh", demand),
			num("total_production_MWh", production),
			num("net_energy_balance_MWh", production-demand),
			num("energy_sufficiency_percent", sufficiency),
		),
	}
}

func checkEconomic(in Input) []reconciliation.Node {
	econ := in.Summary.Economics
	capital := econ.CapitalCost()

	distribution := make([]reconciliation.Node, 0, len(econ.Costs))
	for _, c := range econ.Costs {
		v := reconciliation.Null()
		if c.HasUnitCost {
			v = reconciliation.Number(c.CostPerUnit)
		}
		distribution = append(distribution, reconciliation.Leaf(c.Technology, v))
	}

	p, inc := econ.Prices, econ.Incentives
	return []reconciliation.Node{
		reconciliation.Group("cost_analysis",
			num("total_capital_cost", capital),
			num("total_om_cost", econ.OMCost()),
			num("average_cost_per_kw", timeseries.SafeDivide(capital, in.Summary.Configuration.TotalCapacity)),
		),
		reconciliation.Group("cost_distribution", distribution...),
		reconciliation.Group("price_analysis",
			num("electricity_purchase_price", p.ElectricityPurchase),
			num("electricity_sale_price", p.ElectricitySale),
			num("hydrogen_purchase_price", p.HydrogenPurchase),
			num("hydrogen_sale_price", p.HydrogenSale),
			num("price_spread_electricity", p.ElectricitySpread),
			num("price_spread_hydrogen", p.HydrogenSpread),
		),
		reconciliation.Group("incentive_analysis",
			num("green_hydrogen_incentive", inc.GreenHydrogen),
			num("ammonia_incentive", inc.Ammonia),
			num("rec_incentive", inc.REC),
			num("total_incentives", inc.Total),
		),
	}
}

func checkTemporal(in Input) []reconciliation.Node {
	var nodes []reconciliation.Node
	for _, p := range in.Summary.Loads.Profiles {
		if !p.Present[aggregation.Electricity] {
			continue
		}
		nodes = append(nodes, temporalNodes("load", p.Name, p.Timestamps, p.Raw[aggregation.Electricity])...)
	}
	if solar := in.Summary.Production.FirstSolar(1); len(solar) == 1 {
		nodes = append(nodes, temporalNodes("solar", "", solar[0].Timestamps, solar[0].Raw)...)
	}
	if wind := in.Summary.Production.FirstWind(1); len(wind) == 1 {
		nodes = append(nodes, temporalNodes("wind", "", wind[0].Timestamps, wind[0].Raw)...)
	}
	return nodes
}

// temporalNodes returns the hour-of-day pattern of a series and its peak and off-peak
// hours. Without timestamps the pattern is empty and the hour lists are null.
func temporalNodes(prefix, name string, timestamps []time.Time, values []float64) []reconciliation.Node {
	suffix := ""
	if name != "" {
		suffix = "_" + name
	}
	if timestamps == nil {
		return []reconciliation.Node{
			reconciliation.Group(prefix + "_daily_pattern" + suffix),
			reconciliation.Leaf(prefix+"_peak_hours"+suffix, reconciliation.Null()),
			reconciliation.Leaf(prefix+"_off_peak_hours"+suffix, reconciliation.Null()),
		}
	}
	profile := timeseries.DailyProfile(timestamps, values)
	return []reconciliation.Node{
		hourlyPattern(prefix+"_daily_pattern"+suffix, profile),
		reconciliation.Leaf(prefix+"_peak_hours"+suffix, reconciliation.Hours(timeseries.PeakHours(profile, PeakHourCount))),
		reconciliation.Leaf(prefix+"_off_peak_hours"+suffix, reconciliation.Hours(timeseries.OffPeakHours(profile, PeakHourCount))),
	}
}

func checkPhysicalConstraints(in Input) []reconciliation.Node {
	s := in.Summary
	maxElec := s.Loads.Stats[aggregation.Electricity].Max
	renewable := s.Configuration.Renewable
	margin := 0.0
	if renewable > 0 {
		margin = (renewable - maxElec) / renewable * 100
	}
	battery := s.Configuration.CapacityOf(plant.ComponentBattery)
	duration := 0.0
	if battery > 0 && maxElec > 0 {
		duration = battery / maxElec
	}
	return []reconciliation.Node{
		reconciliation.Group("capacity_constraints",
			num("max_electricity_demand", maxElec),
			num("max_heat_demand", s.Loads.Stats[aggregation.Heat].Max),
			num("max_hydrogen_demand", s.Loads.Stats[aggregation.Hydrogen].Max),
			num("total_renewable_capacity", renewable),
			num("capacity_margin", margin),
		),
		reconciliation.Group("storage_constraints",
			num("battery_capacity_kwh", battery),
			num("hydrogen_storage_kg", s.Configuration.CapacityOf(plant.ComponentHydrogenStorage)),
			num("storage_duration_hours", duration),
		),
	}
}
