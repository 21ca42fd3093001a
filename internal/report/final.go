package report

import (
	"plant-reconcile/internal/aggregation"
	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// FinalTables renders the economic, performance, balance and component tables.
func FinalTables(ds plant.Dataset, s aggregation.Summary) []Table {
	tables := []Table{technologyCosts(s.Economics), energyMarket(s.Economics)}

	performance := aggregation.PerformanceSeries(s.Loads, s.Production)
	tables = append(tables, seriesTable(SystemPerformanceSummary, TierFinal, s.Base, performance))
	if len(performance) > 0 {
		tables = append(tables, performanceStatistics(performance))
	}
	tables = append(tables, seriesTable(EnergyBalanceSummary, TierFinal, s.Base, aggregation.BalanceSeries(s.Loads, s.Production)))

	if s.Configuration.TotalEntries > 0 {
		tables = append(tables, componentAnalysis(aggregation.ComponentAnalysis(s.Configuration, ds.Costs)))
	}
	return tables
}

func technologyCosts(e aggregation.EconomicsSummary) Table {
	t := Table{
		Name:    TechnologyCostsSummary,
		Tier:    TierFinal,
		Columns: []string{"Technology", "Cost_per_Unit", "OeM_Cost", "Replacement_Rate", "Replacement_Years"},
	}
	for _, c := range e.Costs {
		t.Rows = append(t.Rows, []string{
			c.Technology,
			formatFloat(c.CostPerUnit),
			formatFloat(c.OeM),
			formatFloat(c.ReplacementRate),
			formatFloat(c.ReplacementYears),
		})
	}
	return t
}

func energyMarket(e aggregation.EconomicsSummary) Table {
	t := Table{
		Name:    EnergyMarketSummary,
		Tier:    TierFinal,
		Columns: []string{"Energy_Type", "Purchase_Price", "Sale_Price", "Incentive_Value"},
	}
	for _, m := range e.Market {
		t.Rows = append(t.Rows, []string{m.Name, formatFloat(m.Purchase), formatFloat(m.Sale), formatFloat(m.Incentive)})
	}
	return t
}

func performanceStatistics(series []timeseries.Series) Table {
	t := Table{
		Name:    PerformanceStatistics,
		Tier:    TierFinal,
		Columns: []string{"Metric", "Max", "Min", "Average", "Total", "Standard_Deviation"},
	}
	for _, s := range series {
		st := timeseries.Describe(s.Values)
		t.Rows = append(t.Rows, []string{
			s.Name,
			formatFloat(st.Max),
			formatFloat(st.Min),
			formatFloat(st.Mean),
			formatFloat(st.Sum),
			formatFloat(st.StdDev),
		})
	}
	return t
}

func componentAnalysis(rows []aggregation.ComponentCost) Table {
	t := Table{
		Name:    ComponentAnalysisSummary,
		Tier:    TierFinal,
		Columns: []string{"Component", "Capacity", "Cost_per_Unit", "Total_Cost", "Priority", "Owned", "Model"},
	}
	for _, r := range rows {
		capacity := ""
		if r.Component.HasCapacity {
			capacity = formatFloat(r.Component.Capacity)
		}
		t.Rows = append(t.Rows, []string{
			r.Component.Name,
			capacity,
			formatFloat(r.CostPerUnit),
			r.TotalCost.String(),
			r.Component.Priority,
			r.Component.Owned,
			r.Component.Model,
		})
	}
	return t
}
