package report

import (
	reconciliation "plant-reconcile/internal/reconciliation/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// checkTables maps per-check tables to the sections they hold.
var checkTables = []struct {
	name     string
	sections []string
}{
	{DataQualityAssessment, []string{reconciliation.CheckDataQuality}},
	{InputOutputConsistency, []string{reconciliation.CheckCapacity, reconciliation.CheckLoadProfile}},
	{EnergyBalanceValidation, []string{reconciliation.CheckEnergyBalance}},
	{EconomicConsistencyCheck, []string{reconciliation.CheckEconomic}},
	{TemporalConsistencyCheck, []string{reconciliation.CheckTemporal}},
	{PhysicalConstraintsValidation, []string{reconciliation.CheckPhysicalConstraints}},
}

// ReconciliationTables renders the per-check tables, the comprehensive report, the summary
// tables and, when there are any, the recommendations.
func ReconciliationTables(r reconciliation.Report) []Table {
	var tables []Table
	for _, ct := range checkTables {
		t := Table{
			Name:    ct.name,
			Tier:    TierReconciliation,
			Columns: []string{"Section", "Metric", "Value", "Status"},
			Numeric: []string{"Value"},
		}
		for _, name := range ct.sections {
			section, ok := r.Results.Section(name)
			if !ok {
				continue
			}
			for _, row := range reconciliation.FlattenSection(section) {
				t.Rows = append(t.Rows, []string{row.Section, row.Metric, row.Value.String(), row.Status})
			}
		}
		tables = append(tables, t)
	}

	comprehensive := Table{
		Name:    ComprehensiveReport,
		Tier:    TierReconciliation,
		Columns: []string{"Check_Type", "Metric", "Value", "Status"},
		Numeric: []string{"Value"},
	}
	for _, row := range r.Rows {
		comprehensive.Rows = append(comprehensive.Rows, []string{row.CheckType, row.Metric, row.Value.String(), row.Status})
	}
	tables = append(tables, comprehensive, checkOverview(r.Overview), summaryStatistics(r.Summary), overview(r.Overview))

	if len(r.Recommendations) > 0 {
		rec := Table{Name: ReconciliationRecommendations, Tier: TierReconciliation, Columns: []string{"Recommendations"}}
		for _, line := range r.Recommendations {
			rec.Rows = append(rec.Rows, []string{line})
		}
		tables = append(tables, rec)
	}
	return tables
}

func summaryStatistics(s reconciliation.Summary) Table {
	columns := []string{"Total_Checks", "Valid_Checks", "Missing_Checks", "Data_Quality_Score"}
	return Table{
		Name:    ReconciliationSummaryStatistics,
		Tier:    TierReconciliation,
		Columns: columns,
		Rows:    [][]string{{formatInt(s.Total), formatInt(s.Valid), formatInt(s.Missing), formatFloat(s.Score)}},
		Numeric: columns,
	}
}

func overview(o reconciliation.Overview) Table {
	columns := []string{
		"Total_Load_Profiles",
		"Total_Production_Sources",
		"Total_System_Components",
		"Total_Technology_Costs",
		"Total_Energy_Market_Parameters",
		"Max_Electricity_Demand_kW",
		"Max_Heat_Demand_kW",
		"Max_Hydrogen_Demand_kg_h",
		"Total_System_Capacity_kW",
		"Total_Capital_Cost",
	}
	return Table{
		Name:    ReconciliationSummary,
		Tier:    TierReconciliation,
		Columns: columns,
		Numeric: columns,
		Rows: [][]string{{
			formatInt(o.LoadProfiles),
			formatInt(o.ProductionSources),
			formatInt(o.SystemComponents),
			formatInt(o.TechnologyCosts),
			formatInt(o.MarketParameters),
			formatFloat(o.MaxElectricityDemand),
			formatFloat(o.MaxHeatDemand),
			formatFloat(o.MaxHydrogenDemand),
			formatFloat(o.TotalSystemCapacity),
			formatFloat(o.TotalCapitalCost),
		}},
	}
}

// checkOverview is the wide per-check table: one row per check type, cells outside a row's
// own columns left empty.
func checkOverview(o reconciliation.Overview) Table {
	columns := []string{
		"Check_Type",
		"Load_Profiles",
		"Production_Sources",
		"System_Components",
		"Technology_Costs",
		"Energy_Market_Parameters",
		"Total_System_Capacity_kW",
		"Renewable_Capacity_kW",
		"Storage_Capacity_kWh",
		"Conversion_Capacity_kW",
		"Max_Electricity_Demand_kW",
		"Max_Heat_Demand_kW",
		"Max_Hydrogen_Demand_kg_h",
		"Total_Annual_Electricity_MWh",
		"Total_Capital_Cost",
		"Total_OM_Cost",
		"Average_Electricity_Price",
		"Average_Hydrogen_Price",
	}
	row := func(checkType string, from int, cells ...string) []string {
		out := make([]string, len(columns))
		out[0] = checkType
		copy(out[from:], cells)
		return out
	}
	return Table{
		Name:    ReconciliationReport,
		Tier:    TierReconciliation,
		Columns: columns,
		Numeric: columns[1:],
		Rows: [][]string{
			row("Data_Completeness", 1,
				formatInt(o.LoadProfiles),
				formatInt(o.ProductionSources),
				formatInt(o.SystemComponents),
				formatInt(o.TechnologyCosts),
				formatInt(o.MarketParameters),
			),
			row("Capacity_Consistency", 6,
				formatFloat(o.TotalSystemCapacity),
				formatFloat(o.TotalSystemCapacity),
				"0",
				"0",
			),
			row("Load_Profile_Consistency", 10,
				formatFloat(o.MaxElectricityDemand),
				formatFloat(o.MaxHeatDemand),
				formatFloat(o.MaxHydrogenDemand),
				formatFloat(o.MaxElectricityDemand*timeseries.HoursPerYear/1000),
			),
			row("Economic_Consistency", 14,
				formatFloat(o.TotalCapitalCost),
				formatFloat(o.TotalOMCost),
				formatFloat(o.ElectricityPrice),
				formatFloat(o.HydrogenPrice),
			),
		},
	}
}
