package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"plant-reconcile/internal/aggregation"
	plant "plant-reconcile/internal/plant/domain"
	"plant-reconcile/internal/reconciliation/application"
	reconciliation "plant-reconcile/internal/reconciliation/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

func fixture(t *testing.T) (plant.Dataset, aggregation.Summary, reconciliation.Report) {
	t.Helper()
	base, err := timeseries.NewTimeBase(timeseries.DefaultStart, 3, timeseries.CadenceHourly)
	require.NoError(t, err)
	decode := func(doc string) plant.Attributes {
		a, err := plant.DecodeAttributes([]byte(doc))
		require.NoError(t, err)
		return a
	}
	load, err := plant.NewTable("site", base.Timestamps(), []plant.Column{
		{Name: "electricity_demand", Values: []float64{10, 20, 30}},
		{Name: "heat_demand", Values: []float64{1, 1, 0}},
	})
	require.NoError(t, err)
	solar, err := plant.NewTable("SS_1", base.Timestamps(), []plant.Column{{Name: "solar_power", Values: []float64{100, 200, 300}}})
	require.NoError(t, err)

	ds := plant.Dataset{
		Loads:      []plant.Table{load},
		Production: []plant.Table{solar},
		Plant:      decode(`{"PV": {"peakP": 50, "priority": 1}, "battery": {"capacity": 60}}`),
		Costs:      decode(`{"PV": {"cost per unit": 1000, "OeM": 10, "replacement": {"rate": 80, "years": 20}}}`),
		Market:     decode(`{"electricity": {"purchase": 0.3, "sale": 0.1}, "green_hydrogen_incentives": {"value": 2}}`),
	}
	summary := aggregation.Aggregate(ds, base)
	rep := application.NewEngine(zerolog.Nop(), reconciliation.DefaultThresholds()).
		Run(application.Input{Dataset: ds, Summary: summary})
	return ds, summary, rep
}

func allTables(t *testing.T) []Table {
	ds, summary, rep := fixture(t)
	tables := IntermediateTables(summary)
	tables = append(tables, FinalTables(ds, summary)...)
	return append(tables, ReconciliationTables(rep)...)
}

func find(t *testing.T, tables []Table, name string) Table {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name == name {
			return tbl
		}
	}
	require.Failf(t, "table not found", name)
	return Table{}
}

func TestIntermediateTables(t *testing.T) {
	tables := allTables(t)

	load := find(t, tables, LoadProfilesSummary)
	assert.Equal(t, []string{"timestamp", "site_electricity_kW", "site_heat_kW", "total_electricity_kW", "total_heat_kW", "total_hydrogen_kg_h"}, load.Columns)
	require.Len(t, load.Rows, 3)
	assert.Equal(t, []string{"2023-01-01 02:00:00", "30", "0", "30", "0", "0"}, load.Rows[2])

	stats := find(t, tables, LoadStatistics)
	assert.Equal(t, []string{"Max Demand", "30", "1", "0"}, stats.Rows[0])
	assert.Equal(t, []string{"Total Energy", "60", "2", "0"}, stats.Rows[3])

	prod := find(t, tables, ProductionStatistics)
	assert.Equal(t, []string{"SS_1_solar_power_A_m2", "Solar (A/m²)", "300", "100", "200", "600"}, prod.Rows[0])

	cfg := find(t, tables, SystemConfiguration)
	assert.Equal(t, []string{"PV", "50", "peakP", "1", "N/A", "N/A", "N/A"}, cfg.Rows[0])

	for _, tbl := range tables {
		assert.NotEqual(t, WeatherDataSummary, tbl.Name)
	}
}

func TestFinalTables(t *testing.T) {
	tables := allTables(t)

	costs := find(t, tables, TechnologyCostsSummary)
	assert.Equal(t, []string{"PV", "1000", "10", "80", "20"}, costs.Rows[0])

	market := find(t, tables, EnergyMarketSummary)
	assert.Equal(t, []string{"electricity", "0.3", "0.1", "0"}, market.Rows[0])
	assert.Equal(t, []string{"green_hydrogen_incentives", "0", "0", "2"}, market.Rows[1])

	perf := find(t, tables, SystemPerformanceSummary)
	assert.Equal(t, []string{"timestamp", "electricity_demand_kW", "heat_demand_kW", "solar_production_A_m2"}, perf.Columns)

	balance := find(t, tables, EnergyBalanceSummary)
	assert.Equal(t, []string{"timestamp", "electricity_demand_kW", "solar_power_kW", "net_electricity_kW", "electricity_surplus_kW", "electricity_deficit_kW"}, balance.Columns)
	assert.Equal(t, []string{"2023-01-01 00:00:00", "10", "10", "0", "0", "0"}, balance.Rows[0])

	components := find(t, tables, ComponentAnalysisSummary)
	assert.Equal(t, []string{"PV", "50", "1000", "50000", "1", "N/A", "N/A"}, components.Rows[0])
	assert.Equal(t, []string{"battery", "60", "0", "0", "N/A", "N/A", "N/A"}, components.Rows[1])
}

func TestReconciliationTables(t *testing.T) {
	tables := allTables(t)

	io := find(t, tables, InputOutputConsistency)
	assert.Equal(t, []string{"Section", "Metric", "Value", "Status"}, io.Columns)
	assert.Equal(t, []string{reconciliation.CheckCapacity, "Total_System_Capacity_kW", "50", "Valid"}, io.Rows[0])

	comprehensive := find(t, tables, ComprehensiveReport)
	assert.Equal(t, []string{"Check_Type", "Metric", "Value", "Status"}, comprehensive.Columns)
	assert.Equal(t, []string{reconciliation.CheckDataQuality, "load_data_total_files", "1", "Valid"}, comprehensive.Rows[0])

	stats := find(t, tables, ReconciliationSummaryStatistics)
	require.Len(t, stats.Rows, 1)
	assert.Equal(t, "100", stats.Rows[0][3])

	summary := find(t, tables, ReconciliationSummary)
	assert.Equal(t, "1000", summary.Rows[0][9])
	assert.Equal(t, "110", summary.Rows[0][8])
}

func TestReconciliationReportIsWidePerCheck(t *testing.T) {
	wide := find(t, allTables(t), ReconciliationReport)
	require.Len(t, wide.Columns, 18)
	assert.Equal(t, wide.Columns[1:], wide.Numeric)
	require.Len(t, wide.Rows, 4)

	cell := func(row int, column string) string {
		for i, c := range wide.Columns {
			if c == column {
				return wide.Rows[row][i]
			}
		}
		t.Fatalf("no column %s", column)
		return ""
	}
	assert.Equal(t, "Data_Completeness", cell(0, "Check_Type"))
	assert.Equal(t, "1", cell(0, "Load_Profiles"))
	assert.Equal(t, "2", cell(0, "System_Components"))
	assert.Equal(t, "2", cell(0, "Energy_Market_Parameters"))
	assert.Empty(t, cell(0, "Total_System_Capacity_kW"))

	assert.Equal(t, "Capacity_Consistency", cell(1, "Check_Type"))
	assert.Equal(t, "110", cell(1, "Total_System_Capacity_kW"))
	assert.Equal(t, "110", cell(1, "Renewable_Capacity_kW"))
	assert.Equal(t, "0", cell(1, "Storage_Capacity_kWh"))
	assert.Empty(t, cell(1, "Load_Profiles"))

	assert.Equal(t, "30", cell(2, "Max_Electricity_Demand_kW"))
	assert.Equal(t, "1", cell(2, "Max_Heat_Demand_kW"))
	assert.Equal(t, "262.8", cell(2, "Total_Annual_Electricity_MWh"))

	assert.Equal(t, "Economic_Consistency", cell(3, "Check_Type"))
	assert.Equal(t, "1000", cell(3, "Total_Capital_Cost"))
	assert.Equal(t, "10", cell(3, "Total_OM_Cost"))
	assert.Equal(t, "0.3", cell(3, "Average_Electricity_Price"))
	assert.Equal(t, "0", cell(3, "Average_Hydrogen_Price"))
	assert.Empty(t, cell(3, "Max_Heat_Demand_kW"))
}

func TestWriterIsIdempotentAndRemovesStaleFiles(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	tables := allTables(t)

	paths, err := w.Write(tables)
	require.NoError(t, err)
	require.Len(t, paths, len(tables))
	first := make(map[string][]byte)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		first[p] = data
	}

	stale := filepath.Join(w.Dir(TierIntermediate), WeatherStatistics+".csv")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	unrelated := filepath.Join(w.Dir(TierIntermediate), "notes.csv")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0o644))

	paths, err = w.Write(allTables(t))
	require.NoError(t, err)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first[p], data), p)
	}
	assert.NoFileExists(t, stale)
	assert.FileExists(t, unrelated)
}

func TestWriterRemovesRecommendationsWhenNone(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	rec := Table{Name: ReconciliationRecommendations, Tier: TierReconciliation, Columns: []string{"Recommendations"}, Rows: [][]string{{"x"}}}

	_, err := w.Write([]Table{rec})
	require.NoError(t, err)
	path := filepath.Join(w.Dir(TierReconciliation), ReconciliationRecommendations+".csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Recommendations\nx\n", string(data))

	_, err = w.Write(nil)
	require.NoError(t, err)
	assert.NoFileExists(t, path)
	for _, tier := range Tiers {
		assert.DirExists(t, w.Dir(tier))
	}
}

func TestBuildWorkbook(t *testing.T) {
	_, _, rep := fixture(t)
	tables := ReconciliationTables(rep)

	data, err := BuildWorkbook(tables)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	sheets := f.GetSheetList()
	require.Len(t, sheets, len(tables))
	assert.Equal(t, DataQualityAssessment, sheets[0])
	assert.Equal(t, "comprehensive_reconciliation_re", sheets[6])

	header, err := f.GetCellValue(DataQualityAssessment, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Metric", header)
}

func TestWorkbookCellsTypedByColumn(t *testing.T) {
	table := Table{
		Columns: []string{"Section", "Metric", "Value", "Status"},
		Numeric: []string{"Value"},
	}
	numeric := table.numericColumns()

	assert.Equal(t,
		[]interface{}{"temporal_consistency", "07", 12.5, "Valid"},
		rowCells([]string{"temporal_consistency", "07", "12.5", "Valid"}, numeric))
	assert.Equal(t,
		[]interface{}{"NaN", "inf", "NaN", "Missing"},
		rowCells([]string{"NaN", "inf", "NaN", "Missing"}, numeric))
	assert.Equal(t,
		[]interface{}{"x", "y", "[19, 20, 18, 21]", "Valid"},
		rowCells([]string{"x", "y", "[19, 20, 18, 21]", "Valid"}, numeric))
	assert.Equal(t, []interface{}{"07", "1e3"}, rowCells([]string{"07", "1e3"}, nil))
}

func TestBuildPDFIsStable(t *testing.T) {
	_, _, rep := fixture(t)

	a, err := BuildPDF(rep)
	require.NoError(t, err)
	b, err := BuildPDF(rep)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(a, []byte("%PDF")))
	assert.Equal(t, a, b)
}

func TestWriteTiersKeepsOtherTiers(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)
	final := Table{Name: TechnologyCostsSummary, Tier: TierFinal, Columns: []string{"technology"}, Rows: [][]string{{"pv"}}}
	_, err := w.Write([]Table{final})
	require.NoError(t, err)

	_, err = w.WriteTiers(nil, TierReconciliation)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(w.Dir(TierFinal), TechnologyCostsSummary+".csv"))

	require.NoError(t, w.Remove(TierFinal, TechnologyCostsSummary+".csv"))
	require.NoError(t, w.Remove(TierFinal, TechnologyCostsSummary+".csv"))
	assert.NoFileExists(t, filepath.Join(w.Dir(TierFinal), TechnologyCostsSummary+".csv"))
}
