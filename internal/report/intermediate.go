package report

import (
	"plant-reconcile/internal/aggregation"
	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// IntermediateTables renders the aggregator summaries. Tables of absent domains are omitted;
// the load tables are always present.
func IntermediateTables(s aggregation.Summary) []Table {
	tables := []Table{loadProfilesSummary(s), loadStatistics(s.Loads)}
	if !s.Production.Empty() {
		summary, stats := productionTables(s)
		tables = append(tables, summary, stats)
	}
	if s.Configuration.TotalEntries > 0 {
		tables = append(tables, systemConfiguration(s.Configuration))
	}
	if s.Weather != nil {
		tables = append(tables, weatherSummary(s), weatherStatistics(*s.Weather))
	}
	return tables
}

// seriesTable lays out aligned series against the time base, one row per timestamp.
func seriesTable(name string, tier Tier, base timeseries.TimeBase, series []timeseries.Series) Table {
	t := Table{Name: name, Tier: tier, Columns: []string{"timestamp"}}
	for _, s := range series {
		t.Columns = append(t.Columns, s.Name)
	}
	t.Rows = make([][]string, base.Len())
	for i := range t.Rows {
		row := make([]string, 0, len(t.Columns))
		row = append(row, formatTime(base.At(i)))
		for _, s := range series {
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			row = append(row, formatFloat(v))
		}
		t.Rows[i] = row
	}
	return t
}

func loadProfilesSummary(s aggregation.Summary) Table {
	var series []timeseries.Series
	for _, p := range s.Loads.Profiles {
		for _, c := range aggregation.Carriers {
			if p.Present[c] {
				series = append(series, timeseries.Series{Name: p.Name + "_" + c.Suffix(), Values: p.Aligned[c]})
			}
		}
	}
	for _, c := range aggregation.Carriers {
		series = append(series, timeseries.Series{Name: "total_" + c.Suffix(), Values: s.Loads.Totals[c]})
	}
	return seriesTable(LoadProfilesSummary, TierIntermediate, s.Base, series)
}

func loadStatistics(l aggregation.LoadSummary) Table {
	e, h, y := l.Stats[aggregation.Electricity], l.Stats[aggregation.Heat], l.Stats[aggregation.Hydrogen]
	return Table{
		Name:    LoadStatistics,
		Tier:    TierIntermediate,
		Columns: []string{"Metric", "Electricity (kW)", "Heat (kW)", "Hydrogen (kg/h)"},
		Rows: [][]string{
			{"Max Demand", formatFloat(e.Max), formatFloat(h.Max), formatFloat(y.Max)},
			{"Min Demand", formatFloat(e.Min), formatFloat(h.Min), formatFloat(y.Min)},
			{"Average Demand", formatFloat(e.Mean), formatFloat(h.Mean), formatFloat(y.Mean)},
			{"Total Energy", formatFloat(e.Sum), formatFloat(h.Sum), formatFloat(y.Sum)},
		},
	}
}

func productionTables(s aggregation.Summary) (Table, Table) {
	sources := append(
		append([]aggregation.Source{}, s.Production.FirstSolar(aggregation.SummarySourceLimit)...),
		s.Production.FirstWind(aggregation.SummarySourceLimit)...,
	)
	series := make([]timeseries.Series, 0, len(sources))
	stats := Table{
		Name:    ProductionStatistics,
		Tier:    TierIntermediate,
		Columns: []string{"Source", "Type", "Max", "Min", "Average", "Total"},
	}
	for _, src := range sources {
		series = append(series, timeseries.Series{Name: src.SummaryColumn(), Values: src.Aligned})
		kind := "Wind (kW)"
		if src.Kind == plant.SourceSolar {
			kind = "Solar (A/m²)"
		}
		stats.Rows = append(stats.Rows, []string{
			src.SummaryColumn(),
			kind,
			formatFloat(src.Stats.Max),
			formatFloat(src.Stats.Min),
			formatFloat(src.Stats.Mean),
			formatFloat(src.Stats.Sum),
		})
	}
	return seriesTable(ProductionDataSummary, TierIntermediate, s.Base, series), stats
}

func systemConfiguration(cfg aggregation.ConfigurationSummary) Table {
	t := Table{
		Name:    SystemConfiguration,
		Tier:    TierIntermediate,
		Columns: []string{"Component", "Capacity_Value", "Capacity_Unit", "Priority", "Owned", "Model", "Strategy"},
	}
	for _, c := range cfg.Components {
		capacity := ""
		if c.HasCapacity {
			capacity = formatFloat(c.Capacity)
		}
		t.Rows = append(t.Rows, []string{c.Name, capacity, c.Alias, c.Priority, c.Owned, c.Model, c.Strategy})
	}
	return t
}

func weatherSummary(s aggregation.Summary) Table {
	series := make([]timeseries.Series, 0, len(s.Weather.Series))
	for _, w := range s.Weather.Series {
		series = append(series, timeseries.Series{Name: w.Variable.Output, Values: w.Values})
	}
	return seriesTable(WeatherDataSummary, TierIntermediate, s.Base, series)
}

func weatherStatistics(w aggregation.WeatherSummary) Table {
	t := Table{Name: WeatherStatistics, Tier: TierIntermediate, Columns: []string{"Metric"}}
	rows := [][]string{{"Max"}, {"Min"}, {"Average"}, {"Standard Deviation"}}
	for _, s := range w.Series {
		t.Columns = append(t.Columns, s.Variable.Output)
		rows[0] = append(rows[0], formatFloat(s.Stats.Max))
		rows[1] = append(rows[1], formatFloat(s.Stats.Min))
		rows[2] = append(rows[2], formatFloat(s.Stats.Mean))
		rows[3] = append(rows[3], formatFloat(s.Stats.StdDev))
	}
	t.Rows = rows
	return t
}
