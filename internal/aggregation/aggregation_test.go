package aggregation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

func hourlyBase(t *testing.T, n int) timeseries.TimeBase {
	t.Helper()
	base, err := timeseries.NewTimeBase(timeseries.DefaultStart, n, timeseries.CadenceHourly)
	require.NoError(t, err)
	return base
}

func table(t *testing.T, name string, cols ...plant.Column) plant.Table {
	t.Helper()
	tbl, err := plant.NewTable(name, nil, cols)
	require.NoError(t, err)
	return tbl
}

func mustAttrs(t *testing.T, doc string) plant.Attributes {
	t.Helper()
	attrs, err := plant.DecodeAttributes([]byte(doc))
	require.NoError(t, err)
	return attrs
}

func TestCarrierOf(t *testing.T) {
	c, ok := CarrierOf("electricity_demand")
	require.True(t, ok)
	assert.Equal(t, Electricity, c)
	c, _ = CarrierOf("Heat_Demand")
	assert.Equal(t, Heat, c)
	c, _ = CarrierOf("hydrogen_electricity_equiv")
	assert.Equal(t, Electricity, c)
	_, ok = CarrierOf("oxygen")
	assert.False(t, ok)
}

func TestAggregateLoadsSumsAndAligns(t *testing.T) {
	base := hourlyBase(t, 4)
	loads := []plant.Table{
		table(t, "site_a",
			plant.Column{Name: "electricity_demand", Values: []float64{1, 2, math.NaN()}},
			plant.Column{Name: "electricity_aux", Values: []float64{1, math.NaN(), math.NaN()}},
		),
		table(t, "site_b",
			plant.Column{Name: "electricity_demand", Values: []float64{5, 5, 5, 5, 5, 5}},
			plant.Column{Name: "hydrogen_demand", Values: []float64{1, 1, 1, 1}},
		),
	}

	s := AggregateLoads(loads, base)

	require.Len(t, s.Profiles, 2)
	assert.Equal(t, []float64{2, 2, 0, 0}, s.Profiles[0].Aligned[Electricity])
	assert.True(t, math.IsNaN(s.Profiles[0].Raw[Electricity][2]))
	assert.Equal(t, []float64{7, 7, 5, 5}, s.Totals[Electricity])
	assert.Equal(t, []float64{0, 0, 0, 0}, s.Totals[Heat])
	assert.Equal(t, 7.0, s.Stats[Electricity].Max)
	assert.Equal(t, 24.0, s.Stats[Electricity].Sum)
	assert.True(t, s.HasCarrier(Hydrogen))
	assert.False(t, s.HasCarrier(Heat))
}

func TestAggregateLoadsEmpty(t *testing.T) {
	s := AggregateLoads(nil, hourlyBase(t, 3))
	assert.Empty(t, s.Profiles)
	assert.Equal(t, []float64{0, 0, 0}, s.Totals[Electricity])
	assert.Equal(t, timeseries.Stats{Count: 3}, s.Stats[Electricity])
}

func TestAggregateProduction(t *testing.T) {
	base := hourlyBase(t, 3)
	tables := []plant.Table{
		table(t, "WS_1", plant.Column{Name: "wind_power", Values: []float64{3, 3, 3, 3}}),
		table(t, "SS_1", plant.Column{Name: "ghi", Values: []float64{9}}, plant.Column{Name: "solar_power", Values: []float64{10}}),
		table(t, "hydro", plant.Column{Name: "power", Values: []float64{1}}),
		table(t, "SS_2", plant.Column{Name: "irradiance", Values: []float64{4, 4}}),
	}

	s := AggregateProduction(tables, base)

	require.Len(t, s.Solar, 2)
	require.Len(t, s.Wind, 1)
	assert.Equal(t, "solar_power", s.Solar[0].Column)
	assert.Equal(t, []float64{10, 0, 0}, s.Solar[0].Aligned)
	assert.Equal(t, "irradiance", s.Solar[1].Column)
	assert.Equal(t, 9.0, s.Wind[0].Stats.Sum)
	assert.Equal(t, "SS_1_solar_power_A_m2", s.Solar[0].SummaryColumn())
	assert.Equal(t, "WS_1_wind_power_kW", s.Wind[0].SummaryColumn())
	assert.Len(t, s.FirstSolar(BalanceSourceLimit), 2)
	assert.Len(t, s.FirstWind(SummarySourceLimit), 1)
}

func TestAggregateWeather(t *testing.T) {
	base := hourlyBase(t, 2)
	var cols []plant.Column
	for i, v := range WeatherVariables {
		cols = append(cols, plant.Column{Name: v.Column, Values: []float64{float64(i), float64(i + 2)}})
	}
	s, err := AggregateWeather(table(t, "weather", cols...), base)
	require.NoError(t, err)
	require.Len(t, s.Series, 6)
	assert.Equal(t, "temperature_C", s.Series[0].Variable.Output)
	assert.InDelta(t, math.Sqrt2, s.Series[0].Stats.StdDev, 1e-9)

	_, err = AggregateWeather(table(t, "weather", cols[:2]...), base)
	assert.ErrorIs(t, err, ErrWeatherColumns)
}

func TestAggregateConfiguration(t *testing.T) {
	ds := plant.Dataset{Plant: mustAttrs(t, `{
		"wind": {"Npower": 300, "priority": 1, "owned": true},
		"PV": {"peakP": 200, "priority": 2.5},
		"battery": {"capacity": 1000, "model": "li-ion", "strategy": "peak shaving"},
		"electrolyzer": {"max power": 150},
		"heat_pump": {"size": 10},
		"site": "north"
	}`)}

	s := AggregateConfiguration(ds)

	assert.Equal(t, 6, s.TotalEntries)
	require.Len(t, s.Components, 5)
	assert.Equal(t, 500.0, s.Renewable)
	assert.Equal(t, 1000.0, s.Storage)
	assert.Equal(t, 150.0, s.Conversion)
	assert.Equal(t, 1650.0, s.TotalCapacity)
	assert.Equal(t, 1, s.MissingCapacities)
	assert.Equal(t, 1, s.InvalidPriorities)
	assert.Equal(t, "Npower", s.Components[0].Alias)
	assert.Equal(t, "true", s.Components[0].Owned)
	assert.Equal(t, "N/A", s.Components[0].Model)
	assert.Equal(t, "peak shaving", s.Components[2].Strategy)
	assert.Equal(t, plant.CategoryUnclassified, s.Components[4].Category)
	assert.Equal(t, 1000.0, s.CapacityOf("battery"))
}

func TestMissingCapacityContributesNothing(t *testing.T) {
	with := plant.Dataset{Plant: mustAttrs(t, `{"wind": {"Npower": 300}}`)}
	without := plant.Dataset{Plant: mustAttrs(t, `{"wind": {"Npower": 300}, "PV": {"model": "mono"}}`)}

	a := AggregateConfiguration(with)
	b := AggregateConfiguration(without)

	assert.Equal(t, a.Renewable, b.Renewable)
	assert.Equal(t, a.TotalCapacity, b.TotalCapacity)
	assert.Equal(t, a.MissingCapacities+1, b.MissingCapacities)
}

func TestAggregateEconomics(t *testing.T) {
	ds := plant.Dataset{
		Costs: mustAttrs(t, `{"PV": {"cost per unit": 45000, "OeM": 12.5}, "wind": {"cost per unit": 65000, "OeM": 30}, "battery": {"OeM": 5}}`),
		Market: mustAttrs(t, `{
			"electricity": {"purchase": 0.25, "sale": 0.1},
			"hydrogen": {"purchase": 8, "sale": 0},
			"green_hydrogen_incentives": {"value": 3},
			"ammonia_incentives": {"value": 1.5},
			"REC": {"collective self consumption incentives": 0.11, "penalty": -1}
		}`),
	}

	s := AggregateEconomics(ds)

	assert.Equal(t, 110000.0, s.CapitalCost())
	assert.Equal(t, 47.5, s.OMCost())
	assert.Equal(t, 1, s.MissingCosts)
	assert.Equal(t, 1, s.InvalidPrices)
	assert.Equal(t, 5, s.TotalMarketEntries)
	assert.InDelta(t, 0.15, s.Prices.ElectricitySpread, 1e-12)
	assert.Zero(t, s.Prices.HydrogenSpread)
	assert.InDelta(t, 4.61, s.Incentives.Total, 1e-12)
}

func TestBalanceSeries(t *testing.T) {
	base := hourlyBase(t, 2)
	loads := AggregateLoads([]plant.Table{table(t, "l", plant.Column{Name: "electricity_demand", Values: []float64{5, 1}})}, base)
	prod := AggregateProduction([]plant.Table{table(t, "SS_1", plant.Column{Name: "solar_power", Values: []float64{20, 30}})}, base)

	series := BalanceSeries(loads, prod)
	require.Len(t, series, 5)
	assert.Equal(t, []float64{2, 3}, series[1].Values)
	assert.Equal(t, []float64{-3, 2}, series[2].Values)
	assert.Equal(t, []float64{0, 2}, series[3].Values)
	assert.Equal(t, []float64{3, 0}, series[4].Values)

	assert.Empty(t, BalanceSeries(loads, ProductionSummary{}))
}

func TestComponentAnalysis(t *testing.T) {
	cfg := AggregateConfiguration(plant.Dataset{Plant: mustAttrs(t, `{"PV": {"peakP": 2}, "battery": {"model": "x"}}`)})
	rows := ComponentAnalysis(cfg, mustAttrs(t, `{"PV": {"cost per unit": 45000}}`))
	require.Len(t, rows, 2)
	assert.Equal(t, "90000", rows[0].TotalCost.String())
	assert.True(t, rows[1].TotalCost.IsZero())
}
