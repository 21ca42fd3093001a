package aggregation

import (
	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// Summary bundles every aggregator output of one run.
type Summary struct {
	Base          timeseries.TimeBase
	Loads         LoadSummary
	Production    ProductionSummary
	Configuration ConfigurationSummary
	Economics     EconomicsSummary
	// Weather is nil when no usable weather table was supplied.
	Weather    *WeatherSummary
	WeatherErr error
}

// Aggregate runs every aggregator over the dataset. It never fails: a rejected weather table
// is reported through WeatherErr and leaves Weather nil.
func Aggregate(ds plant.Dataset, base timeseries.TimeBase) Summary {
	s := Summary{
		Base:          base,
		Loads:         AggregateLoads(ds.Loads, base),
		Production:    AggregateProduction(ds.Production, base),
		Configuration: AggregateConfiguration(ds),
		Economics:     AggregateEconomics(ds),
	}
	if ds.Weather != nil {
		weather, err := AggregateWeather(*ds.Weather, base)
		if err != nil {
			s.WeatherErr = err
		} else {
			s.Weather = &weather
		}
	}
	return s
}
