package aggregation

import (
	"errors"
	"fmt"
	"strings"

	plant "plant-reconcile/internal/plant/domain"
	timeseries "plant-reconcile/internal/timeseries/domain"
)

// ErrWeatherColumns is returned when the weather table lacks a required variable.
var ErrWeatherColumns = errors.New("aggregation: weather table missing columns")

// WeatherVariable maps an input column onto its summary column.
type WeatherVariable struct {
	Column string
	Output string
}

// WeatherVariables are the six variables read from the weather table, in output order.
var WeatherVariables = []WeatherVariable{
	{Column: "temp_air", Output: "temperature_C"},
	{Column: "relative_humidity", Output: "relative_humidity_percent"},
	{Column: "ghi", Output: "global_horizontal_irradiance_W_m2"},
	{Column: "wind_speed", Output: "wind_speed_m_s"},
	{Column: "wind_direction", Output: "wind_direction_degrees"},
	{Column: "pressure", Output: "pressure_Pa"},
}

// WeatherSeries is one aligned weather variable.
type WeatherSeries struct {
	Variable WeatherVariable
	Values   []float64
	Stats    timeseries.Stats
}

// WeatherSummary is the weather aggregator output.
type WeatherSummary struct {
	Series []WeatherSeries
}

// AggregateWeather aligns the six weather variables. A table missing any of them is
// rejected with ErrWeatherColumns.
func AggregateWeather(table plant.Table, base timeseries.TimeBase) (WeatherSummary, error) {
	var (
		s       WeatherSummary
		missing []string
	)
	for _, v := range WeatherVariables {
		raw, ok := table.Column(v.Column)
		if !ok {
			missing = append(missing, v.Column)
			continue
		}
		aligned := timeseries.Align(raw, base.Len())
		s.Series = append(s.Series, WeatherSeries{Variable: v, Values: aligned, Stats: timeseries.Describe(aligned)})
	}
	if len(missing) > 0 {
		return WeatherSummary{}, fmt.Errorf("%w: %s", ErrWeatherColumns, strings.Join(missing, ", "))
	}
	return s, nil
}
