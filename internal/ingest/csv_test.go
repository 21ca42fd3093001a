package ingest

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timeseries "plant-reconcile/internal/timeseries/domain"
)

func TestParseTableWithTimestamps(t *testing.T) {
	input := "timestamp,electricity_demand,heat_demand,label\n" +
		"2023-01-01 00:00:00,10,5,a\n" +
		"2023-01-01 01:00:00,,7,b\n" +
		"bogus,12,x,c\n"

	table, err := ParseTable(strings.NewReader(input), "electric_load")
	require.NoError(t, err)

	assert.Equal(t, "electric_load", table.Name)
	assert.Equal(t, []string{"electricity_demand", "heat_demand"}, table.ColumnNames())
	require.Len(t, table.Timestamps, 3)
	assert.Equal(t, time.Date(2023, 1, 1, 1, 0, 0, 0, time.UTC), table.Timestamps[1])
	assert.True(t, table.Timestamps[2].IsZero())

	elec, ok := table.Column("electricity_demand")
	require.True(t, ok)
	assert.Equal(t, 10.0, elec[0])
	assert.True(t, math.IsNaN(elec[1]))
	heat, _ := table.Column("heat_demand")
	assert.True(t, math.IsNaN(heat[2]))
}

func TestParseTableWithoutTimestamps(t *testing.T) {
	table, err := ParseTable(strings.NewReader("solar_power\n1\n2\n"), "SS_1")
	require.NoError(t, err)
	assert.False(t, table.HasTimestamps())
	assert.Equal(t, 2, table.Rows())
}

func TestParseTableErrors(t *testing.T) {
	_, err := ParseTable(strings.NewReader(""), "empty")
	assert.True(t, errors.Is(err, ErrParse))

	_, err = ParseTable(strings.NewReader("a,b\n1\n"), "ragged")
	assert.True(t, errors.Is(err, ErrParse))
}

func TestParseTime(t *testing.T) {
	want := time.Date(2023, 1, 1, 13, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2023-01-01T13:00:00Z",
		"2023-01-01 13:00:00",
		"2023-01-01 13:00",
		"20230101:1300",
		"1672578000",
	} {
		got, err := parseTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseTime("")
	assert.Error(t, err)
}

func TestParseTimeKeepsOffsetWallClock(t *testing.T) {
	input := "timestamp,electricity_demand\n" +
		"2023-01-01T00:00:00+01:00,100\n" +
		"2023-01-01T01:00:00+01:00,1\n"

	table, err := ParseTable(strings.NewReader(input), "offset_load")
	require.NoError(t, err)
	require.Len(t, table.Timestamps, 2)
	assert.Equal(t, 0, table.Timestamps[0].Hour())
	assert.True(t, table.Timestamps[0].Equal(time.Date(2022, 12, 31, 23, 0, 0, 0, time.UTC)))

	profile := timeseries.DailyProfile(table.Timestamps, table.Columns[0].Values)
	assert.Equal(t, []timeseries.HourAverage{{Hour: 0, Average: 100}, {Hour: 1, Average: 1}}, profile)
	assert.Equal(t, []int{0}, timeseries.PeakHours(profile, 1))
}
