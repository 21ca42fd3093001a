package ingest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timeseries "plant-reconcile/internal/timeseries/domain"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoaderReadsFullLayout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "loads/b_heat.csv", "timestamp,heat_demand\n2023-01-01 00:00:00,4\n")
	writeFile(t, root, "loads/a_elec.csv", "timestamp,electricity_demand\n2023-01-01 00:00:00,3\n")
	writeFile(t, root, "loads/notes.txt", "ignored")
	writeFile(t, root, "production/SS_1.csv", "solar_power\n1\n2\n3\n")
	writeFile(t, root, "production/WS_1.csv", "timestamp,wind_power\n2023-01-01 00:00:00,9\n")
	writeFile(t, root, "studycase.json", `{"hybrid_plant": {"wind": {"Npower": 100}, "PV": {"peakP": 50}}}`)
	writeFile(t, root, "tech_cost.json", `{"PV": {"cost per unit": 45000}}`)
	writeFile(t, root, "energy_market.json", `{"electricity": {"purchase": 0.2, "sale": 0.1}}`)

	loader := NewLoader(Layout{}, zerolog.Nop())
	ds, res := loader.Load(root)

	require.Len(t, ds.Loads, 2)
	assert.Equal(t, "a_elec", ds.Loads[0].Name)
	assert.Equal(t, "b_heat", ds.Loads[1].Name)

	require.Len(t, ds.Production, 2)
	solar := ds.Production[0]
	require.True(t, solar.HasTimestamps())
	assert.Equal(t, timeseries.DefaultStart.Add(2*time.Minute), solar.Timestamps[2])

	assert.Equal(t, []string{"wind", "PV"}, ds.Plant.Keys())
	assert.Equal(t, 1, ds.Costs.Len())
	assert.Equal(t, 1, ds.Market.Len())
	assert.Nil(t, ds.Weather)

	assert.Empty(t, res.Warnings)
	require.Len(t, res.Missing, 1)
	assert.ErrorIs(t, res.Missing[0].Err, ErrMissingInput)
}

func TestLoaderExcludesMalformedInputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "loads/good.csv", "timestamp,electricity_demand\n2023-01-01 00:00:00,3\n")
	writeFile(t, root, "loads/bad.csv", "a,b\n1\n")
	writeFile(t, root, "studycase.json", `{"hybrid_plant": `)
	writeFile(t, root, "weather/TMY_general.csv", "")

	ds, res := NewLoader(Layout{}, zerolog.Nop()).Load(root)

	require.Len(t, ds.Loads, 1)
	assert.Equal(t, "good", ds.Loads[0].Name)
	assert.Equal(t, 0, ds.Plant.Len())
	assert.Nil(t, ds.Weather)
	require.Len(t, res.Warnings, 3)
	for _, w := range res.Warnings {
		assert.ErrorIs(t, w.Err, ErrParse)
	}
}

func TestLoaderEmptyRoot(t *testing.T) {
	ds, res := NewLoader(Layout{}, zerolog.Nop()).Load(t.TempDir())
	assert.Empty(t, ds.Loads)
	assert.Empty(t, ds.Production)
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Missing, 6)
}

func TestLoaderMergesOverlay(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "loads/a_elec.csv", "timestamp,electricity_demand\n2023-01-01 00:00:00,3\n")
	writeFile(t, root, "loads/b_heat.csv", "timestamp,heat_demand\n2023-01-01 00:00:00,4\n")
	writeFile(t, root, "studycase.json", `{"hybrid_plant": {"wind": {"Npower": 100}, "PV": {"peakP": 50}}}`)
	writeFile(t, root, "tech_cost.json", `{"PV": {"cost per unit": 45000}}`)
	writeFile(t, root, "overrides/loads/a_elec.csv", "timestamp,electricity_demand\n2023-01-01 00:00:00,30\n")
	writeFile(t, root, "overrides/loads/c_h2.csv", "timestamp,hydrogen_demand\n2023-01-01 00:00:00,1\n")
	writeFile(t, root, "overrides/studycase.json", `{"hybrid_plant": {"PV": {"peakP": 80}, "battery": {"capacity": 20}}}`)

	ds, res := NewLoader(Layout{}, zerolog.Nop()).Load(root)

	require.Len(t, ds.Loads, 3)
	assert.Equal(t, "a_elec", ds.Loads[0].Name)
	elec, ok := ds.Loads[0].Column("electricity_demand")
	require.True(t, ok)
	assert.Equal(t, []float64{30}, elec)
	assert.Equal(t, "c_h2", ds.Loads[2].Name)

	assert.Equal(t, []string{"wind", "PV", "battery"}, ds.Plant.Keys())
	assert.Equal(t, 80.0, ds.Plant.Sub("PV").NumberOr("peakP", 0))
	assert.Equal(t, 1, ds.Costs.Len())

	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Missing, 3)
}

func TestLoaderOverlayReportsMalformedInputs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "studycase.json", `{"hybrid_plant": {"wind": {"Npower": 100}}}`)
	writeFile(t, root, "overrides/studycase.json", `{"hybrid_plant": `)

	ds, res := NewLoader(Layout{}, zerolog.Nop()).Load(root)
	assert.Equal(t, []string{"wind"}, ds.Plant.Keys())
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0].Err, ErrParse)
	assert.Len(t, res.Missing, 5)
}
