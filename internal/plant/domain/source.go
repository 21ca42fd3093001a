package plant

import "strings"

// SourceKind is the production class of a source.
type SourceKind string

const (
	SourceSolar   SourceKind = "solar"
	SourceWind    SourceKind = "wind"
	SourceUnknown SourceKind = ""
)

// sourceTags is checked in order; the first kind with a matching substring wins.
var sourceTags = []struct {
	kind SourceKind
	tags []string
}{
	{SourceSolar, []string{"SS", "PV", "solar"}},
	{SourceWind, []string{"WS", "wind"}},
}

// powerColumns lists the column aliases holding the power signal per kind.
var powerColumns = map[SourceKind][]string{
	SourceSolar: {"solar_power", "P", "PV", "power"},
	SourceWind:  {"wind_power", "kW", "wind", "power"},
}

// ClassifySource classifies a production source by case-sensitive substrings of its name.
// Solar tags are checked before wind tags, so "PV_wind" is solar.
func ClassifySource(name string) SourceKind {
	for _, group := range sourceTags {
		for _, tag := range group.tags {
			if strings.Contains(name, tag) {
				return group.kind
			}
		}
	}
	return SourceUnknown
}

// PowerColumn picks the column that carries the source's power signal: the first alias
// present for the kind, else the first column. Empty when there are no columns.
func PowerColumn(kind SourceKind, columns []string) string {
	for _, alias := range powerColumns[kind] {
		for _, col := range columns {
			if col == alias {
				return col
			}
		}
	}
	if len(columns) > 0 {
		return columns[0]
	}
	return ""
}
