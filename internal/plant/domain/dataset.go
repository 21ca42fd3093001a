package plant

// PlantKey is the configuration key holding the component mapping.
const PlantKey = "hybrid_plant"

// Dataset is an immutable snapshot of every input of one run.
type Dataset struct {
	Loads      []Table
	Production []Table
	// Plant is the component mapping (the hybrid_plant object).
	Plant   Attributes
	Costs   Attributes
	Market  Attributes
	Weather *Table
}

// Components returns the mapping entries of the plant configuration in order.
// Scalar entries are counted by ComponentCount but are not components.
func (d Dataset) Components() []Component {
	out := make([]Component, 0, d.Plant.Len())
	for _, item := range d.Plant.Items() {
		if !item.Value.IsMap() {
			continue
		}
		out = append(out, Component{Name: item.Key, Attrs: item.Value.Attributes()})
	}
	return out
}

// ComponentCount counts every configured entry.
func (d Dataset) ComponentCount() int { return d.Plant.Len() }

// SourcesOf returns the production tables of the given kind in input order.
func (d Dataset) SourcesOf(kind SourceKind) []Table {
	var out []Table
	for _, t := range d.Production {
		if ClassifySource(t.Name) == kind {
			out = append(out, t)
		}
	}
	return out
}

// Merge returns a new snapshot: tables and attributes from overlay replace those of base with
// the same name, base order is kept and new overlay entries follow. Neither input is modified.
func Merge(base, overlay Dataset) Dataset {
	out := Dataset{
		Loads:      mergeTables(base.Loads, overlay.Loads),
		Production: mergeTables(base.Production, overlay.Production),
		Plant:      MergeAttributes(base.Plant, overlay.Plant),
		Costs:      MergeAttributes(base.Costs, overlay.Costs),
		Market:     MergeAttributes(base.Market, overlay.Market),
		Weather:    base.Weather,
	}
	if overlay.Weather != nil {
		w := *overlay.Weather
		out.Weather = &w
	}
	return out
}

func mergeTables(base, overlay []Table) []Table {
	out := append([]Table(nil), base...)
	for _, t := range overlay {
		replaced := false
		for i := range out {
			if out[i].Name == t.Name {
				out[i] = t
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, t)
		}
	}
	return out
}
