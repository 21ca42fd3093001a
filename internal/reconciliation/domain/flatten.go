package reconciliation

// Separator joins a group key and a child key into a metric name.
const Separator = "_"

// Report row statuses.
const (
	StatusValid   = "Valid"
	StatusMissing = "Missing"
)

// Row is one line of the comprehensive report.
type Row struct {
	CheckType string
	Metric    string
	Value     Value
	Status    string
}

// SectionRow is one line of a per-check table.
type SectionRow struct {
	Section string
	Metric  string
	Value   Value
	Status  string
}

// StatusOf returns Missing for null or NaN values, Valid otherwise.
func StatusOf(v Value) string {
	if v.Missing() {
		return StatusMissing
	}
	return StatusValid
}

// Flatten turns results into rows in insertion order. A leaf is one row named by its key; a
// group yields one row per child named group + Separator + child. Children nested deeper
// are rendered as a single text value.
func Flatten(r Results) []Row {
	var rows []Row
	for _, s := range r.Sections {
		for _, n := range s.Nodes {
			if !n.IsGroup() {
				rows = append(rows, Row{CheckType: s.Name, Metric: n.Key, Value: n.Value, Status: StatusOf(n.Value)})
				continue
			}
			for _, child := range n.Children {
				v := childValue(child)
				rows = append(rows, Row{CheckType: s.Name, Metric: n.Key + Separator + child.Key, Value: v, Status: StatusOf(v)})
			}
		}
	}
	return rows
}

// FlattenSection lists a section's values keyed by their group. Top-level leaves use the
// section name as their group.
func FlattenSection(s Section) []SectionRow {
	var rows []SectionRow
	for _, n := range s.Nodes {
		if !n.IsGroup() {
			rows = append(rows, SectionRow{Section: s.Name, Metric: n.Key, Value: n.Value, Status: StatusOf(n.Value)})
			continue
		}
		for _, child := range n.Children {
			v := childValue(child)
			rows = append(rows, SectionRow{Section: n.Key, Metric: child.Key, Value: v, Status: StatusOf(v)})
		}
	}
	return rows
}

func childValue(n Node) Value {
	if n.IsGroup() {
		return Text(render(n.Children))
	}
	return n.Value
}

func render(nodes []Node) string {
	out := "{"
	for i, n := range nodes {
		if i > 0 {
			out += ", "
		}
		out += n.Key + ": "
		if n.IsGroup() {
			out += render(n.Children)
		} else {
			out += n.Value.String()
		}
	}
	return out + "}"
}
