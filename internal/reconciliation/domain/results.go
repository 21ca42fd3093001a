package reconciliation

// Check section names in execution order.
const (
	CheckDataQuality         = "data_quality"
	CheckCapacity            = "capacity_consistency"
	CheckLoadProfile         = "load_profile_consistency"
	CheckEnergyBalance       = "energy_balance"
	CheckEconomic            = "economic_consistency"
	CheckTemporal            = "temporal_consistency"
	CheckPhysicalConstraints = "physical_constraints"
)

// CheckOrder lists the checks in the order they run and are reported.
var CheckOrder = []string{
	CheckDataQuality,
	CheckCapacity,
	CheckLoadProfile,
	CheckEnergyBalance,
	CheckEconomic,
	CheckTemporal,
	CheckPhysicalConstraints,
}

// Node is a metric value or a named group of nodes.
type Node struct {
	Key      string
	Value    Value
	Children []Node
	group    bool
}

// Leaf builds a value node.
func Leaf(key string, v Value) Node { return Node{Key: key, Value: v} }

// Group builds a group node. An empty group is kept and flattens to no rows.
func Group(key string, children ...Node) Node {
	return Node{Key: key, Children: append([]Node{}, children...), group: true}
}

func (n Node) IsGroup() bool { return n.group }

// Section is the keyed output of one check.
type Section struct {
	Name  string
	Nodes []Node
}

// Lookup follows path through groups and returns the leaf value.
func (s Section) Lookup(path ...string) (Value, bool) {
	nodes := s.Nodes
	for i, key := range path {
		var found *Node
		for j := range nodes {
			if nodes[j].Key == key {
				found = &nodes[j]
				break
			}
		}
		if found == nil {
			return Value{}, false
		}
		if i == len(path)-1 {
			if found.group {
				return Value{}, false
			}
			return found.Value, true
		}
		nodes = found.Children
	}
	return Value{}, false
}

// Results is the ordered output of every check.
type Results struct {
	Sections []Section
}

// Add appends a section, replacing an earlier one with the same name in place.
func (r *Results) Add(s Section) {
	for i := range r.Sections {
		if r.Sections[i].Name == s.Name {
			r.Sections[i] = s
			return
		}
	}
	r.Sections = append(r.Sections, s)
}

// Section returns the named section.
func (r Results) Section(name string) (Section, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// NumberAt returns the numeric value at path within the named section. It reports
// whether the section exists; a missing or non-numeric value reads as 0.
func (r Results) NumberAt(section string, path ...string) (float64, bool) {
	s, ok := r.Section(section)
	if !ok {
		return 0, false
	}
	v, found := s.Lookup(path...)
	if !found {
		return 0, true
	}
	f, _ := v.Float()
	return f, true
}
