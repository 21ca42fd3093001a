package plant

// CapacityAliases is the ordered list of keys searched for a component's rated capacity.
var CapacityAliases = []string{"capacity", "Npower", "peakP", "max capacity", "max power"}

// ResolveCapacity returns the first numeric value found under CapacityAliases and the alias
// that matched. Booleans and strings are skipped.
func ResolveCapacity(attrs Attributes) (value float64, alias string, ok bool) {
	for _, key := range CapacityAliases {
		if n, found := attrs.Number(key); found {
			return n, key, true
		}
	}
	return 0, "", false
}

// Category groups components for capacity totals.
type Category string

const (
	CategoryRenewable    Category = "renewable"
	CategoryStorage      Category = "storage"
	CategoryConversion   Category = "conversion"
	CategoryUnclassified Category = "unclassified"
)

var categoryMembers = []struct {
	category Category
	names    []string
}{
	{CategoryRenewable, []string{"wind", "PV"}},
	{CategoryStorage, []string{"battery"}},
	{CategoryConversion, []string{"electrolyzer", "hydrogen_compressor"}},
}

// Classify maps a component name onto its category. Matching is exact.
func Classify(name string) Category {
	for _, group := range categoryMembers {
		for _, member := range group.names {
			if name == member {
				return group.category
			}
		}
	}
	return CategoryUnclassified
}

// Component names that physical constraint checks look up directly.
const (
	ComponentBattery         = "battery"
	ComponentHydrogenStorage = "hydrogen_storage"
)

// Component is one entry of the plant configuration.
type Component struct {
	Name  string
	Attrs Attributes
}

// Capacity resolves the component's rated capacity.
func (c Component) Capacity() (float64, string, bool) {
	return ResolveCapacity(c.Attrs)
}

// Category classifies the component by name.
func (c Component) Category() Category {
	return Classify(c.Name)
}

// HasInvalidPriority reports a priority that is present but not an integer.
func (c Component) HasInvalidPriority() bool {
	v, ok := c.Attrs.Get("priority")
	return ok && !v.IsInt()
}

// Field renders an attribute for summaries, "N/A" when absent.
func (c Component) Field(key string) string {
	return c.Attrs.TextOr(key, "N/A")
}
