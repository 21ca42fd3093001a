package plant

// Attribute is one key/value pair of a configuration mapping.
type Attribute struct {
	Key   string
	Value Value
}

// Attributes is an ordered mapping that keeps keys in file order.
// The zero value is an empty mapping. Attributes is never mutated in place.
type Attributes struct {
	items []Attribute
}

// NewAttributes builds a mapping. A repeated key keeps its first position and its last value.
func NewAttributes(items ...Attribute) Attributes {
	var out Attributes
	for _, item := range items {
		out = out.With(item.Key, item.Value)
	}
	return out
}

func (a Attributes) Len() int { return len(a.items) }

// Keys returns the keys in order.
func (a Attributes) Keys() []string {
	keys := make([]string, len(a.items))
	for i, item := range a.items {
		keys[i] = item.Key
	}
	return keys
}

// Items returns a copy of the pairs in order.
func (a Attributes) Items() []Attribute {
	return append([]Attribute(nil), a.items...)
}

// Get looks up key.
func (a Attributes) Get(key string) (Value, bool) {
	for _, item := range a.items {
		if item.Key == key {
			return item.Value, true
		}
	}
	return Value{}, false
}

// Number returns the numeric value under key; missing or non-numeric values report false.
func (a Attributes) Number(key string) (float64, bool) {
	v, ok := a.Get(key)
	if !ok {
		return 0, false
	}
	return v.Number()
}

// NumberOr returns the numeric value under key or def.
func (a Attributes) NumberOr(key string, def float64) float64 {
	if n, ok := a.Number(key); ok {
		return n
	}
	return def
}

// TextOr renders the value under key, or def when the key is absent.
func (a Attributes) TextOr(key, def string) string {
	v, ok := a.Get(key)
	if !ok {
		return def
	}
	return v.String()
}

// Sub returns the nested mapping under key, empty when absent or not a mapping.
func (a Attributes) Sub(key string) Attributes {
	v, ok := a.Get(key)
	if !ok {
		return Attributes{}
	}
	return v.Attributes()
}

// With returns a copy with key set to v. An existing key keeps its position.
func (a Attributes) With(key string, v Value) Attributes {
	items := make([]Attribute, len(a.items), len(a.items)+1)
	copy(items, a.items)
	for i := range items {
		if items[i].Key == key {
			items[i].Value = v
			return Attributes{items: items}
		}
	}
	return Attributes{items: append(items, Attribute{Key: key, Value: v})}
}

// MergeAttributes returns base overlaid with overlay: overlay wins per key, base keys keep
// their order and keys new in overlay follow in overlay order.
func MergeAttributes(base, overlay Attributes) Attributes {
	out := Attributes{items: append([]Attribute(nil), base.items...)}
	for _, item := range overlay.items {
		out = out.With(item.Key, item.Value)
	}
	return out
}
