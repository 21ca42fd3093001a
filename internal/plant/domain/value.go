package plant

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// Value is one decoded configuration value.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	m    Attributes
}

func Null() Value { return Value{} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Int(i int64) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Map(attrs Attributes) Value { return Value{kind: KindMap, m: attrs} }
func List(items ...Value) Value { return Value{kind: KindList, list: append([]Value(nil), items...)} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsMap() bool { return v.kind == KindMap }
func (v Value) IsInt() bool { return v.kind == KindInt }

// IsNumeric reports whether the value is an int or a float. Booleans are not numeric.
func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Number returns the numeric value and whether the value was numeric.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Attributes returns the nested mapping, or an empty one for non-map values.
func (v Value) Attributes() Attributes {
	if v.kind != KindMap {
		return Attributes{}
	}
	return v.m
}

// Items returns a copy of the list elements.
func (v Value) Items() []Value {
	return append([]Value(nil), v.list...)
}

// String renders the value for report cells. Null renders empty.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	case KindMap:
		parts := make([]string, 0, v.m.Len())
		for _, attr := range v.m.Items() {
			parts = append(parts, attr.Key+":"+attr.Value.String())
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return ""
	}
}
