package reconciliation

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tags a result value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindText
	KindList
)

// Value is one reconciliation metric value.
type Value struct {
	kind ValueKind
	num  float64
	text string
	list []int
}

// Null is an absent value.
func Null() Value { return Value{} }

// Number wraps a numeric value. NaN is kept and reported as missing.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// Count wraps an integer count.
func Count(n int) Value { return Number(float64(n)) }

func Text(s string) Value { return Value{kind: KindText, text: s} }

// Hours wraps a list of hours of the day.
func Hours(hours []int) Value {
	return Value{kind: KindList, list: append([]int{}, hours...)}
}

func (v Value) Kind() ValueKind { return v.kind }

// Missing reports whether the value is null or a NaN number.
func (v Value) Missing() bool {
	return v.kind == KindNull || (v.kind == KindNumber && math.IsNaN(v.num))
}

// Float returns the numeric value; non-numeric values report false.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// List returns a copy of the hour list.
func (v Value) List() []int {
	return append([]int(nil), v.list...)
}

// String renders the value for report cells. Missing values render empty.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		if math.IsNaN(v.num) {
			return ""
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	case KindList:
		parts := make([]string, len(v.list))
		for i, h := range v.list {
			parts[i] = strconv.Itoa(h)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return ""
	}
}
