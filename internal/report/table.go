package report

import (
	"math"
	"strconv"
	"time"
)

// Tier is an output directory under the report root.
type Tier string

const (
	TierIntermediate   Tier = "intermediate"
	TierFinal          Tier = "final"
	TierReconciliation Tier = "reconciliation"
)

// Tiers lists every output tier.
var Tiers = []Tier{TierIntermediate, TierFinal, TierReconciliation}

// Table is a fixed-schema output table.
type Table struct {
	Name    string
	Tier    Tier
	Columns []string
	Rows    [][]string
	// Numeric names the columns exported as numbers; all other columns stay text.
	Numeric []string
}

// FileName is the CSV file name of the table.
func (t Table) FileName() string { return t.Name + ".csv" }

func (t Table) numericColumns() map[int]bool {
	out := make(map[int]bool, len(t.Numeric))
	for i, col := range t.Columns {
		for _, name := range t.Numeric {
			if col == name {
				out[i] = true
			}
		}
	}
	return out
}

const timestampLayout = "2006-01-02 15:04:05"

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(timestampLayout)
}
