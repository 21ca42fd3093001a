package plant

import (
	"fmt"
	"math"
	"time"
)

// Column is one numeric column of a raw table. Missing cells are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Table is a raw time-indexed input table. Timestamps is nil when the source had no
// timestamp column; a zero entry marks an unparseable timestamp.
type Table struct {
	Name       string
	Timestamps []time.Time
	Columns    []Column
}

// NewTable validates column names and lengths.
func NewTable(name string, timestamps []time.Time, columns []Column) (Table, error) {
	seen := make(map[string]struct{}, len(columns))
	rows := -1
	if timestamps != nil {
		rows = len(timestamps)
	}
	for _, col := range columns {
		if _, dup := seen[col.Name]; dup {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateColumn, col.Name)
		}
		seen[col.Name] = struct{}{}
		if rows < 0 {
			rows = len(col.Values)
		}
		if len(col.Values) != rows {
			return Table{}, fmt.Errorf("%w: %s has %d rows, want %d", ErrColumnLength, col.Name, len(col.Values), rows)
		}
	}
	return Table{Name: name, Timestamps: timestamps, Columns: columns}, nil
}

// Rows returns the number of rows.
func (t Table) Rows() int {
	if t.Timestamps != nil {
		return len(t.Timestamps)
	}
	if len(t.Columns) > 0 {
		return len(t.Columns[0].Values)
	}
	return 0
}

// HasTimestamps reports whether the table carried a timestamp column.
func (t Table) HasTimestamps() bool { return t.Timestamps != nil }

// ColumnNames returns the value column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column.
func (t Table) Column(name string) ([]float64, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col.Values, true
		}
	}
	return nil, false
}

// WithTimestamps returns a copy carrying the given timestamps.
func (t Table) WithTimestamps(timestamps []time.Time) Table {
	t.Timestamps = timestamps
	return t
}

// CellCounts tallies the cells of every value column.
type CellCounts struct {
	Present  int
	Missing  int
	Negative int
	Zero     int
}

// Counts tallies present, missing, negative and zero cells across value columns.
func (t Table) Counts() CellCounts {
	var c CellCounts
	for _, col := range t.Columns {
		for _, v := range col.Values {
			switch {
			case math.IsNaN(v):
				c.Missing++
				continue
			case v < 0:
				c.Negative++
			case v == 0:
				c.Zero++
			}
			c.Present++
		}
	}
	return c
}
