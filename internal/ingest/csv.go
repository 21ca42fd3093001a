package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	plant "plant-reconcile/internal/plant/domain"
)

var timestampHeaders = []string{"timestamp", "time", "datetime", "date", "ts", "time(utc)"}

// ReadTable reads a CSV file into a table named name.
func ReadTable(path, name string) (plant.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return plant.Table{}, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return plant.Table{}, err
	}
	defer file.Close()

	table, err := ParseTable(file, name)
	if err != nil {
		return plant.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseTable decodes a CSV stream. The first row is the header. A timestamp column is
// recognised by name; every other column is numeric with blank or unparseable cells kept as
// NaN. Columns without a single numeric cell are dropped.
func ParseTable(r io.Reader, name string) (plant.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return plant.Table{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(records) < 1 {
		return plant.Table{}, fmt.Errorf("%w: empty csv", ErrParse)
	}

	header := make(map[string]int)
	for i, col := range records[0] {
		header[strings.ToLower(strings.TrimSpace(col))] = i
	}
	timeIdx := findHeader(header, timestampHeaders...)
	rows := records[1:]

	var timestamps []time.Time
	if timeIdx >= 0 {
		timestamps = make([]time.Time, len(rows))
		parsed := 0
		for i, row := range rows {
			if ts, err := parseTime(row[timeIdx]); err == nil {
				timestamps[i] = ts
				parsed++
			}
		}
		if parsed == 0 && len(rows) > 0 {
			timestamps = nil
		}
	}

	var columns []plant.Column
	for idx, raw := range records[0] {
		if idx == timeIdx {
			continue
		}
		colName := strings.TrimSpace(raw)
		values := make([]float64, len(rows))
		numeric := len(rows) == 0
		for i, row := range rows {
			v, ok := parseFloat(row[idx])
			if !ok {
				values[i] = math.NaN()
				continue
			}
			values[i] = v
			numeric = true
		}
		if !numeric {
			continue
		}
		columns = append(columns, plant.Column{Name: colName, Values: values})
	}

	table, err := plant.NewTable(name, timestamps, columns)
	if err != nil {
		return plant.Table{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return table, nil
}

func findHeader(headers map[string]int, names ...string) int {
	for _, name := range names {
		if idx, ok := headers[strings.ToLower(name)]; ok {
			return idx
		}
	}
	return -1
}

func parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("ingest: empty time")
	}
	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil && len(value) >= 9 {
		if epoch > 1_000_000_000_000 {
			return time.UnixMilli(epoch).UTC(), nil
		}
		return time.Unix(epoch, 0).UTC(), nil
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05-07:00",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"20060102:1504",
		"2006-01-02",
		"01/02/2006 15:04",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("ingest: unsupported time format %q", value)
}

func parseFloat(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
