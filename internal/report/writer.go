package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Writer emits tables as CSV files under a root directory, one subdirectory per tier.
type Writer struct {
	root string
}

func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// Dir returns the directory of a tier.
func (w *Writer) Dir(tier Tier) string {
	return filepath.Join(w.root, string(tier))
}

// Prepare creates the tier directories. It is safe to call repeatedly.
func (w *Writer) Prepare() error {
	for _, tier := range Tiers {
		if err := os.MkdirAll(w.Dir(tier), 0o755); err != nil {
			return fmt.Errorf("report: create %s: %w", tier, err)
		}
	}
	return nil
}

// Write replaces every table file and removes files of known tables this run did not
// produce. It returns the written paths in order.
func (w *Writer) Write(tables []Table) ([]string, error) {
	return w.WriteTiers(tables, Tiers...)
}

// WriteTiers is Write with stale-file removal limited to the given tiers.
func (w *Writer) WriteTiers(tables []Table, tiers ...Tier) ([]string, error) {
	if err := w.Prepare(); err != nil {
		return nil, err
	}
	produced := make(map[Tier]map[string]bool)
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		path := filepath.Join(w.Dir(t.Tier), t.FileName())
		if err := writeCSV(path, t); err != nil {
			return paths, fmt.Errorf("report: write %s: %w", path, err)
		}
		if produced[t.Tier] == nil {
			produced[t.Tier] = make(map[string]bool)
		}
		produced[t.Tier][t.Name] = true
		paths = append(paths, path)
	}
	for _, tier := range tiers {
		for _, name := range KnownTables[tier] {
			if produced[tier][name] {
				continue
			}
			path := filepath.Join(w.Dir(tier), name+".csv")
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return paths, fmt.Errorf("report: remove stale %s: %w", path, err)
			}
		}
	}
	return paths, nil
}

// WriteFile writes raw export bytes into a tier directory.
func (w *Writer) WriteFile(tier Tier, name string, data []byte) (string, error) {
	if err := w.Prepare(); err != nil {
		return "", err
	}
	path := filepath.Join(w.Dir(tier), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	return path, nil
}

// Remove deletes a file from a tier directory if it exists.
func (w *Writer) Remove(tier Tier, name string) error {
	path := filepath.Join(w.Dir(tier), name)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("report: remove %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, t Table) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Columns); err != nil {
		return err
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return err
	}
	return file.Close()
}
