package ingest

import (
	"errors"
	"fmt"
	"os"

	plant "plant-reconcile/internal/plant/domain"
)

// ReadAttributes reads a JSON or YAML mapping document keeping key order.
func ReadAttributes(path string) (plant.Attributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return plant.Attributes{}, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return plant.Attributes{}, err
	}
	attrs, err := plant.DecodeAttributes(data)
	if err != nil {
		return plant.Attributes{}, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}
	return attrs, nil
}
