package plant

import "errors"

var (
	// ErrEmptyDocument is returned when a configuration document has no content.
	ErrEmptyDocument = errors.New("plant: empty document")
	// ErrNotMapping is returned when a configuration document is not a key/value mapping.
	ErrNotMapping = errors.New("plant: document is not a mapping")
	// ErrDuplicateColumn is returned when a table declares the same column twice.
	ErrDuplicateColumn = errors.New("plant: duplicate column")
	// ErrColumnLength is returned when a table column does not match the row count.
	ErrColumnLength = errors.New("plant: column length mismatch")
)
