package ingest

import "errors"

var (
	// ErrMissingInput is returned when an input file or directory does not exist.
	ErrMissingInput = errors.New("ingest: missing input")
	// ErrParse is returned when an input exists but cannot be decoded.
	ErrParse = errors.New("ingest: parse error")
)
