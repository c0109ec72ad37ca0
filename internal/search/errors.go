package search

import "errors"

var (
	// ErrInvalidPattern is returned when a regular expression does not compile.
	ErrInvalidPattern = errors.New("invalid search pattern")

	// ErrTimeout is returned when a scan runs past its time budget.
	ErrTimeout = errors.New("search timed out")
)
