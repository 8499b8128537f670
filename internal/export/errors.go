package export

import "errors"

var (
	// ErrSourceNotFound is returned by [Run] when the source database file
	// does not exist. Nothing is written in that case.
	ErrSourceNotFound = errors.New("source database not found")

	// ErrOutputExists is returned when the bundle file is already there.
	// Existing exports are never overwritten.
	ErrOutputExists = errors.New("output file already exists")
)
