package config

import "errors"

// Errors returned while resolving [Settings].
var (
	// ErrInvalidDatabaseURL indicates a DATABASE_URL that cannot be parsed
	// (for example, a missing scheme or a non-numeric port).
	ErrInvalidDatabaseURL = errors.New("invalid database url")
	// ErrUnsupportedDatabaseScheme indicates a DATABASE_URL whose scheme is
	// neither a PostgreSQL nor a SQLite one.
	ErrUnsupportedDatabaseScheme = errors.New("unsupported database url scheme")
)
