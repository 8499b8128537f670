// Package validators checks export bundles before they reach the database.
//
// A [Validator] accepts any value and an optional list of field names that
// restricts which rules run. Bundles are checked for SQL-safe table and
// column names and for a consistent column set per table.
package validators

import "context"

// Validator validates arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named fields.
	Validate(context.Context, any, ...string) error
}
