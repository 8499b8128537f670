package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNilBundle           = errors.New("bundle is nil")
	ErrInvalidTableName    = errors.New("invalid table name")
	ErrInvalidColumnName   = errors.New("invalid column name")
	ErrDuplicateTable      = errors.New("table listed more than once")
	ErrEmptyRecord         = errors.New("record has no columns")
	ErrInconsistentColumns = errors.New("records of a table have different columns")
)
