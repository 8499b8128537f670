package validators

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"github.com/mapa3/distribucion-app/models"
)

// Field names accepted by [BundleValidator.Validate].
const (
	// FieldTableNames checks that every table name is a plain identifier and
	// appears only once.
	FieldTableNames = "table_names"

	// FieldColumnNames checks that every column name is a plain identifier.
	FieldColumnNames = "column_names"

	// FieldColumnSets checks that all records of a table carry the same
	// columns and that none is empty.
	FieldColumnSets = "column_sets"
)

// maxIdentifierLength is PostgreSQL's NAMEDATALEN minus one.
const maxIdentifierLength = 63

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type BundleValidator struct {
}

func NewBundleValidator() Validator {
	return &BundleValidator{}
}

// Validate accepts a *models.Bundle, a models.Bundle or a single
// models.TableExport.
func (v *BundleValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case *models.Bundle:
		if value == nil {
			return ErrNilBundle
		}
		return v.validateBundle(ctx, *value, fields...)
	case models.Bundle:
		return v.validateBundle(ctx, value, fields...)

	case models.TableExport:
		return v.validateTable(ctx, value, fields...)
	case *models.TableExport:
		if value == nil {
			return ErrUnsupportedType
		}
		return v.validateTable(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *BundleValidator) validateBundle(ctx context.Context, bundle models.Bundle, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTableNames, FieldColumnNames, FieldColumnSets}
	}

	if slices.Contains(fields, FieldTableNames) {
		seen := make(map[string]struct{}, len(bundle.Tables))
		for _, table := range bundle.Tables {
			if _, ok := seen[table.Name]; ok {
				return fmt.Errorf("%w: %q", ErrDuplicateTable, table.Name)
			}
			seen[table.Name] = struct{}{}
		}
	}

	for _, table := range bundle.Tables {
		if err := v.validateTable(ctx, table, fields...); err != nil {
			return err
		}
	}

	return nil
}

func (v *BundleValidator) validateTable(_ context.Context, table models.TableExport, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTableNames, FieldColumnNames, FieldColumnSets}
	}

	for _, f := range fields {
		switch f {
		case FieldTableNames:
			if !isIdentifier(table.Name) {
				return fmt.Errorf("%w: %q", ErrInvalidTableName, table.Name)
			}

		case FieldColumnNames:
			for _, c := range tableColumns(table) {
				if !isIdentifier(c) {
					return fmt.Errorf("%w: %q in table %q", ErrInvalidColumnName, c, table.Name)
				}
			}

		case FieldColumnSets:
			if err := validateColumnSets(table); err != nil {
				return err
			}

		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// validateColumnSets compares every record against the first one. Column
// order may differ between records; the set of names may not.
func validateColumnSets(table models.TableExport) error {
	if len(table.Records) == 0 {
		return nil
	}

	want := sortedColumns(table.Records[0].Columns)
	for i, record := range table.Records {
		if record.Len() == 0 {
			return fmt.Errorf("%w: table %q row %d", ErrEmptyRecord, table.Name, i)
		}
		if got := sortedColumns(record.Columns); !slices.Equal(want, got) {
			return fmt.Errorf("%w: table %q row %d has %v, row 0 has %v",
				ErrInconsistentColumns, table.Name, i, record.Columns, table.Records[0].Columns)
		}
	}

	return nil
}

// tableColumns returns the declared columns, or the union of all record
// columns when none were declared.
func tableColumns(table models.TableExport) []string {
	if len(table.Columns) > 0 {
		return table.Columns
	}

	columns := make([]string, 0)
	for _, record := range table.Records {
		for _, c := range record.Columns {
			if !slices.Contains(columns, c) {
				columns = append(columns, c)
			}
		}
	}
	return columns
}

func sortedColumns(columns []string) []string {
	sorted := slices.Clone(columns)
	slices.Sort(sorted)
	return sorted
}

func isIdentifier(name string) bool {
	return len(name) <= maxIdentifierLength && identifierPattern.MatchString(name)
}
