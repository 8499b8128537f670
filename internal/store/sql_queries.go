package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/mapa3/distribucion-app/models"
)

const (
	// listColumns returns a table's columns in declaration order, generated
	// columns included (hidden 2 and 3). Hidden columns of virtual tables
	// (hidden 1) are left out. The table name is bound as an argument.
	listColumns = `SELECT name, type FROM pragma_table_xinfo(?) WHERE hidden IN (0, 2, 3) ORDER BY cid;`

	// setTimeZoneUTC makes timestamptz literals without an offset UTC for the
	// rest of the transaction.
	setTimeZoneUTC = `SET LOCAL TIME ZONE 'UTC';`
)

// likeEscaper escapes the LIKE wildcards so a prefix is matched literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// quoteIdent quotes a table or column name. The result is valid for both
// SQLite and PostgreSQL.
func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// buildListTablesQuery selects the names of ordinary tables, skipping every
// table whose name starts with one of excludePrefixes. SQLite's LIKE is
// ASCII case-insensitive, so "Django_x" is skipped for "django_".
func buildListTablesQuery(excludePrefixes []string) (string, []any, error) {
	query := sq.Select("name").
		From("sqlite_master").
		Where(sq.Eq{"type": "table"}).
		OrderBy("name").
		PlaceholderFormat(sq.Question)

	for _, prefix := range excludePrefixes {
		if prefix == "" {
			continue
		}
		query = query.Where(sq.Expr(`name NOT LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%"))
	}

	return query.ToSql()
}

// buildSelectTableQuery selects every row of table. Each column is wrapped
// in a unary plus, which turns it into an expression without a declared
// type, so the driver hands back the stored value untouched instead of
// parsing DATE and DATETIME columns.
func buildSelectTableQuery(table string, columns []string) (string, []any, error) {
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("%w: table %q has no columns", ErrBuildingSQLQuery, table)
	}

	selected := make([]string, 0, len(columns))
	for _, c := range columns {
		q := quoteIdent(c)
		selected = append(selected, "+"+q+" AS "+q)
	}

	return sq.Select(selected...).
		From(quoteIdent(table)).
		PlaceholderFormat(sq.Question).
		ToSql()
}

// buildInsertBatchQuery builds one multi-row INSERT for records, all of which
// carry columns in the same order. With skipConflicts rows that violate a
// unique constraint are silently dropped.
func buildInsertBatchQuery(table string, columns []string, records []models.Record, skipConflicts bool) (string, []any, error) {
	if len(records) == 0 {
		return "", nil, fmt.Errorf("%w: no records for table %q", ErrBuildingSQLQuery, table)
	}

	quoted := make([]string, 0, len(columns))
	for _, c := range columns {
		quoted = append(quoted, quoteIdent(c))
	}

	query := sq.Insert(quoteIdent(table)).
		Columns(quoted...).
		PlaceholderFormat(sq.Dollar)

	for i, record := range records {
		values := make([]any, 0, len(columns))
		for _, c := range columns {
			v, ok := record.Get(c)
			if !ok {
				return "", nil, fmt.Errorf("%w: table %q row %d lacks column %q", ErrBuildingSQLQuery, table, i, c)
			}
			text, err := toTextValue(v)
			if err != nil {
				return "", nil, fmt.Errorf("%w: table %q row %d column %q: %w", ErrBuildingSQLQuery, table, i, c, err)
			}
			values = append(values, text)
		}
		query = query.Values(values...)
	}

	if skipConflicts {
		query = query.Suffix("ON CONFLICT DO NOTHING")
	}

	return query.ToSql()
}

// buildResetSequenceQuery moves the sequence behind table.id past the
// highest imported id. For an empty table the sequence restarts at 1. Tables
// whose id is not backed by a sequence are left alone because setval on a
// NULL sequence name returns NULL.
func buildResetSequenceQuery(table string) (string, []any, error) {
	id := quoteIdent("id")
	return sq.Select().
		Column(fmt.Sprintf(
			"setval(pg_get_serial_sequence(?, 'id'), COALESCE(MAX(%s), 1), MAX(%s) IS NOT NULL)", id, id),
			quoteIdent(table)).
		From(quoteIdent(table)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildInsertImportRunQuery records a finished import in data_imports.
func buildInsertImportRunQuery(run models.ImportRun) (string, []any, error) {
	return sq.Insert("data_imports").
		Columns("id", "source", "tables", "rows", "started_at", "finished_at").
		Values(run.ID, run.Source, run.Tables, run.Rows, run.StartedAt, run.FinishedAt).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
