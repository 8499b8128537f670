package export

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mapa3/distribucion-app/internal/logger"
	"github.com/mapa3/distribucion-app/internal/mock"
)

var (
	firstRun  = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	secondRun = time.Date(2024, 1, 15, 10, 30, 1, 0, time.UTC)
)

// newDjangoDB writes a small Django-shaped SQLite file and returns its path.
func newDjangoDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.sqlite3")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	// make sure the file exists even without statements
	_, err = db.Exec(`PRAGMA user_version = 1`)
	require.NoError(t, err)

	for _, stmt := range stmts {
		_, err = db.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	return path
}

var djangoSchema = []string{
	`CREATE TABLE rutas_ruta (id INTEGER PRIMARY KEY, nombre TEXT)`,
	`CREATE TABLE crm_cliente (id INTEGER PRIMARY KEY, nombre TEXT, creado DATETIME)`,
	`CREATE TABLE django_session (session_key TEXT PRIMARY KEY)`,
	`CREATE TABLE auth_user (id INTEGER PRIMARY KEY, username TEXT)`,
	`INSERT INTO crm_cliente VALUES (1, 'Ana <b>&', '2024-01-15 10:30:00')`,
	`INSERT INTO crm_cliente VALUES (2, 'Ñuñoa', NULL)`,
	`INSERT INTO django_session VALUES ('abc')`,
	`INSERT INTO auth_user VALUES (1, 'admin')`,
}

const djangoBundle = `{
  "crm_cliente": [
    {
      "id": 1,
      "nombre": "Ana <b>&",
      "creado": "2024-01-15 10:30:00"
    },
    {
      "id": 2,
      "nombre": "Ñuñoa",
      "creado": null
    }
  ],
  "rutas_ruta": []
}
`

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRun(t *testing.T) {
	source := newDjangoDB(t, djangoSchema...)
	var out bytes.Buffer

	result, err := Run(context.Background(), Options{
		Source: source,
		Out:    &out,
		Now:    fixedClock(firstRun),
	}, logger.Nop())
	require.NoError(t, err)

	wantPath := filepath.Join(filepath.Dir(source), "sqlite_export_20240115_103000.json")
	assert.Equal(t, wantPath, result.Path)
	assert.Empty(t, result.UploadedTo)
	assert.Equal(t, 2, result.TotalRecords)
	require.Len(t, result.Tables, 2)
	assert.Equal(t, "crm_cliente", result.Tables[0].Table)
	assert.Equal(t, 2, result.Tables[0].Records)
	assert.Equal(t, "rutas_ruta", result.Tables[1].Table)
	assert.Equal(t, 0, result.Tables[1].Records)

	content, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	assert.Equal(t, djangoBundle, string(content))

	printed := out.String()
	assert.Contains(t, printed, "SQLite -> PostgreSQL DATA EXPORTER")
	assert.Contains(t, printed, "Tables found: 2")
	assert.Contains(t, printed, "Exporting: crm_cliente... 2 records")
	assert.Contains(t, printed, "Total tables: 2")
	assert.Contains(t, printed, "Total records: 2")
	assert.Contains(t, printed, "docker cp sqlite_export_20240115_103000.json")
}

// TestRun_LogsSourceReads verifies that the SQLite reads are logged through
// the logger handed to Run, tagged with the db component.
func TestRun_LogsSourceReads(t *testing.T) {
	source := newDjangoDB(t, djangoSchema...)
	var buf bytes.Buffer
	log := &logger.Logger{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}

	_, err := Run(context.Background(), Options{
		Source: source, OutputDir: t.TempDir(), Out: io.Discard, Now: fixedClock(firstRun),
	}, log)
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "listed tables")
	assert.Contains(t, logged, "read table")
	assert.Contains(t, logged, `"component":"db"`)
	assert.Contains(t, logged, `"table":"crm_cliente"`)
}

func TestRun_Repeatable(t *testing.T) {
	source := newDjangoDB(t, djangoSchema...)
	outputDir := t.TempDir()

	first, err := Run(context.Background(), Options{
		Source: source, OutputDir: outputDir, Out: io.Discard, Now: fixedClock(firstRun),
	}, logger.Nop())
	require.NoError(t, err)

	second, err := Run(context.Background(), Options{
		Source: source, OutputDir: outputDir, Out: io.Discard, Now: fixedClock(secondRun),
	}, logger.Nop())
	require.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)

	a, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	b, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// the source is opened read-only and stays as it was
	entries, err := os.ReadDir(filepath.Dir(source))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.sqlite3", entries[0].Name())
}

func TestRun_SameSecondKeepsFirstFile(t *testing.T) {
	source := newDjangoDB(t, djangoSchema...)
	opts := Options{Source: source, Out: io.Discard, Now: fixedClock(firstRun)}

	_, err := Run(context.Background(), opts, logger.Nop())
	require.NoError(t, err)

	_, err = Run(context.Background(), opts, logger.Nop())
	assert.ErrorIs(t, err, ErrOutputExists)
}

func TestRun_SourceNotFound(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	result, err := Run(context.Background(), Options{
		Source: filepath.Join(dir, "db.sqlite3"),
		Out:    &out,
	}, logger.Nop())
	require.ErrorIs(t, err, ErrSourceNotFound)
	assert.Nil(t, result)

	assert.Contains(t, out.String(), "Could not find db.sqlite3")

	// nothing is created, not even the database file
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_OnlyFrameworkTables(t *testing.T) {
	source := newDjangoDB(t,
		`CREATE TABLE django_migrations (id INTEGER PRIMARY KEY, app TEXT)`,
		`CREATE TABLE auth_group (id INTEGER PRIMARY KEY)`,
	)
	var out bytes.Buffer

	result, err := Run(context.Background(), Options{
		Source: source, Out: &out, Now: fixedClock(firstRun),
	}, logger.Nop())
	require.NoError(t, err)

	assert.Empty(t, result.Tables)
	assert.Zero(t, result.TotalRecords)
	assert.Contains(t, out.String(), "Tables found: 0")

	content, err := os.ReadFile(result.Path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(content))
}

func TestRun_ExcludePrefixesOverride(t *testing.T) {
	source := newDjangoDB(t, djangoSchema...)

	result, err := Run(context.Background(), Options{
		Source:          source,
		ExcludePrefixes: []string{"rutas_", "django_"},
		Out:             io.Discard,
		Now:             fixedClock(firstRun),
	}, logger.Nop())
	require.NoError(t, err)

	got := make([]string, 0, len(result.Tables))
	for _, table := range result.Tables {
		got = append(got, table.Table)
	}
	assert.Equal(t, []string{"auth_user", "crm_cliente"}, got)
}

func TestRun_Upload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := newDjangoDB(t, djangoSchema...)
	name := FileName(firstRun)

	uploader := mock.NewMockFilesystem(ctrl)
	gomock.InOrder(
		uploader.EXPECT().
			Write(gomock.Any(), name, gomock.Any(), int64(len(djangoBundle))).
			DoAndReturn(func(_ context.Context, _ string, r io.Reader, _ int64) error {
				content, err := io.ReadAll(r)
				require.NoError(t, err)
				assert.Equal(t, djangoBundle, string(content))
				return nil
			}),
		uploader.EXPECT().URL(name).Return("s3://mapa3-exports/"+name),
	)

	var out bytes.Buffer
	result, err := Run(context.Background(), Options{
		Source:   source,
		Uploader: uploader,
		Out:      &out,
		Now:      fixedClock(firstRun),
	}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "s3://mapa3-exports/"+name, result.UploadedTo)
	assert.Contains(t, out.String(), "Uploaded to: s3://mapa3-exports/"+name)
	assert.Contains(t, out.String(), "import s3://mapa3-exports/"+name)
}

func TestRun_UploadFailureKeepsLocalFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := newDjangoDB(t, djangoSchema...)
	boom := errors.New("access denied")

	uploader := mock.NewMockFilesystem(ctrl)
	uploader.EXPECT().Write(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

	result, err := Run(context.Background(), Options{
		Source:   source,
		Uploader: uploader,
		Out:      io.Discard,
		Now:      fixedClock(firstRun),
	}, logger.Nop())
	require.ErrorIs(t, err, boom)
	require.NotNil(t, result)
	assert.Empty(t, result.UploadedTo)

	_, statErr := os.Stat(result.Path)
	assert.NoError(t, statErr)
}
