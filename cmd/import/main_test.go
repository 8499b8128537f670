package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapa3/distribucion-app/internal/store"
	"github.com/mapa3/distribucion-app/models"
)

func TestParseArgs(t *testing.T) {
	var stderr bytes.Buffer

	got, err := parseArgs([]string{"sqlite_export_20240115_103000.json"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "sqlite_export_20240115_103000.json", got.source)
	assert.Equal(t, store.DefaultBatchSize, got.opts.BatchSize)
	assert.False(t, got.opts.SkipConflicts)

	got, err = parseArgs([]string{"--batch-size", "50", "--skip-conflicts", "s3://exports/a.json"}, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "s3://exports/a.json", got.source)
	assert.Equal(t, 50, got.opts.BatchSize)
	assert.True(t, got.opts.SkipConflicts)
}

func TestParseArgs_FileRequired(t *testing.T) {
	var stderr bytes.Buffer

	_, err := parseArgs(nil, &stderr)
	assert.Error(t, err)
}

func TestRun_NonPostgresDatabase(t *testing.T) {
	t.Setenv("BASE_DIR", t.TempDir())
	t.Setenv("CONFIG", "")
	t.Setenv("DATABASE_URL", "sqlite:///db.sqlite3")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"bundle.json"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), store.ErrUnsupportedEngine.Error())
}

func TestPrintSummary(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	var out bytes.Buffer

	printSummary(&out, models.ImportRun{
		ID:         "0190f1c2-7a3b-7c4d-8e5f-001122334455",
		Source:     "sqlite_export_20240115_103000.json",
		Tables:     3,
		Rows:       120,
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	})

	assert.Equal(t, "Imported from: sqlite_export_20240115_103000.json\n"+
		"Run id: 0190f1c2-7a3b-7c4d-8e5f-001122334455\n"+
		"Total tables: 3\n"+
		"Total rows: 120\n"+
		"Took: 1.5s\n", out.String())
}
