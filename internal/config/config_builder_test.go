package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and no layers.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Nil(t, b.env)
	assert.Nil(t, b.file)
	assert.Nil(t, b.flags)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no layers returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LayerOrder verifies env < file < flags for non-empty fields and
// that empty fields never clear a lower layer.
func TestBuild_LayerOrder(t *testing.T) {
	b := newConfigBuilder()
	b.flags = &StructuredConfig{Server: Server{Address: ":3"}}
	b.file = &StructuredConfig{
		App:    App{SecretKey: "file"},
		Server: Server{Address: ":2"},
	}
	b.env = &StructuredConfig{
		App:    App{SecretKey: "env", Debug: "True"},
		Server: Server{Address: ":1"},
	}

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, ":3", cfg.Server.Address)
	assert.Equal(t, "file", cfg.App.SecretKey)
	assert.Equal(t, "True", cfg.App.Debug)
}

// TestBuild_FileCanDisableDebug verifies that a string DEBUG value in a
// higher layer replaces the env default.
func TestBuild_FileCanDisableDebug(t *testing.T) {
	b := newConfigBuilder()
	b.env = &StructuredConfig{App: App{Debug: "True"}}
	b.file = &StructuredConfig{App: App{Debug: "False"}}

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "False", cfg.App.Debug)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	isolateEnv(t)
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("POSTGRES_HOST", "env-host")

	b := newConfigBuilder().withEnv()

	require.NotNil(t, b.env)
	assert.Equal(t, "env-secret", b.env.App.SecretKey)
	assert.Equal(t, "env-host", b.env.Database.Postgres.Host)
	assert.NoError(t, b.err)
}

// TestWithEnv_RecordsError verifies that a malformed value is recorded.
func TestWithEnv_RecordsError(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SERVER_RATE_LIMIT_BURST", "many")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Nil(t, b.env)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_ReturnsBuilder verifies the fluent interface.
func TestWithFlags_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.NotNil(t, b.flags)
}

// TestWithFlags_RecordsError verifies that a bad command line is recorded.
func TestWithFlags_RecordsError(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"--unknown"})
	assert.Error(t, b.err)
	assert.Nil(t, b.flags)
}

// ── withFile ──────────────────────────────────────────────────────────────────

// TestWithFile_NoOp_WhenNoPathSet verifies that withFile does nothing when
// no layer names a file.
func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.env = &StructuredConfig{}
	b.withFile()

	assert.Nil(t, b.file)
	assert.NoError(t, b.err)
}

// TestWithFile_FlagPathWins verifies that -c beats CONFIG.
func TestWithFile_FlagPathWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, "env.json", `{"app": {"secret_key": "env-file"}}`)
	flagPath := writeFile(t, dir, "flag.json", `{"app": {"secret_key": "flag-file"}}`)

	b := newConfigBuilder()
	b.env = &StructuredConfig{ConfigFilePath: envPath}
	b.flags = &StructuredConfig{ConfigFilePath: flagPath}
	b.withFile()

	require.NoError(t, b.err)
	require.NotNil(t, b.file)
	assert.Equal(t, "flag-file", b.file.App.SecretKey)
}

// TestWithFile_RecordsError verifies that an unreadable file is recorded.
func TestWithFile_RecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.env = &StructuredConfig{ConfigFilePath: "/definitely/missing.json"}
	b.withFile()

	assert.Error(t, b.err)
	assert.Nil(t, b.file)
}
