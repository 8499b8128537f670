package config

import (
	"fmt"
	"time"
)

// StructuredConfig is the raw, mergeable form of the configuration. Every
// source (env, config file, flags) produces one of these; they are merged
// with later sources overriding non-empty values and then resolved into an
// immutable [Settings] snapshot by [Resolve].
//
// Values stay as close as possible to what the operator typed: DEBUG and
// ALLOWED_HOSTS are kept as strings and interpreted only during resolution.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//   - envDefault — literal fallback used when the variable is unset.
type StructuredConfig struct {
	// BaseDir is the project root. The .env file, logs/, staticfiles/ and
	// media/ are all located relative to it.
	// Env: BASE_DIR
	BaseDir string `env:"BASE_DIR" envDefault:"."`

	// App holds the core application values.
	App App

	// Database holds both ways of describing the database target.
	Database DatabaseSources

	// Server holds HTTP listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Upload holds the optional S3-compatible target for export bundles.
	Upload Upload `envPrefix:"EXPORT_S3_"`

	// ConfigFilePath is the optional path to a JSON or YAML config file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// SecretKey signs CSRF tokens and other keyed material.
	// Env: SECRET_KEY
	SecretKey string `env:"SECRET_KEY" envDefault:"dev-secret-key-insegura"`

	// Debug is the raw DEBUG value. Only the exact string "True" enables
	// debug mode; anything else, including "true" or "1", disables it.
	// Env: DEBUG
	Debug string `env:"DEBUG" envDefault:"True"`

	// AllowedHosts is the raw comma-separated host allow-list.
	// Env: ALLOWED_HOSTS
	AllowedHosts string `env:"ALLOWED_HOSTS" envDefault:"localhost,127.0.0.1,0.0.0.0"`

	// GoogleMapsAPIKey is handed to the front-end map widgets. No default.
	// Env: GOOGLE_MAPS_API_KEY
	GoogleMapsAPIKey string `env:"GOOGLE_MAPS_API_KEY"`
}

// DatabaseSources carries the two mutually exclusive database descriptions.
// When URL is non-empty it wins outright and Postgres is ignored.
type DatabaseSources struct {
	// URL is a full connection string such as
	// "postgres://user:pass@db:5432/mapa3_db" or "sqlite:///db.sqlite3".
	// Env: DATABASE_URL
	URL string `env:"DATABASE_URL"`

	// Postgres holds the discrete connection values.
	Postgres Postgres `envPrefix:"POSTGRES_"`
}

// Postgres holds discrete PostgreSQL connection values.
type Postgres struct {
	// Env: POSTGRES_DB
	DB string `env:"DB" envDefault:"mapa3_db"`
	// Env: POSTGRES_USER
	User string `env:"USER" envDefault:"mapa3_user"`
	// Env: POSTGRES_PASSWORD
	Password string `env:"PASSWORD" envDefault:"mapa3_password_2024"`
	// Env: POSTGRES_HOST
	Host string `env:"HOST" envDefault:"localhost"`
	// Env: POSTGRES_PORT
	Port string `env:"PORT" envDefault:"5432"`
}

// Server holds network and timeout settings for the HTTP listener.
type Server struct {
	// Address is the TCP address in "host:port" format.
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS" envDefault:"0.0.0.0:8000"`

	// ShutdownTimeout bounds graceful shutdown after a stop signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// ReadHeaderTimeout is passed to http.Server.
	// Env: SERVER_READ_HEADER_TIMEOUT
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`

	// RateLimitRPS is the per-client request rate; 0 disables limiting.
	// Env: SERVER_RATE_LIMIT_RPS
	RateLimitRPS float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`

	// RateLimitBurst is the per-client burst size.
	// Env: SERVER_RATE_LIMIT_BURST
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"0"`

	// TrustForwardedProto treats "X-Forwarded-Proto: https" as a secure
	// request. Enable it only behind a proxy that sets the header itself.
	// Env: SERVER_TRUST_FORWARDED_PROTO
	TrustForwardedProto bool `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// Upload describes an S3-compatible bucket export bundles are copied to.
// An empty Bucket disables uploading.
type Upload struct {
	// Env: EXPORT_S3_BUCKET
	Bucket string `env:"BUCKET"`
	// Env: EXPORT_S3_REGION
	Region string `env:"REGION"`
	// Endpoint overrides the AWS endpoint for MinIO and similar services.
	// Env: EXPORT_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: EXPORT_S3_ACCESS_KEY_ID
	AccessKeyID string `env:"ACCESS_KEY_ID"`
	// Env: EXPORT_S3_SECRET_ACCESS_KEY
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// Enabled reports whether a bucket is configured.
func (u Upload) Enabled() bool {
	return u.Bucket != ""
}

// Load builds the server [Settings] from all sources in priority order
// (last source wins for non-empty fields):
//  1. literal defaults and environment variables (after loading BASE_DIR/.env)
//  2. the JSON/YAML config file, if one is named
//  3. command-line flags
//
// It creates the logging directory as a side effect.
func Load(args []string) (*Settings, error) {
	raw, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFlags(args).
		withFile().
		build()
	if err != nil {
		return nil, err
	}

	return finish(raw)
}

// LoadEnv is [Load] without command-line flags. It is used by the one-shot
// tools that parse their own arguments.
func LoadEnv() (*Settings, error) {
	raw, err := newConfigBuilder().
		withDotEnv().
		withEnv().
		withFile().
		build()
	if err != nil {
		return nil, err
	}

	return finish(raw)
}

func finish(raw *StructuredConfig) (*Settings, error) {
	settings, err := Resolve(*raw)
	if err != nil {
		return nil, fmt.Errorf("error resolving settings: %w", err)
	}

	if err = ensureDir(settings.Logging.Dir); err != nil {
		return nil, err
	}

	return settings, nil
}
