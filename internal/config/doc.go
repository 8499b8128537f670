// Package config provides configuration loading, merging, and resolution
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Literal defaults and environment variables, after BASE_DIR/.env has
//     been loaded without overriding variables that are already set
//  2. JSON or YAML config file named by CONFIG or -c/--config
//  3. Command-line flags
//
// The merged [StructuredConfig] is resolved once into an immutable
// [Settings] snapshot. DATABASE_URL, when set, replaces the POSTGRES_*
// values entirely.
//
// The main entry points are [Load] for the server and [LoadEnv] for the
// command-line tools.
package config
