package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixed values that are not read from the environment.
var (
	defaultCSRFTrustedOrigins = []string{
		"http://localhost:8000",
		"http://127.0.0.1:8000",
		"https://localhost:8000",
		"http://0.0.0.0:8000",
	}

	defaultPasswordValidators = []string{
		"UserAttributeSimilarityValidator",
		"MinimumLengthValidator",
		"CommonPasswordValidator",
		"NumericPasswordValidator",
	}
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelError = "error"

	xFrameDeny = "DENY"
)

// Settings is the read-only snapshot produced once at startup. Nothing in the
// application mutates it after [Load] returns.
type Settings struct {
	BaseDir          string
	SecretKey        string
	Debug            bool
	AllowedHosts     []string
	GoogleMapsAPIKey string

	Database Database
	CSRF     CSRF
	Security Security
	I18N     I18N
	Static   Static
	Auth     Auth
	Logging  Logging
	Server   Server
	Upload   Upload
}

// CSRF holds cross-site request forgery protection settings.
type CSRF struct {
	TrustedOrigins []string
	CookieHTTPOnly bool
	CookieSameSite string
	UseSessions    bool
	CookieSecure   bool
}

// Security holds the hardening switches that are only turned on outside
// debug mode. XFrameOptions is always set.
type Security struct {
	SSLRedirect         bool
	SessionCookieSecure bool
	BrowserXSSFilter    bool
	ContentTypeNosniff  bool
	XFrameOptions       string
}

// I18N holds internationalization flags.
type I18N struct {
	LanguageCode string
	TimeZone     string
	UseI18N      bool
	UseTZ        bool
}

// Static holds static and uploaded media locations.
type Static struct {
	URL       string
	Root      string
	MediaURL  string
	MediaRoot string
}

// Auth holds login redirects and the password validator list.
type Auth struct {
	LoginURL           string
	LoginRedirectURL   string
	LogoutRedirectURL  string
	PasswordValidators []string
	DefaultAutoField   string
}

// Logging describes where and how verbosely logs are written.
type Logging struct {
	// Dir is created at startup if it does not exist.
	Dir string

	// AppFile receives every entry at Level or above.
	AppFile string

	// ErrorFile receives only error entries and above.
	ErrorFile string

	// Level is the root level name understood by zerolog.
	Level string

	// ErrorLevel is the threshold for ErrorFile.
	ErrorLevel string

	// Components maps a component logger name to its level name.
	Components map[string]string
}

// Resolve turns a merged [StructuredConfig] into [Settings]. Missing values
// were already defaulted by the env layer; malformed values are not
// validated. The only error is an unusable DATABASE_URL.
func Resolve(raw StructuredConfig) (*Settings, error) {
	baseDir := raw.BaseDir
	if baseDir == "" {
		baseDir = "."
	}
	baseDir = filepath.Clean(baseDir)

	debug := raw.App.Debug == "True"

	db, err := resolveDatabase(raw.Database)
	if err != nil {
		return nil, err
	}

	verbose := levelInfo
	if debug {
		verbose = levelDebug
	}

	logsDir := filepath.Join(baseDir, "logs")

	return &Settings{
		BaseDir:          baseDir,
		SecretKey:        raw.App.SecretKey,
		Debug:            debug,
		AllowedHosts:     strings.Split(raw.App.AllowedHosts, ","),
		GoogleMapsAPIKey: raw.App.GoogleMapsAPIKey,
		Database:         db,
		CSRF: CSRF{
			TrustedOrigins: append([]string(nil), defaultCSRFTrustedOrigins...),
			CookieHTTPOnly: false,
			CookieSameSite: "Lax",
			UseSessions:    false,
			CookieSecure:   !debug,
		},
		Security: Security{
			SSLRedirect:         !debug,
			SessionCookieSecure: !debug,
			BrowserXSSFilter:    !debug,
			ContentTypeNosniff:  !debug,
			XFrameOptions:       xFrameDeny,
		},
		I18N: I18N{
			LanguageCode: "es-cl",
			TimeZone:     "America/Santiago",
			UseI18N:      true,
			UseTZ:        true,
		},
		Static: Static{
			URL:       "/static/",
			Root:      filepath.Join(baseDir, "staticfiles"),
			MediaURL:  "/media/",
			MediaRoot: filepath.Join(baseDir, "media"),
		},
		Auth: Auth{
			LoginURL:           "/admin/login/",
			LoginRedirectURL:   "/",
			LogoutRedirectURL:  "/admin/login/",
			PasswordValidators: append([]string(nil), defaultPasswordValidators...),
			DefaultAutoField:   "BigAutoField",
		},
		Logging: Logging{
			Dir:        logsDir,
			AppFile:    filepath.Join(logsDir, "app.log"),
			ErrorFile:  filepath.Join(logsDir, "errors.log"),
			Level:      levelInfo,
			ErrorLevel: levelError,
			Components: map[string]string{
				"http":  levelInfo,
				"db":    verbose,
				"crm":   verbose,
				"rutas": verbose,
			},
		},
		Server: raw.Server,
		Upload: raw.Upload,
	}, nil
}

// ensureDir creates dir and its parents if missing. Calling it on an
// existing directory is a no-op.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating directory %s: %w", dir, err)
	}
	return nil
}
