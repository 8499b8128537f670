// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// distribucion-app commands.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Application code should pass *Logger by pointer and obtain request-scoped
// loggers via FromContext or FromRequest.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mapa3/distribucion-app/internal/config"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API while allowing the
// application to add helper methods without modifying the upstream type.
type Logger struct {
	zerolog.Logger

	// levels maps component names to their minimum level. Shared with
	// child loggers.
	levels map[string]zerolog.Level

	// files are the log files opened by New; nil for children.
	files []*os.File
}

func init() {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name() // return function name
	}
	zerolog.CallerFieldName = "func"
}

// NewConsole constructs a *Logger that writes human readable entries at
// Info level and above to console only. It opens no files.
func NewConsole(role string, console io.Writer) *Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime}).
		Level(zerolog.InfoLevel).
		With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{Logger: logger}
}

// New constructs the application logger described by cfg.
//
// Every entry is fanned out to three sinks:
//   - console, in human readable form, at whatever level the emitting
//     logger allows;
//   - cfg.AppFile, JSON, at cfg.Level and above;
//   - cfg.ErrorFile, JSON, at cfg.ErrorLevel and above.
//
// The root logger runs at cfg.Level; loggers returned by [Logger.Component]
// use the level configured for that component. The log directory must
// already exist. Call Close to release the files.
func New(role string, cfg config.Logging, console io.Writer) (*Logger, error) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	rootLevel, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level: %w", err)
	}
	errorLevel, err := zerolog.ParseLevel(cfg.ErrorLevel)
	if err != nil {
		return nil, fmt.Errorf("error parsing error log level: %w", err)
	}

	levels := make(map[string]zerolog.Level, len(cfg.Components))
	for name, raw := range cfg.Components {
		lvl, err := zerolog.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("error parsing level of %q logger: %w", name, err)
		}
		levels[name] = lvl
	}

	appFile, err := openLogFile(cfg.AppFile)
	if err != nil {
		return nil, err
	}
	errorFile, err := openLogFile(cfg.ErrorFile)
	if err != nil {
		_ = appFile.Close()
		return nil, err
	}

	writer := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.DateTime},
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: appFile},
			Level:  rootLevel,
		},
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: errorFile},
			Level:  errorLevel,
		},
	)

	logger := zerolog.New(writer).Level(rootLevel).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{
		Logger: logger,
		levels: levels,
		files:  []*os.File{appFile, errorFile},
	}, nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	return f, nil
}

// Close closes the log files opened by [New]. It is a no-op for every other
// logger.
func (l *Logger) Close() error {
	var errs []error
	for _, f := range l.files {
		errs = append(errs, f.Close())
	}
	l.files = nil
	return errors.Join(errs...)
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger(), levels: l.levels}
}

// Component returns a child logger tagged with a "component" field. When a
// level was configured for name it replaces the inherited one.
func (l *Logger) Component(name string) *Logger {
	child := l.With().Str("component", name).Logger()
	if lvl, ok := l.levels[name]; ok {
		child = child.Level(lvl)
	}
	return &Logger{Logger: child, levels: l.levels}
}

// FromRequest extracts the zerolog.Logger stored in the request's context by
// zerolog's log.Ctx helper and returns it as a *Logger.
//
// This is typically used in HTTP middleware that has previously attached a
// request-scoped logger to the context via zerolog's WithContext.
func FromRequest(r *http.Request) *Logger {
	return &Logger{Logger: *log.Ctx(r.Context())}
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger
// (disabled unless configured), so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
