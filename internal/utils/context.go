// Package utils provides small helpers shared by the commands and the HTTP
// layer: typed context keys, UUIDv7 generation and JSON response writing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// TraceIDCtxKey is the key the HTTP layer stores the request trace id under.
//
//	ctx := context.WithValue(ctx, utils.TraceIDCtxKey, "0190f5e2-...")
var TraceIDCtxKey = contextKey("traceID")

// ImportRunIDCtxKey is the key an import run id is stored under while the
// run is in progress.
var ImportRunIDCtxKey = contextKey("importRunID")

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext retrieves the trace id stored by [WithTraceID].
// ok is false when the value is missing or is not a non-empty string.
func GetTraceIDFromContext(ctx context.Context) (string, bool) {
	traceID, ok := ctx.Value(TraceIDCtxKey).(string)
	return traceID, ok && traceID != ""
}

// WithImportRunID returns a copy of ctx carrying runID.
func WithImportRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ImportRunIDCtxKey, runID)
}

// GetImportRunIDFromContext retrieves the run id stored by [WithImportRunID].
func GetImportRunIDFromContext(ctx context.Context) (string, bool) {
	runID, ok := ctx.Value(ImportRunIDCtxKey).(string)
	return runID, ok && runID != ""
}
