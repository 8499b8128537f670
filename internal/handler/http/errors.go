package http

import "errors"

// Sentinel errors logged by the request-filtering middleware. Callers can
// match against them with [errors.Is].
var (
	// ErrHostNotAllowed is logged when the request's Host header matches none
	// of the configured allowed hosts.
	ErrHostNotAllowed = errors.New("host is not allowed")

	// ErrTooManyRequests is logged when a client exceeds its request rate.
	ErrTooManyRequests = errors.New("too many requests")
)
