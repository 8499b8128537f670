// Package server runs the web server shell.
//
// It owns the http.Server lifecycle: startup, stop-signal handling and
// graceful shutdown bounded by the configured timeout.
package server
