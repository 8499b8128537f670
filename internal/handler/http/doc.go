// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware for the web
// process. Cross-cutting concerns such as host allow-listing, request
// tracing, access logging, security headers, rate limiting and CSRF
// protection are handled in this package before requests reach a handler.
package http
