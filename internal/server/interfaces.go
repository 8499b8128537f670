package server

// Server defines the lifecycle contract for the servers managed by this
// package.
//
// RunServer blocks until a stop signal arrives or the listener fails;
// Shutdown releases resources.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
