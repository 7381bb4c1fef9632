package server

// Server is the lifecycle contract for the servers this package manages.
//
// [Server.RunServer] blocks until shutdown is requested, either by an OS
// signal or by a call to [Server.Shutdown].
type Server interface {
	// RunServer starts the HTTP listener and the background workers and
	// blocks until the server stops.
	RunServer()

	// Shutdown stops accepting new requests, drains in-flight ones and
	// releases held resources.
	Shutdown()
}
