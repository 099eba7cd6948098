package server

// Server is the lifecycle contract shared by the transport servers this
// package manages. RunServer blocks until shutdown is requested; Shutdown
// stops accepting new requests and drains the ones in flight.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
