// Package server runs the Lumina transport servers.
//
// It starts the HTTP API and the optional gRPC health endpoint, waits for a
// termination signal and shuts both down gracefully within the configured
// timeout.
package server
