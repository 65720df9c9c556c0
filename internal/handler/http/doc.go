// Package http implements the REST transport of the Lumina backend.
//
// Routes are mounted under /api/v1. Session resolution, per-session rate
// limiting, request tracing, access logging and response compression are
// handled here as middleware before requests reach the service layer.
// Every failure is written as a JSON body of the form {"message": ...}.
package http
