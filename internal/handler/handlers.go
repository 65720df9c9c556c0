package handler

import (
	"errors"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/handler/grpc"
	"github.com/MKhiriev/lumina/internal/handler/http"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/service"
)

// ErrNoTransport is returned when the server config enables neither the
// HTTP API nor the gRPC health endpoint.
var ErrNoTransport = errors.New("neither an HTTP nor a gRPC address is configured")

// Handlers holds the transports the server listens on. A nil field means the
// transport is disabled.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. probe backs the
// gRPC health status and may be nil.
func NewHandlers(services *service.Services, probe grpc.Pinger, cfg config.Server, logger *logger.Logger, opts ...http.Option) (*Handlers, error) {
	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, logger, opts...)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(probe, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, ErrNoTransport
	}

	logger.Info().
		Str("func", "NewHandlers").
		Bool("http", handlers.HTTP != nil).
		Bool("grpc", handlers.GRPC != nil).
		Msg("transport handlers created")

	return handlers, nil
}
