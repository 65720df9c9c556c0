package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/lumina/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health-check name reported next to the overall ("")
// status.
const ServiceName = "lumina.v1.Chat"

const (
	defaultProbeInterval = 10 * time.Second
	probeTimeout         = 2 * time.Second
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1 service. The reported status follows
// the readiness of the database: SERVING while pings succeed, NOT_SERVING
// otherwise.
type Handler struct {
	health *health.Server
	probe  Pinger

	interval time.Duration

	logger *logger.Logger
}

// NewHandler constructs a [Handler]. A nil probe reports SERVING for as long
// as the handler runs.
func NewHandler(probe Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		health:   health.NewServer(),
		probe:    probe,
		interval: defaultProbeInterval,
		logger:   logger,
	}
}

// Register attaches the health and reflection services to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)
}

// Watch probes readiness until ctx is done, then marks every service as
// NOT_SERVING so that clients drain before the server stops.
func (h *Handler) Watch(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.check(ctx)
	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.check(ctx)
		}
	}
}

func (h *Handler) check(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING

	if h.probe != nil {
		pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := h.probe.PingContext(pingCtx)
		cancel()

		if err != nil {
			h.logger.Warn().Err(err).Str("func", "grpc.Handler.check").Msg("readiness probe failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}
