package adapter

import (
	"fmt"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
)

// agentQuery is the request half of the agent contract.
type agentQuery struct {
	Query string `json:"query"`
}

// NewRetrievalAgent returns the [RetrievalAgent] named by cfg.Transport.
func NewRetrievalAgent(cfg config.Agent, log *logger.Logger) (RetrievalAgent, error) {
	switch cfg.Transport {
	case config.AgentTransportHTTP, "":
		return NewHTTPRetrievalAgent(cfg, log)
	case config.AgentTransportExec:
		return NewExecRetrievalAgent(cfg, log)
	default:
		return nil, fmt.Errorf("%w: agent %q", ErrUnsupportedTransport, cfg.Transport)
	}
}
