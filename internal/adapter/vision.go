package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
)

// NewVisionClient returns the [VisionClient] named by cfg.Provider.
func NewVisionClient(ctx context.Context, cfg config.Vision, log *logger.Logger) (VisionClient, error) {
	switch cfg.Provider {
	case config.VisionProviderOpenAI, "":
		return NewOpenAIVisionClient(cfg, log)
	case config.VisionProviderGemini:
		return NewGeminiVisionClient(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: vision %q", ErrUnsupportedTransport, cfg.Provider)
	}
}
