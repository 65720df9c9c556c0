package service

import (
	"context"

	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/models"
)

type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService resolves the version served by GET /version: the
// configured LUMINA_VERSION wins, otherwise the linker-injected build version
// is used. [ErrVersionIsNotSpecified] is returned when neither is set.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	version, source := cfg.Version, "config"
	if version == "" {
		version, source = build.BuildVersion(), "build"
	}
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().
		Str("func", "NewAppInfoService").
		Str("version", version).
		Str("source", source).
		Msg("app version resolved")

	return &appInfoService{version: version, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.version
}
