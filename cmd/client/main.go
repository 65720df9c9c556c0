package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/internal/client"
	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/tui"
	"github.com/MKhiriev/lumina/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI, so logs only go to the file
	log := logger.NewFileLogger("lumina-client", cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	api, err := adapter.NewLuminaClient(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create lumina client")
	}

	version, err := api.Version(ctx)
	if err != nil {
		log.Warn().Err(err).Str("server", cfg.ServerURL).Msg("server version unavailable")
	} else {
		log.Info().Stringer("client", buildInfo).Str("server", cfg.ServerURL).Str("server_version", version).Msg("connected")
	}

	app := client.NewApp(tui.New(api, buildInfo, log), log)
	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		fmt.Fprintf(os.Stderr, "lumina: %v\n", err)
		os.Exit(1)
	}
}
