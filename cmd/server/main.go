package main

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/lumina/internal/adapter"
	"github.com/MKhiriev/lumina/internal/config"
	"github.com/MKhiriev/lumina/internal/handler"
	"github.com/MKhiriev/lumina/internal/handler/http"
	"github.com/MKhiriev/lumina/internal/limiter"
	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/server"
	"github.com/MKhiriev/lumina/internal/service"
	"github.com/MKhiriev/lumina/internal/store"
	"github.com/MKhiriev/lumina/internal/workers"
	"github.com/MKhiriev/lumina/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("lumina-server").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.New(logger.Options{
		Role:       "lumina-server",
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	agent, err := adapter.NewRetrievalAgent(cfg.Adapter.Agent, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating retrieval agent")
	}

	vision, err := adapter.NewVisionClient(ctx, cfg.Adapter.Vision, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating vision client")
	}
	defer closeIfCloser(vision, log)

	sink, err := adapter.NewFeedbackSink(cfg.Adapter.Feedback, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating feedback sink")
	}
	defer closeIfCloser(sink, log)

	relay := workers.NewFeedbackRelay(sink, cfg.Workers, cfg.Adapter.Feedback.Timeout, log)
	backgroundWorkers := workers.NewWorkers(relay)

	services, err := service.NewServices(storages, service.Collaborators{
		Agent:         agent,
		Vision:        vision,
		FeedbackQueue: relay,
	}, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	chatLimiter := limiter.New(ctx, cfg.RateLimit, cfg.App.SessionSignKey, log)

	handlers, err := handler.NewHandlers(services, storages.DB, cfg.Server, log,
		http.WithLimiter(chatLimiter),
		http.WithMaxAttachmentBytes(cfg.Storage.Attachments.MaxBytes),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workersCtx, cancelWorkers := context.WithCancel(ctx)
	backgroundWorkers.Run(workersCtx)

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	// pending feedback is flushed before the sink is closed
	backgroundWorkers.Stop()
	cancelWorkers()
}

func closeIfCloser(v any, log *logger.Logger) {
	if c, ok := v.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Err(err).Msg("error closing collaborator")
		}
	}
}
