// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SessionSignKey == "" {
		return fmt.Errorf("%w: empty session sign key", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	switch cfg.Storage.Attachments.Backend {
	case AttachmentsLocal:
	case AttachmentsMinIO:
		if cfg.Storage.Attachments.MinIO.Endpoint == "" || cfg.Storage.Attachments.MinIO.Bucket == "" {
			return fmt.Errorf("%w: minio endpoint and bucket are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unsupported attachment backend %q", ErrInvalidStorageConfigs, cfg.Storage.Attachments.Backend)
	}
	if cfg.Storage.Attachments.MaxBytes <= 0 {
		return fmt.Errorf("%w: attachment size limit must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs)
	}

	if err := cfg.Adapter.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAdapterConfigs, err)
	}

	if cfg.Workers.FeedbackQueueSize <= 0 || cfg.Workers.FeedbackConcurrency <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.RateLimit.Enabled && (cfg.RateLimit.Capacity <= 0 || cfg.RateLimit.RefillInterval <= 0) {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}

func (a *Adapter) validate() error {
	switch a.Agent.Transport {
	case AgentTransportHTTP:
		if a.Agent.Address == "" {
			return fmt.Errorf("agent address is required for the http transport")
		}
	case AgentTransportExec:
		if a.Agent.Command == "" {
			return fmt.Errorf("agent command is required for the exec transport")
		}
	default:
		return fmt.Errorf("unsupported agent transport %q", a.Agent.Transport)
	}
	if a.Agent.Timeout <= 0 {
		return fmt.Errorf("agent timeout must be positive")
	}

	switch a.Vision.Provider {
	case VisionProviderOpenAI:
		if a.Vision.BaseURL == "" {
			return fmt.Errorf("vision base url is required for the openai provider")
		}
	case VisionProviderGemini:
		if a.Vision.APIKey == "" {
			return fmt.Errorf("vision api key is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unsupported vision provider %q", a.Vision.Provider)
	}
	if a.Vision.Timeout <= 0 {
		return fmt.Errorf("vision timeout must be positive")
	}

	switch a.Feedback.Sink {
	case FeedbackSinkNone:
	case FeedbackSinkHTTP:
		if a.Feedback.Address == "" {
			return fmt.Errorf("feedback address is required for the http sink")
		}
	case FeedbackSinkAMQP:
		if a.Feedback.AMQPURL == "" || a.Feedback.Queue == "" {
			return fmt.Errorf("amqp url and queue are required for the amqp sink")
		}
	default:
		return fmt.Errorf("unsupported feedback sink %q", a.Feedback.Sink)
	}

	return nil
}
