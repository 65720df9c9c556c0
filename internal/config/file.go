package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for file decoding. Durations accept
// both Go duration strings ("30s") and integer nanoseconds.
type fileConfig struct {
	App struct {
		Version         string   `json:"version" yaml:"version"`
		SessionSignKey  string   `json:"session_sign_key" yaml:"session_sign_key"`
		SessionIssuer   string   `json:"session_issuer" yaml:"session_issuer"`
		SessionDuration Duration `json:"session_duration" yaml:"session_duration"`
		BcryptCost      int      `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	} `json:"app" yaml:"app"`

	Log struct {
		Level      string `json:"level" yaml:"level"`
		FilePath   string `json:"file_path" yaml:"file_path"`
		MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups int    `json:"max_backups" yaml:"max_backups"`
		MaxAgeDays int    `json:"max_age_days" yaml:"max_age_days"`
	} `json:"log" yaml:"log"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver" yaml:"driver"`
			DSN          string `json:"dsn" yaml:"dsn"`
			MaxOpenConns int    `json:"max_open_conns" yaml:"max_open_conns"`
		} `json:"db" yaml:"db"`

		Attachments struct {
			Backend  string `json:"backend" yaml:"backend"`
			Dir      string `json:"dir" yaml:"dir"`
			MaxBytes int64  `json:"max_bytes" yaml:"max_bytes"`
			MinIO    MinIO  `json:"minio" yaml:"minio"`
		} `json:"attachments" yaml:"attachments"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress     string   `json:"http_address" yaml:"http_address"`
		GRPCAddress     string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout  Duration `json:"request_timeout" yaml:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		Agent struct {
			Transport string   `json:"transport" yaml:"transport"`
			Address   string   `json:"address" yaml:"address"`
			Command   string   `json:"command" yaml:"command"`
			Args      []string `json:"args" yaml:"args"`
			WorkDir   string   `json:"work_dir" yaml:"work_dir"`
			Timeout   Duration `json:"timeout" yaml:"timeout"`
		} `json:"agent" yaml:"agent"`

		Vision struct {
			Provider      string   `json:"provider" yaml:"provider"`
			BaseURL       string   `json:"base_url" yaml:"base_url"`
			APIKey        string   `json:"api_key" yaml:"api_key"`
			APIVersion    string   `json:"api_version" yaml:"api_version"`
			Model         string   `json:"model" yaml:"model"`
			SystemPrompt  string   `json:"system_prompt" yaml:"system_prompt"`
			DefaultPrompt string   `json:"default_prompt" yaml:"default_prompt"`
			MaxTokens     int      `json:"max_tokens" yaml:"max_tokens"`
			Temperature   float64  `json:"temperature" yaml:"temperature"`
			Timeout       Duration `json:"timeout" yaml:"timeout"`
		} `json:"vision" yaml:"vision"`

		Feedback struct {
			Sink    string   `json:"sink" yaml:"sink"`
			Address string   `json:"address" yaml:"address"`
			APIKey  string   `json:"api_key" yaml:"api_key"`
			AMQPURL string   `json:"amqp_url" yaml:"amqp_url"`
			Queue   string   `json:"queue" yaml:"queue"`
			Timeout Duration `json:"timeout" yaml:"timeout"`
		} `json:"feedback" yaml:"feedback"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		FeedbackQueueSize   int `json:"feedback_queue_size" yaml:"feedback_queue_size"`
		FeedbackConcurrency int `json:"feedback_concurrency" yaml:"feedback_concurrency"`
	} `json:"workers" yaml:"workers"`

	RateLimit struct {
		Enabled        bool     `json:"enabled" yaml:"enabled"`
		RedisAddress   string   `json:"redis_address" yaml:"redis_address"`
		RedisPassword  string   `json:"redis_password" yaml:"redis_password"`
		RedisDB        int      `json:"redis_db" yaml:"redis_db"`
		Capacity       int      `json:"capacity" yaml:"capacity"`
		RefillInterval Duration `json:"refill_interval" yaml:"refill_interval"`
		Prefix         string   `json:"prefix" yaml:"prefix"`
	} `json:"rate_limit" yaml:"rate_limit"`
}

func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:         fc.App.Version,
			SessionSignKey:  fc.App.SessionSignKey,
			SessionIssuer:   fc.App.SessionIssuer,
			SessionDuration: time.Duration(fc.App.SessionDuration),
			BcryptCost:      fc.App.BcryptCost,
		},
		Log: Log{
			Level:      fc.Log.Level,
			FilePath:   fc.Log.FilePath,
			MaxSizeMB:  fc.Log.MaxSizeMB,
			MaxBackups: fc.Log.MaxBackups,
			MaxAgeDays: fc.Log.MaxAgeDays,
		},
		Storage: Storage{
			DB: DB{
				Driver:       fc.Storage.DB.Driver,
				DSN:          fc.Storage.DB.DSN,
				MaxOpenConns: fc.Storage.DB.MaxOpenConns,
			},
			Attachments: Attachments{
				Backend:  fc.Storage.Attachments.Backend,
				Dir:      fc.Storage.Attachments.Dir,
				MaxBytes: fc.Storage.Attachments.MaxBytes,
				MinIO:    fc.Storage.Attachments.MinIO,
			},
		},
		Server: Server{
			HTTPAddress:     fc.Server.HTTPAddress,
			GRPCAddress:     fc.Server.GRPCAddress,
			RequestTimeout:  time.Duration(fc.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(fc.Server.ShutdownTimeout),
		},
		Adapter: Adapter{
			Agent: Agent{
				Transport: fc.Adapter.Agent.Transport,
				Address:   fc.Adapter.Agent.Address,
				Command:   fc.Adapter.Agent.Command,
				Args:      fc.Adapter.Agent.Args,
				WorkDir:   fc.Adapter.Agent.WorkDir,
				Timeout:   time.Duration(fc.Adapter.Agent.Timeout),
			},
			Vision: Vision{
				Provider:      fc.Adapter.Vision.Provider,
				BaseURL:       fc.Adapter.Vision.BaseURL,
				APIKey:        fc.Adapter.Vision.APIKey,
				APIVersion:    fc.Adapter.Vision.APIVersion,
				Model:         fc.Adapter.Vision.Model,
				SystemPrompt:  fc.Adapter.Vision.SystemPrompt,
				DefaultPrompt: fc.Adapter.Vision.DefaultPrompt,
				MaxTokens:     fc.Adapter.Vision.MaxTokens,
				Temperature:   fc.Adapter.Vision.Temperature,
				Timeout:       time.Duration(fc.Adapter.Vision.Timeout),
			},
			Feedback: Feedback{
				Sink:    fc.Adapter.Feedback.Sink,
				Address: fc.Adapter.Feedback.Address,
				APIKey:  fc.Adapter.Feedback.APIKey,
				AMQPURL: fc.Adapter.Feedback.AMQPURL,
				Queue:   fc.Adapter.Feedback.Queue,
				Timeout: time.Duration(fc.Adapter.Feedback.Timeout),
			},
		},
		Workers: Workers{
			FeedbackQueueSize:   fc.Workers.FeedbackQueueSize,
			FeedbackConcurrency: fc.Workers.FeedbackConcurrency,
		},
		RateLimit: RateLimit{
			Enabled:        fc.RateLimit.Enabled,
			RedisAddress:   fc.RateLimit.RedisAddress,
			RedisPassword:  fc.RateLimit.RedisPassword,
			RedisDB:        fc.RateLimit.RedisDB,
			Capacity:       fc.RateLimit.Capacity,
			RefillInterval: time.Duration(fc.RateLimit.RefillInterval),
			Prefix:         fc.RateLimit.Prefix,
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s" as well as integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if tmp, err := time.ParseDuration(s); err == nil {
		*d = Duration(tmp)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}
