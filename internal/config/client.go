package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Client configures the terminal client (cmd/client).
type Client struct {
	// ServerURL is the base URL of the Lumina server, without /api/v1.
	// Env: LUMINA_SERVER_URL
	ServerURL string `env:"LUMINA_SERVER_URL" envDefault:"http://localhost:8080"`

	// Timeout bounds each API call. Image analysis can take a while.
	// Env: LUMINA_CLIENT_TIMEOUT
	Timeout time.Duration `env:"LUMINA_CLIENT_TIMEOUT" envDefault:"2m"`

	// LogFile receives the client log; the terminal belongs to the UI.
	// Env: LUMINA_CLIENT_LOG
	LogFile string `env:"LUMINA_CLIENT_LOG" envDefault:"lumina-client.log"`
}

// GetClientConfig reads the client config from the environment and then
// from command-line flags, which take precedence.
func GetClientConfig() (*Client, error) {
	return parseClientConfig(os.Args[1:])
}

func parseClientConfig(args []string) (*Client, error) {
	cfg := &Client{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClientConfigs, err)
	}

	fs := flag.NewFlagSet("lumina-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "Lumina server URL")
	fs.DurationVar(&cfg.Timeout, "t", cfg.Timeout, "Request timeout")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Log file path")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClientConfigs, err)
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClientConfigs, errors.New("server URL is empty"))
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidClientConfigs, errors.New("timeout must be positive"))
	}

	return cfg, nil
}
