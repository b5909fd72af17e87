package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains client configuration parameters.
type Config struct {
	LogLevel   int     `env:"LOG_LEVEL" envDefault:"0"`
	ListenAddr string  `env:"LISTEN_ADDR" envDefault:":8080"`
	API        API     `envPrefix:"API_"`
	Session    Session `envPrefix:"SESSION_"`
}

// API contains parameters for the remote notes backend.
type API struct {
	BaseURL string        `env:"BASE_URL" envDefault:"https://aura-notes-backend-5omd.onrender.com"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"45s"`
}

// Session contains token persistence parameters.
type Session struct {
	TokenFile string `env:"TOKEN_FILE"`
}

// NewConfig loads configuration from environment variables. When no token
// file is configured, one is placed under the user config directory so the
// session survives restarts.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Session.TokenFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve user config dir: %w", err)
		}
		cfg.Session.TokenFile = filepath.Join(dir, "aura-notes", "token")
	}

	return &cfg, nil
}
