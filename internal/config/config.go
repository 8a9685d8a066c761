// Package config holds the explicit configuration struct handed to the
// application entry point. Nothing else in the codebase reads the ambient
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config carries every recognized runtime option. Each field documents its
// fallback when absent; only ProviderConfig is mandatory.
type Config struct {
	// AppID namespaces the dashboard document path. Defaults to a shared
	// development namespace when unset.
	AppID string `env:"PULSE_APP_ID" envDefault:"default-app"`

	// ProviderConfig is the identity provider configuration blob (JSON).
	// An empty blob is a fatal configuration error.
	ProviderConfig string `env:"PULSE_PROVIDER_CONFIG"`

	// AuthToken is an optional bearer token. When absent the session signs
	// in anonymously.
	AuthToken string `env:"PULSE_AUTH_TOKEN"`

	// StoreURL points at the document store.
	StoreURL string `env:"PULSE_STORE_URL" envDefault:"redis://localhost:6379/0"`

	// LogFile receives diagnostic logs; the terminal belongs to the TUI.
	// Defaults to ~/.pulse/pulse.log.
	LogFile string `env:"PULSE_LOG_FILE"`
}

// FromEnv parses a Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.FromEnv: %w", err)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile()
	}
	return cfg, nil
}

// defaultLogFile returns ~/.pulse/pulse.log, falling back to a file in the
// working directory when the home directory cannot be resolved.
func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pulse.log"
	}
	return filepath.Join(home, ".pulse", "pulse.log")
}
