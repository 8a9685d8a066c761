package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/pulsedash/pulse/internal/config"
	"github.com/pulsedash/pulse/internal/identity"
	"github.com/pulsedash/pulse/internal/logging"
	"github.com/pulsedash/pulse/internal/tui"
	"github.com/pulsedash/pulse/pkg/store"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("pulse " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		}
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogFile)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	deps := tui.Deps{Logger: log, Version: version}

	// Configuration errors are fatal but still rendered by the TUI as a
	// blocking error screen rather than a bare stderr line.
	pc, err := identity.ParseProviderConfig(cfg.ProviderConfig)
	if err != nil {
		log.Error("invalid provider configuration", zap.Error(err))
		deps.FatalErr = err.Error()
	} else if st, err := store.New(cfg.StoreURL, log); err != nil {
		log.Error("invalid store configuration", zap.Error(err))
		deps.FatalErr = err.Error()
	} else {
		deps.Session = identity.NewSession(identity.NewJWTProvider(pc), cfg.AuthToken, log)
		deps.Store = st
		deps.DocPath = store.DocPath(cfg.AppID)
		log.Info("starting dashboard",
			zap.String("app_id", cfg.AppID),
			zap.String("doc_path", deps.DocPath))
	}

	p := tea.NewProgram(tui.NewApp(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func printHelp() {
	fmt.Println(`pulse — live census dashboard

Usage:
  pulse             open the dashboard
  pulse version     show version

Environment:
  PULSE_APP_ID            dashboard namespace (default: default-app)
  PULSE_PROVIDER_CONFIG   identity provider configuration blob (required)
  PULSE_AUTH_TOKEN        bearer token; anonymous session when unset
  PULSE_STORE_URL         document store URL (default: redis://localhost:6379/0)
  PULSE_LOG_FILE          diagnostic log destination (default: ~/.pulse/pulse.log)`)
}
