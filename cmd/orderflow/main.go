package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/campuskiosk/orderflow/internal/config"
	"github.com/campuskiosk/orderflow/internal/kioskstore"
)

func main() {
	app := &cli.Command{
		Name:    "orderflow",
		Version: Version,
		Usage:   "Campus kiosk order client: saved order state and payment confirmation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to TOML configuration file",
				Aliases: []string{"c"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (trace, debug, info, warn, error)",
				Value: config.DefaultLogLevel,
			},
		},
		Commands: []*cli.Command{
			versionCmd,
			snapshotCmd,
			resetCmd,
			confirmCmd,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the file named by --config, or falls back to defaults so
// storage-only commands work without one.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.NewConfig(path)
}

// openStore opens the persistent store named by the config. An empty storage
// path means in-memory, which for a one-shot CLI run is an empty store.
func openStore(cfg *config.Config) (*kioskstore.Store, error) {
	if cfg.StoragePath == "" {
		return kioskstore.New(kioskstore.NewMemoryBackend()), nil
	}
	backend, err := kioskstore.NewFileBackend(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %s: %w", cfg.StoragePath, err)
	}
	return kioskstore.New(backend), nil
}
