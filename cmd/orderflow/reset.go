package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

var resetCmd = &cli.Command{
	Name:  "reset",
	Usage: "Discard the saved order state",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "force",
			Usage: "Confirm discarding the saved order",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		SetupLogger(cmd.Root().String("log-level"))

		if !cmd.Bool("force") {
			return cli.Exit("Refusing to discard the saved order without --force", 1)
		}

		cfg, err := loadConfig(cmd.Root())
		if err != nil {
			return cli.Exit(err, 1)
		}
		store, err := openStore(cfg)
		if err != nil {
			return cli.Exit(err, 1)
		}

		if err := store.Clear(); err != nil {
			return cli.Exit(fmt.Errorf("failed to clear storage: %w", err), 1)
		}
		fmt.Println("Saved order state discarded")
		return nil
	},
}
