package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-supervisor/supervisor"
	"github.com/urfave/cli/v3"

	"github.com/campuskiosk/orderflow/internal/api"
	"github.com/campuskiosk/orderflow/internal/fancy"
	"github.com/campuskiosk/orderflow/internal/payment/confirm"
)

var confirmCmd = &cli.Command{
	Name:  "confirm",
	Usage: "Poll the backend until a pending payment settles",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "intent",
			Usage:   "Checkout intent id from the provider redirect (defaults to the saved one)",
			Aliases: []string{"i"},
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		SetupLogger(cmd.Root().String("log-level"))
		logger := slog.Default()

		cfg, err := loadConfig(cmd.Root())
		if err != nil {
			return cli.Exit(err, 1)
		}
		if err := cfg.Validate(); err != nil {
			return cli.Exit(err, 1)
		}
		store, err := openStore(cfg)
		if err != nil {
			return cli.Exit(err, 1)
		}

		client := api.New(api.Config{
			Logger:  logger.WithGroup("api.Client"),
			BaseURL: cfg.APIBaseURL,
		})

		runner, err := confirm.NewRunner(
			client,
			store,
			cfg.PollInterval.AsDuration(),
			cfg.MaxPollAttempts(),
			confirm.WithLogger(logger.With("component", "confirm")),
			confirm.WithIntentID(cmd.String("intent")),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create confirmation runner: %w", err), 1)
		}

		super, err := supervisor.New(
			supervisor.WithRunnables(runner),
			supervisor.WithLogHandler(slog.Default().Handler()),
			supervisor.WithContext(ctx),
		)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to create supervisor: %w", err), 1)
		}
		if err := super.Run(); err != nil {
			return cli.Exit(fmt.Errorf("confirmation run failed: %w", err), 1)
		}

		result := runner.Result()
		if result == nil {
			return cli.Exit("Confirmation interrupted before a verdict", 1)
		}
		return reportOutcome(result)
	},
}

// reportOutcome prints the verdict and maps it to an exit code.
func reportOutcome(result *confirm.Result) error {
	switch result.Outcome {
	case confirm.OutcomeCompleted:
		fmt.Printf("Payment %s after %d attempt(s)\n",
			fancy.OkText("completed"), result.Attempts)
		if result.StatusToken != "" {
			fmt.Printf("Status token: %s\n", result.StatusToken)
		}
		return nil
	case confirm.OutcomeNoPending:
		fmt.Println("No pending payment to confirm")
		return nil
	case confirm.OutcomeFailed:
		return cli.Exit(fmt.Sprintf("Payment %s after %d attempt(s)",
			fancy.ErrorText("failed"), result.Attempts), 1)
	case confirm.OutcomeTimeout:
		return cli.Exit(fmt.Sprintf("Payment still pending after %d attempt(s); try again later",
			result.Attempts), 2)
	default:
		return cli.Exit(fmt.Sprintf("Unknown outcome %q", result.Outcome), 1)
	}
}
