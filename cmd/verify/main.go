package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/club-manager/internal/app"
	"github.com/riskibarqy/club-manager/internal/interfaces/cli"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/spf13/cobra"
)

var errChecksFailed = errors.New("verification failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var csvPath, dbPath, format string

	cmd := &cobra.Command{
		Use:           "verify",
		Short:         "Check a migrated database against its roster CSV",
		Long:          "Run every verification check against the database and report each one. Exits 1 if any check fails or a required file is missing.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outFormat, err := cli.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(csvPath, dbPath)
			if err != nil {
				return err
			}

			logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
			logging.SetDefault(logger)
			defer logger.Sync()

			ctx, finish, err := app.StartTracing(cmd.Context(), cfg, "verify", logger)
			if err != nil {
				return err
			}
			defer finish()

			report, err := app.NewVerificationService(logger).Verify(ctx, cfg.CSVPath, cfg.DBPath)
			if err != nil {
				return err
			}
			if err := cli.WriteReport(cmd.OutOrStdout(), report, outFormat); err != nil {
				return err
			}
			if !report.Passed() {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "roster CSV the database was built from (default $MANAGER_CSV_PATH)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to check (default $MANAGER_DB_PATH)")
	cmd.Flags().StringVar(&format, "format", string(cli.FormatText), "report format: text or json")
	return cmd
}
