package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/club-manager/internal/app"
	"github.com/riskibarqy/club-manager/internal/interfaces/cli"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var csvPath, dbPath string

	cmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Rebuild the leagues, teams and players tables from the roster CSV",
		Long:          "Normalize the roster CSV into the leagues, teams and players tables. Existing tables are replaced in one transaction; on any error the previous contents stay untouched.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(csvPath, dbPath)
			if err != nil {
				return err
			}

			logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
			logging.SetDefault(logger)
			defer logger.Sync()

			ctx, finish, err := app.StartTracing(cmd.Context(), cfg, "migrate", logger)
			if err != nil {
				return err
			}
			defer finish()

			svc, closeDB, err := app.NewMigrationService(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeDB(); err != nil {
					logger.Warn("close database failed", "error", err)
				}
			}()

			summary, err := svc.Migrate(ctx, cfg.CSVPath)
			if err != nil {
				return err
			}
			return cli.WriteMigrationSummary(cmd.OutOrStdout(), cfg.DBPath, summary)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "roster CSV to read (default $MANAGER_CSV_PATH)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to write (default $MANAGER_DB_PATH)")
	return cmd
}
