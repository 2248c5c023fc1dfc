package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/club-manager/internal/app"
	"github.com/riskibarqy/club-manager/internal/interfaces/tui"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "manager: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var csvPath, dbPath, source string

	cmd := &cobra.Command{
		Use:           "manager",
		Short:         "Pick a club and start managing it",
		Long:          "Browse the clubs of the migrated database and choose one to manage. The database is opened read-only; --source csv previews the roster CSV without a database.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.LoadConfig(csvPath, dbPath)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI, so logs only go to a file.
			logger := logging.NewNop()
			if cfg.LogFile != "" {
				fileLogger, closeLog, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer closeLog()
				logger = fileLogger.With("service", cfg.ServiceName, "version", cfg.ServiceVersion)
			}
			logging.SetDefault(logger)

			ctx, finish, err := app.StartTracing(cmd.Context(), cfg, "manager", logger)
			if err != nil {
				return err
			}
			defer finish()

			svc, closeSource, err := app.NewClubService(ctx, cfg, source, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := closeSource(); err != nil {
					logger.Warn("close roster source failed", "error", err)
				}
			}()

			return tui.Run(ctx, svc, logger)
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "roster CSV, used with --source csv (default $MANAGER_CSV_PATH)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database to read (default $MANAGER_DB_PATH)")
	cmd.Flags().StringVar(&source, "source", app.SourceDB, "where to read the roster: db or csv")
	return cmd
}
