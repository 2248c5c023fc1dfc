package app

import (
	"context"
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/club-manager/internal/config"
	"github.com/riskibarqy/club-manager/internal/observability"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

// LoadConfig reads an optional .env, then the environment, then applies the
// --csv/--db flag overrides.
func LoadConfig(csvPath, dbPath string) (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, err
	}

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	return cfg.WithPaths(csvPath, dbPath)
}

// StartTracing initializes Uptrace and opens the root span for command. The
// returned func ends the span and flushes the exporter.
func StartTracing(ctx context.Context, cfg config.Config, command string, logger *logging.Logger) (context.Context, func(), error) {
	shutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return ctx, nil, err
	}

	ctx, span := observability.StartCommandSpan(ctx, command)
	return ctx, func() {
		span.End()
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}, nil
}
