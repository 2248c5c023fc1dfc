package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

// Config stores runtime configuration shared by the migrate, verify and manager commands.
type Config struct {
	AppEnv         string        `validate:"oneof=dev stage prod"`
	ServiceName    string        `validate:"required"`
	ServiceVersion string        `validate:"required"`
	DataDir        string        `validate:"required"`
	CSVPath        string        `validate:"required"`
	DBPath         string        `validate:"required"`
	CacheTTL       time.Duration `validate:"gt=0"`
	LogFile        string
	UptraceEnabled bool
	UptraceDSN     string `validate:"required_if=UptraceEnabled true"`
	LogLevel       logging.Level
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cacheTTL, err := time.ParseDuration(getEnv("MANAGER_CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse MANAGER_CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("MANAGER_CACHE_TTL must be > 0")
	}

	dataDir := strings.TrimSpace(getEnv("MANAGER_DATA_DIR", "data"))
	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    getEnv("APP_SERVICE_NAME", "club-manager"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),
		DataDir:        dataDir,
		CSVPath:        strings.TrimSpace(getEnv("MANAGER_CSV_PATH", filepath.Join(dataDir, "players.csv"))),
		DBPath:         strings.TrimSpace(getEnv("MANAGER_DB_PATH", filepath.Join(dataDir, "game.db"))),
		CacheTTL:       cacheTTL,
		LogFile:        strings.TrimSpace(getEnv("MANAGER_LOG_FILE", "")),
		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,
		LogLevel:       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithPaths returns a copy with non-empty overrides applied, as passed by command flags.
func (c Config) WithPaths(csvPath, dbPath string) (Config, error) {
	if v := strings.TrimSpace(csvPath); v != "" {
		c.CSVPath = v
	}
	if v := strings.TrimSpace(dbPath); v != "" {
		c.DBPath = v
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if filepath.Clean(c.CSVPath) == filepath.Clean(c.DBPath) {
		return fmt.Errorf("MANAGER_CSV_PATH and MANAGER_DB_PATH must differ")
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
