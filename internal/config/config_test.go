package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/club-manager/internal/platform/logging"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "APP_SERVICE_NAME", "APP_SERVICE_VERSION", "APP_LOG_LEVEL",
		"MANAGER_DATA_DIR", "MANAGER_CSV_PATH", "MANAGER_DB_PATH", "MANAGER_CACHE_TTL",
		"MANAGER_LOG_FILE", "UPTRACE_ENABLED", "UPTRACE_DSN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.CSVPath != filepath.Join("data", "players.csv") {
		t.Fatalf("unexpected CSVPath: %q", cfg.CSVPath)
	}
	if cfg.DBPath != filepath.Join("data", "game.db") {
		t.Fatalf("unexpected DBPath: %q", cfg.DBPath)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_DataDirDrivesDefaultPaths(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("MANAGER_DATA_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CSVPath != filepath.Join(dir, "players.csv") {
		t.Fatalf("unexpected CSVPath: %q", cfg.CSVPath)
	}
	if cfg.DBPath != filepath.Join(dir, "game.db") {
		t.Fatalf("unexpected DBPath: %q", cfg.DBPath)
	}
}

func TestLoad_ExplicitPathsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("MANAGER_DATA_DIR", "ignored")
	t.Setenv("MANAGER_CSV_PATH", "/tmp/in.csv")
	t.Setenv("MANAGER_DB_PATH", "/tmp/out.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CSVPath != "/tmp/in.csv" || cfg.DBPath != "/tmp/out.db" {
		t.Fatalf("unexpected paths: csv=%q db=%q", cfg.CSVPath, cfg.DBPath)
	}
}

func TestLoad_SamePathRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("MANAGER_CSV_PATH", "/tmp/x")
	t.Setenv("MANAGER_DB_PATH", "/tmp/x")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when csv and db paths are equal")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_CacheTTL(t *testing.T) {
	t.Run("rejects garbage", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MANAGER_CACHE_TTL", "soon")
		if _, err := Load(); err == nil {
			t.Fatalf("expected parse error")
		}
	})

	t.Run("rejects negative", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MANAGER_CACHE_TTL", "-1s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative ttl")
		}
	})
}

func TestLoad_LogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_LOG_LEVEL", "WARNING")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}

func TestConfig_WithPaths(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	got, err := cfg.WithPaths("  ", "/tmp/other.db")
	if err != nil {
		t.Fatalf("with paths: %v", err)
	}
	if got.CSVPath != cfg.CSVPath {
		t.Fatalf("blank override must keep csv path, got %q", got.CSVPath)
	}
	if got.DBPath != "/tmp/other.db" {
		t.Fatalf("unexpected DBPath: %q", got.DBPath)
	}
	if cfg.DBPath == got.DBPath {
		t.Fatalf("WithPaths must not mutate the receiver")
	}
}
