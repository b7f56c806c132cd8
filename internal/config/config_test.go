package config

import (
	"testing"
	"time"

	"github.com/courtvision/fantasy-hoops/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageBackend != BackendPostgres {
		t.Fatalf("unexpected StorageBackend: %q", cfg.StorageBackend)
	}
	if cfg.LockBackend != LockBackendPostgres {
		t.Fatalf("unexpected LockBackend: %q", cfg.LockBackend)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.IngestWorkers != 8 {
		t.Fatalf("unexpected IngestWorkers: %d", cfg.IngestWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %v", cfg.LogLevel)
	}
}

func TestLoad_MemoryBackendDefaultsToInProcessLock(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LockBackend != LockBackendInProcess {
		t.Fatalf("unexpected LockBackend: %q", cfg.LockBackend)
	}
}

func TestLoad_PostgresLockRequiresPostgresStorage(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("LOCK_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for postgres locks over memory storage")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_InvalidStorageBackend(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_BACKEND", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported STORAGE_BACKEND")
	}
}
