package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("ORGANISER_CONFIG_FILE", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Backend != StorageFile {
		t.Fatalf("expected file backend by default, got %q", cfg.Storage.Backend)
	}
	if cfg.Ingest.DelimiterRune() != ',' || cfg.Ingest.DedupeWithinBatch {
		t.Fatalf("unexpected ingest defaults: %+v", cfg.Ingest)
	}
	if cfg.Auth.Enabled() {
		t.Fatalf("auth must be disabled without a passphrase hash")
	}
	if cfg.Import.PendingTTL() != 10*time.Minute {
		t.Fatalf("unexpected pending ttl %v", cfg.Import.PendingTTL())
	}
}

func TestLoadYamlOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "organiser.yaml")
	body := strings.TrimSpace(`
app:
  port: "9090"
storage:
  backend: MEMORY
ingest:
  delimiter: tab
  dedupe_within_batch: true
`)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ORGANISER_CONFIG_FILE", path)
	t.Setenv("APP_HOST", "0.0.0.0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Fatalf("expected env host and yaml port, got %s", cfg.App.Addr())
	}
	if cfg.Storage.Backend != StorageMemory {
		t.Fatalf("expected memory backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Ingest.DelimiterRune() != '\t' || !cfg.Ingest.DedupeWithinBatch {
		t.Fatalf("yaml ingest settings not applied: %+v", cfg.Ingest)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ORGANISER_CONFIG_FILE", "")
	t.Setenv("STORAGE_BACKEND", "floppy")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestLoadPostgresNeedsDSN(t *testing.T) {
	t.Setenv("ORGANISER_CONFIG_FILE", "")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("POSTGRES_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when postgres DSN is missing")
	}
}
