package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GitHub.MaxRetries != 5 || cfg.GitHub.BackoffBase != 2.0 {
		t.Errorf("unexpected retry defaults: %+v", cfg.GitHub)
	}
	if !cfg.GroupEnabled("issues") || !cfg.GroupEnabled("repositories") {
		t.Error("default tool groups should be enabled")
	}
	if cfg.Server.Port != 0 {
		t.Errorf("health server should be off by default, got port %d", cfg.Server.Port)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be off by default")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
logging:
  level: debug
github:
  max_retries: 3
  backoff_base: 1.5
cache:
  enabled: true
  url: redis://localhost:6379/0
  ttl_seconds: 120
tool_groups:
  issues:
    enabled: true
  repositories:
    enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.GitHub.MaxRetries != 3 || cfg.GitHub.BackoffBase != 1.5 {
		t.Errorf("unexpected github tuning: %+v", cfg.GitHub)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTLSeconds != 120 {
		t.Errorf("unexpected cache config: %+v", cfg.Cache)
	}
	if !cfg.GroupEnabled("issues") || cfg.GroupEnabled("repositories") {
		t.Error("tool group toggles not honored")
	}
	// Unset fields still get backstop defaults.
	if cfg.GitHub.RetryBufferSeconds != 5 {
		t.Errorf("retry buffer = %d, want default 5", cfg.GitHub.RetryBufferSeconds)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_CACHE_URL", "redis://cache:6379/1")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "cache:\n  url: ${TEST_CACHE_URL}\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.URL != "redis://cache:6379/1" {
		t.Errorf("url = %q, env not expanded", cfg.Cache.URL)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGroupEnabledUnknownGroup(t *testing.T) {
	cfg := Default()
	if cfg.GroupEnabled("pull_requests") {
		t.Error("unknown group should be disabled")
	}
}
