package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, env, contents string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "config", "config."+env+".yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", env)
}

func TestLoad(t *testing.T) {
	writeConfig(t, "test", "mode: debug\nport: 9090\nstore: sqlite\n")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mode != "debug" || cfg.Port != 9090 || cfg.Store != "sqlite" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	// Keys absent from the file keep their defaults.
	if cfg.SQLitePath == "" || cfg.Secret == "" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_ENV", "test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 || cfg.Store != "memory" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

// A file that parses but cannot unmarshal into the Config struct is a
// startup error, not something to limp past.
func TestLoadBadValue(t *testing.T) {
	writeConfig(t, "test", "port: not-a-number\n")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
}
