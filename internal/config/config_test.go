// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, validation, and defaults

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./leads.db"

logging:
  level: debug
  format: json

import:
  delimiter: ";"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "./leads.db" {
		t.Errorf("Database.Path = %q, want ./leads.db", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	if cfg.Import.DelimiterRune() != ';' {
		t.Errorf("DelimiterRune = %q, want ';'", cfg.Import.DelimiterRune())
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("LEADBOOK_TEST_DB", "/tmp/expanded.db")

	path := writeConfig(t, `
database:
  path: "${LEADBOOK_TEST_DB}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Database.Path != "/tmp/expanded.db" {
		t.Errorf("Database.Path = %q, want /tmp/expanded.db", cfg.Database.Path)
	}
}

func TestLoad_MissingDatabasePath(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: info
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for missing database.path")
	}
	if !strings.Contains(err.Error(), "database.path") {
		t.Errorf("error should mention database.path: %v", err)
	}
}

func TestLoad_InvalidDelimiter(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./leads.db"

import:
  delimiter: "||"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for multi-character delimiter")
	}
}

func TestLoad_InvalidFormat(t *testing.T) {
	path := writeConfig(t, `
database:
  path: "./leads.db"

logging:
  format: xml
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for unknown logging format")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default("/data/leadbook")

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}
	if cfg.Database.Path != "/data/leadbook/leads.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Import.DelimiterRune() != ',' {
		t.Errorf("DelimiterRune = %q, want ','", cfg.Import.DelimiterRune())
	}
}

func TestDelimiterRune_DefaultsToComma(t *testing.T) {
	c := ImportConfig{}
	if c.DelimiterRune() != ',' {
		t.Errorf("DelimiterRune = %q, want ','", c.DelimiterRune())
	}
}
