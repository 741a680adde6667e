// ABOUTME: Configuration loading and parsing for leadbook
// ABOUTME: Supports YAML files with environment variable expansion and defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config represents the complete leadbook configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Import   ImportConfig   `yaml:"import"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ImportConfig holds import file parsing configuration
type ImportConfig struct {
	// Delimiter is the field separator for import files. A single
	// character; defaults to a comma.
	Delimiter string `yaml:"delimiter"`
}

// Default returns the configuration used when no config file exists.
// The database lands under dataDir.
func Default(dataDir string) *Config {
	return &Config{
		Database: DatabaseConfig{Path: filepath.Join(dataDir, "leads.db")},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Import:   ImportConfig{Delimiter: ","},
	}
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw YAML content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding
// environment variable values. An unset variable becomes an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and
// valid. Returns an error describing the first validation failure.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Import.Delimiter != "" && utf8.RuneCountInString(c.Import.Delimiter) != 1 {
		return fmt.Errorf("import.delimiter must be a single character, got %q", c.Import.Delimiter)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	return nil
}

// DelimiterRune returns the import field separator as a rune, defaulting
// to a comma when unset.
func (c *ImportConfig) DelimiterRune() rune {
	if c.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
