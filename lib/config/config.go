// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/cytobank/acs/lib/ziparchive"
)

// EnvironmentVariable names the variable [Load] reads the
// configuration path from.
const EnvironmentVariable = "ACS_CONFIG"

// Log output formats.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the configuration of the acs tool.
type Config struct {
	// TempDir is where manifests are staged while packages are open.
	// Empty means the system temporary directory. ${VAR} and
	// ${VAR:-default} are expanded.
	TempDir string `yaml:"temp_dir" json:"temp_dir"`

	// Archive configures how packages are written.
	Archive ArchiveConfig `yaml:"archive" json:"archive"`

	// Inventory configures package inventories.
	Inventory InventoryConfig `yaml:"inventory" json:"inventory"`

	// Log configures diagnostic output on stderr.
	Log LogConfig `yaml:"log" json:"log"`
}

// ArchiveConfig configures package writing.
type ArchiveConfig struct {
	// Compression is the entry method: "deflate", "store" or "zstd".
	// Default: deflate
	Compression string `yaml:"compression" json:"compression"`

	// Level is the compression level. Zero selects the method's
	// default.
	Level int `yaml:"level" json:"level"`
}

// InventoryConfig configures package inventories.
type InventoryConfig struct {
	// Digest computes a BLAKE3 digest of every entry when a package
	// is opened.
	Digest bool `yaml:"digest" json:"digest"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level" json:"level"`

	// Format is "auto" (text on a terminal, JSON otherwise), "text"
	// or "json".
	// Default: auto
	Format string `yaml:"format" json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Archive: ArchiveConfig{Compression: ziparchive.Deflate.String()},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatAuto,
		},
	}
}

// Load loads configuration from the file named by ACS_CONFIG. When the
// variable is unset the defaults are returned.
func Load() (*Config, error) {
	path := os.Getenv(EnvironmentVariable)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from path, merged over [Default].
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas; anything else is read as YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.TempDir = expandVars(c.TempDir, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default}, preferring vars over
// the environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name, defaultValue := parts[1], parts[2]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if _, err := ziparchive.ParseMethod(c.Archive.Compression); err != nil {
		errs = append(errs, fmt.Errorf("archive.compression: %w", err))
	}
	if c.Archive.Level < -2 || c.Archive.Level > 22 {
		errs = append(errs, fmt.Errorf("archive.level %d is out of range", c.Archive.Level))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: %s, %s, %s",
			LogFormatAuto, LogFormatText, LogFormatJSON))
	}

	return errors.Join(errs...)
}

// Compression returns the configured archive method.
func (c *Config) Compression() ziparchive.Method {
	method, err := ziparchive.ParseMethod(c.Archive.Compression)
	if err != nil {
		return ziparchive.Deflate
	}
	return method
}

// LogLevel returns the configured log level, or info if the value does
// not parse.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return level, nil
}
