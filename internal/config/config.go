// Package config reads the tss.jsonc project configuration
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"

	"bennypowers.dev/tss/internal/easing"
)

// FileName is the configuration file looked up in the working directory
const FileName = "tss.jsonc"

// Config represents the engine configuration
type Config struct {
	// Theme is the theme activated at startup
	Theme string `json:"theme"`

	// Stylesheets are user stylesheet files or doublestar globs,
	// e.g. ["app.tcss", "styles/**/*.tcss"]. Relative paths resolve
	// against the directory of the config file.
	Stylesheets []string `json:"stylesheets"`

	// Themes are extra theme files: YAML theme documents or design
	// token files
	Themes []string `json:"themes"`

	// Watch enables mtime polling of the stylesheets
	Watch bool `json:"watch"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel"`

	// DefaultEasing is used by transitions that name no easing
	DefaultEasing string `json:"defaultEasing"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Theme:         "tss-dark",
		Stylesheets:   []string{},
		Themes:        []string{},
		Watch:         false,
		LogLevel:      "warn",
		DefaultEasing: easing.Default,
	}
}

// Parse decodes JSONC configuration on top of the defaults
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields
func (c Config) Validate() error {
	if c.Theme == "" {
		return fmt.Errorf("theme must not be empty")
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("unknown logLevel '%s' (expected one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
	}
	if _, ok := easing.Lookup(c.DefaultEasing); !ok {
		return fmt.Errorf("unknown defaultEasing '%s'", c.DefaultEasing)
	}
	return nil
}

// Load reads the configuration at path. A missing file is not an error and
// yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Stylesheets = resolvePaths(dir, cfg.Stylesheets)
	cfg.Themes = resolvePaths(dir, cfg.Themes)
	return cfg, nil
}

func resolvePaths(dir string, paths []string) []string {
	resolved := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsAbs(p) {
			resolved[i] = filepath.Clean(p)
		} else {
			resolved[i] = filepath.Join(dir, p)
		}
	}
	return resolved
}

// HasGlob reports whether a stylesheet entry is a pattern rather than a file
func HasGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
