// Package config provides configuration management for wiko.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/wiko/pkg/highlight"
	"github.com/open-cli-collective/wiko/pkg/wiki"
)

// DefaultSourceExt is the extension of wiki markup sources.
const DefaultSourceExt = ".wiki"

// Config holds the wiko configuration.
type Config struct {
	Format     string            `yaml:"format,omitempty"`
	Quiet      bool              `yaml:"quiet,omitempty"`
	Highlight  bool              `yaml:"highlight,omitempty"`
	Style      string            `yaml:"style,omitempty"`
	SourceExt  string            `yaml:"source_ext,omitempty"`
	Skeletons  map[string]string `yaml:"skeletons,omitempty"`
	Extensions map[string]string `yaml:"extensions,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Format:    wiki.DefaultFormat,
		Style:     highlight.DefaultStyle,
		SourceExt: DefaultSourceExt,
	}
}

// Validate checks that format names and extensions are usable.
func (c *Config) Validate() error {
	if _, ok := wiki.LookupFormat(c.Format); !ok {
		return fmt.Errorf("unknown format %q (available: %s)", c.Format, strings.Join(FormatNames(), ", "))
	}
	if !strings.HasPrefix(c.SourceExt, ".") {
		return errors.New("source_ext must start with a dot")
	}
	for name, ext := range c.Extensions {
		if _, ok := wiki.LookupFormat(name); !ok {
			return fmt.Errorf("extensions: unknown format %q", name)
		}
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions: %q for %s must start with a dot", ext, name)
		}
	}
	for name := range c.Skeletons {
		if _, ok := wiki.LookupFormat(name); !ok {
			return fmt.Errorf("skeletons: unknown format %q", name)
		}
	}
	return nil
}

// FormatNames lists the canonical names of every registered format.
func FormatNames() []string {
	var names []string
	for _, f := range wiki.Formats() {
		names = append(names, f.Name)
	}
	return names
}

// ExtensionFor returns the output extension for a format, honouring overrides.
func (c *Config) ExtensionFor(f *wiki.Format) string {
	if ext := lookupByFormat(c.Extensions, f); ext != "" {
		return ext
	}
	return f.Extension
}

// SkeletonFor returns the configured skeleton path for a format, or the
// conventional "skeleton<ext>" in the working directory.
func (c *Config) SkeletonFor(f *wiki.Format) string {
	if path := lookupByFormat(c.Skeletons, f); path != "" {
		return path
	}
	return "skeleton" + c.ExtensionFor(f)
}

// lookupByFormat finds a per-format entry keyed by name or alias.
func lookupByFormat(m map[string]string, f *wiki.Format) string {
	for key, v := range m {
		if lf, ok := wiki.LookupFormat(key); ok && lf == f {
			return v
		}
	}
	return ""
}

// EnvVars lists the environment variables LoadFromEnv reads.
var EnvVars = []string{"WIKO_FORMAT", "WIKO_SOURCE_EXT", "WIKO_STYLE", "WIKO_QUIET", "WIKO_HIGHLIGHT"}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if format := os.Getenv("WIKO_FORMAT"); format != "" {
		c.Format = format
	}
	if ext := os.Getenv("WIKO_SOURCE_EXT"); ext != "" {
		c.SourceExt = ext
	}
	if style := os.Getenv("WIKO_STYLE"); style != "" {
		c.Style = style
	}
	if v, ok := getEnvBool("WIKO_QUIET"); ok {
		c.Quiet = v
	}
	if v, ok := getEnvBool("WIKO_HIGHLIGHT"); ok {
		c.Highlight = v
	}
}

// getEnvBool parses a boolean env var. Unset or unparsable values report ok=false.
func getEnvBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wiko", "config.yml")
	}
	return filepath.Join(xdg.ConfigHome, "wiko", "config.yml")
}

// ResolvePath returns the --config value, or the default path when empty.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. Unset fields keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
// A missing file yields the defaults; a malformed one is an error.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
