package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/expressivo"
)

// configEnv names the environment variable consulted when --config is unset.
const configEnv = "EXPRESSIVO_CONFIG"

// Config holds defaults for the command line tool. Flags override it.
type Config struct {
	// Spaced prints operators with surrounding spaces.
	Spaced bool `toml:"spaced"`
	// MaxDepth bounds parenthesis nesting when parsing. 0 means no limit.
	MaxDepth int `toml:"max_depth"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Output is text or yaml.
	Output string `toml:"output"`
}

func defaultConfig() Config {
	return Config{
		MaxDepth: expressivo.DefaultMaxDepth,
		LogLevel: "warn",
		Output:   "text",
	}
}

// loadConfig reads a TOML config file over the defaults. An empty path falls
// back to $EXPRESSIVO_CONFIG, and if that is also empty, the defaults are used
// as they are.
func loadConfig(path string) (Config, string, error) {
	cfg := defaultConfig()
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return cfg, "", nil
	}
	path = os.ExpandEnv(path)
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, path, errors.Wrapf(err, "loading config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, path, errors.Wrapf(err, "config %s", path)
	}
	return cfg, path, nil
}

func (c *Config) validate() error {
	if c.MaxDepth < 0 {
		return errors.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.Output {
	case "text", "yaml":
	default:
		return errors.Errorf("output must be text or yaml, got %q", c.Output)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return l, errors.Wrap(err, "log_level")
	}
	return l, nil
}

func (c *Config) parseOptions() []expressivo.ParseOption {
	return []expressivo.ParseOption{expressivo.MaxDepth(c.MaxDepth)}
}
