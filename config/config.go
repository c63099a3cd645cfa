// Package config loads the small YAML document a CLI entry point needs to
// construct a Node: which forwarder to dial and how verbosely to log.
// Grounded in the teacher's engine/factory.go (GetClientConfig) and built
// on the same YAML library, github.com/goccy/go-yaml.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/named-data/ndnd-client-core/std/log"
)

// Config is the on-disk client configuration. The core itself is fully
// in-memory and config-agnostic (spec.md §6: "CLI / env / config: out of
// scope") — this struct exists purely for the cmd/ndndclient entry point.
type Config struct {
	// TransportUri names the forwarder connection, e.g.
	// "unix:///run/nfd.sock", "tcp://127.0.0.1:6363", "ws://localhost:9696".
	TransportUri string `yaml:"transport_uri"`

	// LogLevel is parsed with log.ParseLevel; defaults to "info" if empty.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		TransportUri: "unix:///run/nfd.sock",
		LogLevel:     "INFO",
	}
}

// Load reads and parses a YAML config file at path. A missing file is not
// an error: Default() is returned instead, so a bare `ndndclient` run
// against the conventional local forwarder socket needs no config file at
// all.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParsedTransportUri parses TransportUri, returning an error naming the
// invalid field if it cannot be parsed as a URI.
func (c *Config) ParsedTransportUri() (*url.URL, error) {
	u, err := url.Parse(c.TransportUri)
	if err != nil {
		return nil, fmt.Errorf("invalid transport_uri %q: %w", c.TransportUri, err)
	}
	return u, nil
}

// Level parses LogLevel, falling back to log.LevelInfo and logging a
// warning if the value is unrecognized.
func (c *Config) Level() log.Level {
	if c.LogLevel == "" {
		return log.LevelInfo
	}
	lvl, err := log.ParseLevel(strings.ToUpper(c.LogLevel))
	if err != nil {
		log.Warn(nil, "invalid log_level in config, defaulting to info", "value", c.LogLevel)
		return log.LevelInfo
	}
	return lvl
}
