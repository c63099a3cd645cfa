package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/named-data/ndnd-client-core/std/log"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport_uri: tcp://127.0.0.1:6363\nlog_level: DEBUG\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "tcp://127.0.0.1:6363", cfg.TransportUri)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, log.LevelDebug, cfg.Level())
}

func TestLoadRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport_uri: [this is not valid\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestParsedTransportUri(t *testing.T) {
	cfg := &Config{TransportUri: "ws://localhost:9696/ndn"}
	u, err := cfg.ParsedTransportUri()
	require.NoError(t, err)
	require.Equal(t, "ws", u.Scheme)
	require.Equal(t, "localhost:9696", u.Host)
}

func TestLevelDefaultsOnUnrecognizedValue(t *testing.T) {
	cfg := &Config{LogLevel: "NOT-A-LEVEL"}
	require.Equal(t, log.LevelInfo, cfg.Level())
}

func TestLevelEmptyDefaultsToInfo(t *testing.T) {
	cfg := &Config{}
	require.Equal(t, log.LevelInfo, cfg.Level())
}
