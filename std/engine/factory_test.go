package engine

import (
	"testing"

	"github.com/named-data/ndnd-client-core/config"
	"github.com/named-data/ndnd-client-core/std/engine/face"
	"github.com/stretchr/testify/require"
)

func TestNewTransportDispatchesByScheme(t *testing.T) {
	cases := []struct {
		uri  string
		kind any
	}{
		{"unix:///run/nfd.sock", &face.StreamTransport{}},
		{"tcp://127.0.0.1:6363", &face.StreamTransport{}},
		{"ws://localhost:9696", &face.WebSocketTransport{}},
	}
	for _, c := range cases {
		tr, err := NewTransport(&config.Config{TransportUri: c.uri})
		require.NoError(t, err)
		require.IsType(t, c.kind, tr)
		require.False(t, tr.IsConnected())
	}
}

func TestNewTransportRejectsUnsupportedScheme(t *testing.T) {
	_, err := NewTransport(&config.Config{TransportUri: "sctp://127.0.0.1"})
	require.Error(t, err)
}

func TestNewNodeConstructsUnconnected(t *testing.T) {
	n, err := NewNode(config.Default())
	require.NoError(t, err)
	require.NotNil(t, n)
	require.False(t, n.IsRunning())
}
