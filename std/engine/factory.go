// Package engine wires together a Transport and a client.Node the way an
// application entry point wants: given a config, dial the right kind of
// forwarder connection and hand back a ready-to-Run Node (spec.md §6's
// "construct, don't configure" core combined with the teacher's
// engine/factory.go convenience constructors).
package engine

import (
	"fmt"

	"github.com/named-data/ndnd-client-core/config"
	"github.com/named-data/ndnd-client-core/std/engine/basic"
	"github.com/named-data/ndnd-client-core/std/engine/client"
	"github.com/named-data/ndnd-client-core/std/engine/face"
	"github.com/named-data/ndnd-client-core/std/ndn"
)

// NewUnixTransport constructs an unconnected Transport over a Unix domain
// socket (dialed on Connect), mirroring the teacher's NewUnixFace.
func NewUnixTransport(addr string) ndn.Transport {
	return face.NewUnixTransport(addr)
}

// NewTCPTransport constructs an unconnected Transport over TCP (dialed on Connect).
func NewTCPTransport(addr string) ndn.Transport {
	return face.NewTCPTransport(addr)
}

// NewWebSocketTransport constructs an unconnected Transport over WebSocket (dialed on Connect).
func NewWebSocketTransport(url string) ndn.Transport {
	return face.NewWebSocketTransport(url)
}

// NewQuicTransport constructs an unconnected Transport over QUIC (dialed on Connect).
func NewQuicTransport(addr string) (ndn.Transport, error) {
	return face.NewQuicTransport(addr)
}

// NewTransport constructs the Transport named by cfg.TransportUri,
// dispatching on its scheme: "unix" for a Unix domain socket, "tcp" (or
// "tcp4"/"tcp6") for a TCP stream, "ws"/"wss" for WebSocket, "quic" for
// QUIC. Mirrors the teacher's NewDefaultFace, generalized from a fixed
// unix/tcp choice to every transport scheme this module supports.
func NewTransport(cfg *config.Config) (ndn.Transport, error) {
	uri, err := cfg.ParsedTransportUri()
	if err != nil {
		return nil, err
	}

	switch uri.Scheme {
	case "unix":
		return NewUnixTransport(uri.Path), nil
	case "tcp", "tcp4", "tcp6":
		return NewTCPTransport(uri.Host), nil
	case "ws", "wss":
		return NewWebSocketTransport(uri.String()), nil
	case "quic":
		return NewQuicTransport(uri.Host)
	default:
		return nil, fmt.Errorf("unsupported transport scheme %q in transport_uri %q", uri.Scheme, cfg.TransportUri)
	}
}

// NewNode constructs a client.Node over the Transport named by cfg,
// ready for Run. Equivalent to the teacher's NewBasicEngine, generalized
// from an ndn.Engine over a caller-supplied Face to a client.Node wired
// to a config-selected Transport.
func NewNode(cfg *config.Config) (*client.Node, error) {
	transport, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}
	return client.New(transport, basic.NewTimer()), nil
}
