package ndn

// Transport is the external connection capability the core consumes
// (spec.md §6): a single stream/datagram/unix-socket connection to a
// forwarder. The core never knows which concrete transport it is talking
// to — std/engine/face provides Unix, TCP, WebSocket and QUIC
// implementations, all satisfying this interface.
type Transport interface {
	// IsConnected reports whether Connect has been called and has not
	// since failed or been closed.
	IsConnected() bool

	// Connect opens the underlying connection (idempotent once connected,
	// per spec.md §6) and arranges for onReceive to be invoked with each
	// inbound framed block. onReceive must not block: it only ever hands
	// the frame to the engine's single-threaded dispatch queue.
	Connect(onReceive func(frame []byte)) error

	// Send writes a single wire-encoded packet.
	Send(wire []byte) error

	// Close tears down the connection. Idempotent.
	Close() error
}
