package face

import (
	"fmt"
	"io"
	"net"

	ndn_io "github.com/named-data/ndnd-client-core/std/utils/io"
)

// StreamTransport is an ndn.Transport over a stream connection (Unix
// domain socket or TCP), grounded in the teacher's StreamFace
// (std/engine/face/stream_face.go).
type StreamTransport struct {
	baseTransport
	network string
	addr    string
	conn    net.Conn
	writer  *ndn_io.TimedWriter
}

// NewUnixTransport constructs a Transport over a Unix domain socket,
// mirroring engine/factory.go's NewUnixFace.
func NewUnixTransport(addr string) *StreamTransport {
	return &StreamTransport{network: "unix", addr: addr}
}

// NewTCPTransport constructs a Transport over a TCP connection.
func NewTCPTransport(addr string) *StreamTransport {
	return &StreamTransport{network: "tcp", addr: addr}
}

// String renders the transport in the teacher's "kind (network://address)" form.
func (f *StreamTransport) String() string {
	return fmt.Sprintf("stream-transport (%s://%s)", f.network, f.addr)
}

// Connect dials the stream connection and starts the receive loop.
func (f *StreamTransport) Connect(onReceive func(frame []byte)) error {
	if f.IsConnected() {
		return nil
	}

	c, err := net.Dial(f.network, f.addr)
	if err != nil {
		return err
	}

	f.onRecv = onReceive
	f.conn = c
	f.writer = ndn_io.NewTimedWriter(c, 8800) // buffer sized to the 8800-byte legacy MTU
	f.setStateUp()
	go f.receive()

	return nil
}

// Close flushes any buffered bytes and closes the underlying connection.
func (f *StreamTransport) Close() error {
	f.setStateDown(nil)
	if f.writer != nil {
		_ = f.writer.Flush()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

// Send queues a wire-encoded packet on the stream's TimedWriter, which
// coalesces back-to-back sends into fewer syscalls and flushes on its own
// deadline (std/utils/io/timed_writer.go).
func (f *StreamTransport) Send(wire []byte) error {
	if !f.IsConnected() {
		return fmt.Errorf("transport is not connected")
	}

	f.sendMut.Lock()
	defer f.sendMut.Unlock()

	_, err := f.writer.Write(wire)
	return err
}

// receive reads framed TLV packets off the stream until it closes or errors.
func (f *StreamTransport) receive() {
	err := ndn_io.ReadTlvStream(f.conn, func(b []byte) bool {
		f.onRecv(b)
		return f.IsConnected()
	}, nil)

	if err == nil {
		err = io.EOF
	}
	f.setStateDown(err)
}
