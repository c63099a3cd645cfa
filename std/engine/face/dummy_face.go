package face

import (
	"fmt"
	"sync"
)

// FakeTransport is an in-process ndn.Transport with no real socket,
// grounded in the teacher's DummyFace (std/engine/face/dummy_face.go):
// Connect captures the receive callback, Send appends to an outbox a
// test can inspect with Sent(), and FeedFrame lets a test hand the
// engine an inbound frame directly.
type FakeTransport struct {
	baseTransport
	mu   sync.Mutex
	sent [][]byte
}

// NewFakeTransport constructs a FakeTransport for use in tests.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{}
}

// String renders the transport for log messages.
func (f *FakeTransport) String() string {
	return "fake-transport"
}

// Connect records onReceive and marks the transport connected; there is
// no real dial, so this never fails.
func (f *FakeTransport) Connect(onReceive func(frame []byte)) error {
	if f.IsConnected() {
		return nil
	}
	f.onRecv = onReceive
	f.setStateUp()
	return nil
}

// Close marks the transport disconnected.
func (f *FakeTransport) Close() error {
	f.setStateDown(nil)
	return nil
}

// Send records the frame in the outbox a test inspects with Sent().
func (f *FakeTransport) Send(wire []byte) error {
	if !f.IsConnected() {
		return fmt.Errorf("transport is not connected")
	}
	cp := make([]byte, len(wire))
	copy(cp, wire)

	f.mu.Lock()
	f.sent = append(f.sent, cp)
	f.mu.Unlock()
	return nil
}

// FeedFrame hands the engine an inbound frame as if it arrived on the wire.
func (f *FakeTransport) FeedFrame(frame []byte) error {
	if !f.IsConnected() {
		return fmt.Errorf("transport is not connected")
	}
	f.onRecv(frame)
	return nil
}

// Sent returns every frame handed to Send so far, oldest first.
func (f *FakeTransport) Sent() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([][]byte, len(f.sent))
	copy(out, f.sent)
	return out
}

// TakeSent pops and returns the oldest unconsumed frame handed to Send.
func (f *FakeTransport) TakeSent() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.sent) == 0 {
		return nil, fmt.Errorf("no frame to consume")
	}
	pkt := f.sent[0]
	f.sent = f.sent[1:]
	return pkt, nil
}
