// Package face provides concrete ndn.Transport implementations: Unix and
// TCP streams, WebSocket, QUIC, and (for tests) a fully in-process fake.
package face

import (
	"sync"
	"sync/atomic"
)

// baseTransport is the shared bookkeeping every concrete Transport embeds,
// grounded in the teacher's baseFace (std/engine/face/base_face.go),
// trimmed to the simpler four-method ndn.Transport contract (spec.md §6):
// a running flag, the receive callback, a send mutex, and a single
// down-notification hook for the Node façade's OnFaceDown extension
// (SPEC_FULL.md §13).
type baseTransport struct {
	running atomic.Bool
	onRecv  func(frame []byte)
	onDown  func(err error)
	sendMut sync.Mutex
}

// IsConnected reports whether the transport is currently up.
func (f *baseTransport) IsConnected() bool {
	return f.running.Load()
}

// setStateUp marks the transport connected.
func (f *baseTransport) setStateUp() {
	f.running.Store(true)
}

// setStateDown marks the transport disconnected and, if it transitioned
// from connected, invokes the down-notification hook.
func (f *baseTransport) setStateDown(err error) {
	if f.running.Swap(false) && f.onDown != nil {
		f.onDown(err)
	}
}

// OnDown registers the callback invoked when the transport drops.
func (f *baseTransport) OnDown(cb func(err error)) {
	f.onDown = cb
}
