//go:build !tinygo

package face

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// WebSocketTransport is an ndn.Transport over a WebSocket connection,
// grounded in the teacher's WebSocketFace (std/engine/face/ws_face.go).
type WebSocketTransport struct {
	baseTransport
	url  string
	conn *websocket.Conn
}

// NewWebSocketTransport constructs a Transport dialing the given WebSocket URL.
func NewWebSocketTransport(url string) *WebSocketTransport {
	return &WebSocketTransport{url: url}
}

// String renders the transport for log messages.
func (f *WebSocketTransport) String() string {
	return fmt.Sprintf("websocket-transport (%s)", f.url)
}

// Connect dials the WebSocket connection and starts the receive loop.
func (f *WebSocketTransport) Connect(onReceive func(frame []byte)) error {
	if f.IsConnected() {
		return nil
	}

	c, _, err := websocket.DefaultDialer.Dial(f.url, nil)
	if err != nil {
		return err
	}

	f.onRecv = onReceive
	f.conn = c
	f.setStateUp()
	go f.receive()

	return nil
}

// Close closes the WebSocket connection.
func (f *WebSocketTransport) Close() error {
	f.setStateDown(nil)
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

// Send writes a single wire-encoded packet as a binary WebSocket message.
func (f *WebSocketTransport) Send(wire []byte) error {
	if !f.IsConnected() {
		return fmt.Errorf("transport is not connected")
	}
	f.sendMut.Lock()
	defer f.sendMut.Unlock()
	return f.conn.WriteMessage(websocket.BinaryMessage, wire)
}

// receive reads binary WebSocket messages as framed TLV packets.
func (f *WebSocketTransport) receive() {
	for f.IsConnected() {
		messageType, pkt, err := f.conn.ReadMessage()
		if err != nil {
			f.setStateDown(err)
			return
		}
		if messageType != websocket.BinaryMessage {
			continue
		}
		f.onRecv(pkt)
	}
}
