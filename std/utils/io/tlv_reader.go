// Package io holds small stream-framing helpers used by the face
// implementations in std/engine/face.
package io

import (
	"errors"
	"io"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
)

// ReadTlvStream reads consecutive TLV-framed packets from r, invoking
// onFrame with each complete frame's raw bytes (Type-Length-Value, as
// produced by legacy.Classify's caller). onFrame returns false to stop
// reading. Mirrors the stream-face read loop the teacher's StreamFace
// drives (std/engine/face/stream_face.go's receive method).
func ReadTlvStream(r io.Reader, onFrame func([]byte) bool, scratch []byte) error {
	if scratch == nil {
		scratch = make([]byte, 0, 8800)
	}
	buf := scratch[:0]
	chunk := make([]byte, 4096)

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)

			for {
				frameLen, ok := frameLength(buf)
				if !ok {
					break
				}
				if frameLen > len(buf) {
					break
				}

				frame := make([]byte, frameLen)
				copy(frame, buf[:frameLen])
				buf = buf[frameLen:]

				if !onFrame(frame) {
					return nil
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

// frameLength returns the total byte length of the TLV frame starting at
// buf[0] (Type + Length header + Value), and false if buf does not yet
// contain a complete Type-Length header to compute it from.
func frameLength(buf []byte) (int, bool) {
	typLen, ok := tlNumLen(buf)
	if !ok {
		return 0, false
	}
	if typLen >= len(buf) {
		return 0, false
	}
	lenLen, ok := tlNumLen(buf[typLen:])
	if !ok {
		return 0, false
	}
	if typLen+lenLen > len(buf) {
		return 0, false
	}
	l, _ := enc.ParseTLNum(enc.Buffer(buf[typLen:]))
	return typLen + lenLen + int(l), true
}

// tlNumLen returns the number of bytes a TLNum starting at buf[0] occupies,
// or false if buf does not yet hold that many bytes.
func tlNumLen(buf []byte) (int, bool) {
	if len(buf) == 0 {
		return 0, false
	}
	switch x := buf[0]; {
	case x <= 0xfc:
		return 1, true
	case x == 0xfd:
		return 3, len(buf) >= 3
	case x == 0xfe:
		return 5, len(buf) >= 5
	default:
		return 9, len(buf) >= 9
	}
}
