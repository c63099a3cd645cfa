package face_test

import (
	"testing"

	"github.com/named-data/ndnd-client-core/std/engine/face"
	"github.com/stretchr/testify/require"
)

// Send before Connect must fail; Connect then Send must record the frame
// for later inspection via Sent/TakeSent, in order.
func TestFakeTransportSend(t *testing.T) {
	tr := face.NewFakeTransport()
	require.Error(t, tr.Send([]byte{0x05, 0x03, 0x01, 0x02, 0x03}))

	require.NoError(t, tr.Connect(func([]byte) {
		t.Fatal("no frame should be received in this test")
	}))
	require.True(t, tr.IsConnected())

	require.NoError(t, tr.Send([]byte{0x05, 0x03, 0x01, 0x02, 0x03}))
	require.NoError(t, tr.Send([]byte{0x05, 0x01, 0x01}))

	first, err := tr.TakeSent()
	require.NoError(t, err)
	require.Equal(t, []byte{0x05, 0x03, 0x01, 0x02, 0x03}, first)

	second, err := tr.TakeSent()
	require.NoError(t, err)
	require.Equal(t, []byte{0x05, 0x01, 0x01}, second)

	_, err = tr.TakeSent()
	require.Error(t, err)

	require.NoError(t, tr.Close())
	require.False(t, tr.IsConnected())
}

// FeedFrame hands each fed frame straight to the receive callback, in order.
func TestFakeTransportFeed(t *testing.T) {
	tr := face.NewFakeTransport()
	var got [][]byte
	require.NoError(t, tr.Connect(func(frame []byte) {
		cp := make([]byte, len(frame))
		copy(cp, frame)
		got = append(got, cp)
	}))

	require.NoError(t, tr.FeedFrame([]byte{0x05, 0x03, 0x01, 0x02, 0x03}))
	require.NoError(t, tr.FeedFrame([]byte{0x05, 0x01, 0x01}))
	require.NoError(t, tr.FeedFrame([]byte{0x05, 0x04, 0x01, 0x02, 0x03, 0x04}))

	require.Equal(t, [][]byte{
		{0x05, 0x03, 0x01, 0x02, 0x03},
		{0x05, 0x01, 0x01},
		{0x05, 0x04, 0x01, 0x02, 0x03, 0x04},
	}, got)

	require.NoError(t, tr.Close())
	require.Error(t, tr.FeedFrame([]byte{0x05, 0x01, 0x01}))
}
