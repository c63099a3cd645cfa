package encoding_test

import (
	"errors"
	"testing"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/stretchr/testify/require"
)

func TestWireJoinEmpty(t *testing.T) {
	var w enc.Wire
	require.Equal(t, []byte{}, w.Join())
}

func TestWireJoinSingleBuffer(t *testing.T) {
	w := enc.Wire{[]byte("abc")}
	require.Equal(t, []byte("abc"), w.Join())
}

func TestWireJoinMultipleBuffers(t *testing.T) {
	w := enc.Wire{[]byte("ab"), []byte("cd"), []byte("ef")}
	require.Equal(t, []byte("abcdef"), w.Join())
}

func TestWireLength(t *testing.T) {
	w := enc.Wire{[]byte("ab"), []byte("cde")}
	require.Equal(t, uint64(5), w.Length())
}

func TestErrFormatMessage(t *testing.T) {
	err := enc.ErrFormat{Msg: "bad name"}
	require.Equal(t, "bad name", err.Error())
}

func TestErrFailToParseWrapsUnderlyingError(t *testing.T) {
	inner := errors.New("truncated")
	err := enc.ErrFailToParse{TypeNum: enc.TLNum(5), Err: inner}
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "5")
}

func TestErrUnexpectedWrapsUnderlyingError(t *testing.T) {
	inner := errors.New("out of range")
	err := enc.ErrUnexpected{Err: inner}
	require.ErrorIs(t, err, inner)
}
