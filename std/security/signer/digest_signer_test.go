package signer_test

import (
	"testing"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn"
	sig "github.com/named-data/ndnd-client-core/std/security/signer"
	"github.com/stretchr/testify/require"
)

func TestSha256SignerSignAndValidate(t *testing.T) {
	s := sig.NewSha256Signer()
	require.Equal(t, ndn.SignatureDigestSha256, s.Type())
	require.EqualValues(t, 32, s.EstimateSize())

	covered := enc.Wire{[]byte("hello "), []byte("world")}
	sigValue, err := s.Sign(covered)
	require.NoError(t, err)
	require.Len(t, sigValue, 32)

	fake := fakeSignature{typ: ndn.SignatureDigestSha256, val: sigValue}
	require.True(t, sig.ValidateSha256(covered, fake))
	require.False(t, sig.ValidateSha256(enc.Wire{[]byte("tampered")}, fake))
}

func TestHmacSignerSignAndValidate(t *testing.T) {
	key := []byte("shared-secret")
	s := sig.NewHmacSigner(key)
	require.Equal(t, ndn.SignatureHmacWithSha256, s.Type())

	covered := enc.Wire{[]byte("payload")}
	sigValue, err := s.Sign(covered)
	require.NoError(t, err)

	fake := fakeSignature{typ: ndn.SignatureHmacWithSha256, val: sigValue}
	require.True(t, sig.ValidateHmac(covered, fake, key))
	require.False(t, sig.ValidateHmac(covered, fake, []byte("wrong-secret")))
}

type fakeSignature struct {
	typ ndn.SigType
	val []byte
}

func (f fakeSignature) SigType() ndn.SigType { return f.typ }
func (f fakeSignature) SigValue() []byte     { return f.val }
