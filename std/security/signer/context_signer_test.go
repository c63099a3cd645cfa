package signer_test

import (
	"testing"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	sig "github.com/named-data/ndnd-client-core/std/security/signer"
	"github.com/stretchr/testify/require"
)

func TestContextSignerOverridesKeyLocator(t *testing.T) {
	base := sig.NewSha256Signer()
	locator := enc.NameFromStrings("a", "KEY", "self")
	cs := &sig.ContextSigner{Signer: base, KeyLocatorName: locator}

	require.True(t, locator.Equal(cs.KeyLocator()))
	require.Equal(t, base.Type(), cs.Type())

	sigValue, err := cs.Sign(enc.Wire{[]byte("data")})
	require.NoError(t, err)
	require.Len(t, sigValue, 32)
}
