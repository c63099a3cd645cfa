package legacy_test

import (
	"testing"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
	"github.com/named-data/ndnd-client-core/std/security/signer"
	"github.com/stretchr/testify/require"
)

func TestInterestEncodeDecodeRoundTrip(t *testing.T) {
	i := &legacy.Interest{Name: enc.NameFromStrings("a", "b"), LifetimeMs: 4000, Scope: 1}
	wire := legacy.EncodeInterest(i).Join()

	typ, body, err := legacy.Classify(wire)
	require.NoError(t, err)
	require.Equal(t, legacy.TypeInterest, typ)

	got, err := legacy.DecodeInterest(body)
	require.NoError(t, err)
	require.True(t, i.Name.Equal(got.Name))
	require.EqualValues(t, 4000, got.LifetimeMs)
	require.Equal(t, 1, got.Scope)
}

func TestInterestDecodeDefaultsLifetimeToUnspecified(t *testing.T) {
	i := &legacy.Interest{Name: enc.NameFromStrings("a"), LifetimeMs: -1}
	wire := legacy.EncodeInterest(i).Join()
	_, body, err := legacy.Classify(wire)
	require.NoError(t, err)
	got, err := legacy.DecodeInterest(body)
	require.NoError(t, err)
	require.EqualValues(t, -1, got.LifetimeMs)
	require.Equal(t, 0, got.Scope)
}

func TestInterestMatchesName(t *testing.T) {
	i := &legacy.Interest{Name: enc.NameFromStrings("a", "b"), LifetimeMs: -1}
	require.True(t, i.MatchesName(enc.NameFromStrings("a", "b", "c")))
	require.True(t, i.MatchesName(enc.NameFromStrings("a", "b")))
	require.False(t, i.MatchesName(enc.NameFromStrings("a")))
	require.False(t, i.MatchesName(enc.NameFromStrings("x")))
}

func TestDataEncodeDecodeRoundTrip(t *testing.T) {
	d := &legacy.Data{
		Name:           enc.NameFromStrings("a", "b"),
		Content:        []byte("hello"),
		SigType:        ndn.SignatureSha256WithRsa,
		SigValue:       nil,
		KeyLocatorName: enc.NewName(enc.NewBytesComponent(enc.TypeGenericNameComponent, []byte("locator"))),
	}
	wire := legacy.EncodeData(d).Join()

	typ, body, err := legacy.Classify(wire)
	require.NoError(t, err)
	require.Equal(t, legacy.TypeData, typ)

	got, err := legacy.DecodeData(body)
	require.NoError(t, err)
	require.True(t, d.Name.Equal(got.Name))
	require.Equal(t, d.Content, got.Content)
	require.Equal(t, d.SigType, got.SigType)
	require.True(t, d.KeyLocatorName.Equal(got.KeyLocatorName))
}

func TestDataDecodeRejectsMissingName(t *testing.T) {
	_, err := legacy.DecodeData(nil)
	require.Error(t, err)
}

func TestSignDataFillsSignatureFields(t *testing.T) {
	d := &legacy.Data{Name: enc.NameFromStrings("a"), Content: []byte("x")}
	s, err := signer.KeygenEd25519(enc.NameFromStrings("a", "KEY"))
	require.NoError(t, err)

	require.NoError(t, legacy.SignData(d, s))
	require.Equal(t, ndn.SignatureEd25519, d.SigType)
	require.NotEmpty(t, d.SigValue)
	require.True(t, s.KeyLocator().Equal(d.KeyLocatorName))

	wire := legacy.EncodeData(d).Join()
	_, body, err := legacy.Classify(wire)
	require.NoError(t, err)
	got, err := legacy.DecodeData(body)
	require.NoError(t, err)
	require.Equal(t, d.SigValue, got.SigValue)
}

func TestClassifyRejectsEmptyFrame(t *testing.T) {
	_, _, err := legacy.Classify(nil)
	require.Error(t, err)
}

func TestClassifyRejectsTruncatedFrame(t *testing.T) {
	wire := legacy.EncodeInterest(&legacy.Interest{Name: enc.NameFromStrings("a"), LifetimeMs: -1}).Join()
	_, _, err := legacy.Classify(wire[:len(wire)-1])
	require.Error(t, err)
}
