package client

import (
	"testing"
	"time"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
	"github.com/stretchr/testify/require"
)

// Scenario 5: registration requires ndnd-ID (spec.md §8).
func TestScenarioRegistrationRequiresNdndId(t *testing.T) {
	n, tr, _ := newTestNode(t)

	_, err := n.RegisterPrefix(enc.NameFromStrings("p"), func(enc.Name, *legacy.Interest, ndn.Transport, uint64) {},
		func(enc.Name) { t.Fatal("onFailed must not fire") }, 0)
	require.NoError(t, err)

	var probe []byte
	require.Eventually(t, func() bool {
		f, err := tr.TakeSent()
		if err != nil {
			return false
		}
		probe = f
		return true
	}, time.Second, time.Millisecond)

	typ, body, err := legacy.Classify(probe)
	require.NoError(t, err)
	require.Equal(t, legacy.TypeInterest, typ)
	probeInterest, err := legacy.DecodeInterest(body)
	require.NoError(t, err)
	require.Equal(t, ndndIdProbeName, probeInterest.Name)
	require.EqualValues(t, ndndIdProbeLifetimeMs, probeInterest.LifetimeMs)

	ndndID := []byte("forwarder-identity-0123456789ab")
	reply := legacy.EncodeData(&legacy.Data{
		Name:           enc.NameFromStrings("%C1.M.S.localhost", "%C1.M.SRV", "ndnd", "KEY"),
		SigType:        ndn.SignatureSha256WithRsa,
		KeyLocatorName: enc.NewName(enc.NewBytesComponent(enc.TypeGenericNameComponent, ndndID)),
	}).Join()
	require.NoError(t, tr.FeedFrame(reply))

	var regFrame []byte
	require.Eventually(t, func() bool {
		f, err := tr.TakeSent()
		if err != nil {
			return false
		}
		regFrame = f
		return true
	}, time.Second, time.Millisecond)

	typ, body, err = legacy.Classify(regFrame)
	require.NoError(t, err)
	require.Equal(t, legacy.TypeInterest, typ)
	regInterest, err := legacy.DecodeInterest(body)
	require.NoError(t, err)
	require.GreaterOrEqual(t, regInterest.Name.Size(), 3)
	require.Equal(t, "ndnx", regInterest.Name.At(0).String())
	require.Equal(t, "selfreg", regInterest.Name.At(2).String())
	require.EqualValues(t, 1, regInterest.Scope)
}

// Scenario 6: registration probe timeout (spec.md §8).
func TestScenarioRegistrationProbeTimeout(t *testing.T) {
	n, _, tm := newTestNode(t)

	failed := make(chan enc.Name, 1)
	_, err := n.RegisterPrefix(enc.NameFromStrings("p"),
		func(enc.Name, *legacy.Interest, ndn.Transport, uint64) { t.Fatal("onInterest must not be wired") },
		func(prefix enc.Name) { failed <- prefix },
		0,
	)
	require.NoError(t, err)

	tm.MoveForward(4000 * time.Millisecond)

	select {
	case prefix := <-failed:
		require.Equal(t, "/p", prefix.String())
	case <-time.After(time.Second):
		t.Fatal("onFailed never fired")
	}

	<-syncPost(n)
	require.Nil(t, n.rpt.longestMatch(enc.NameFromStrings("p")))
}
