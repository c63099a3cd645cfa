package client

import (
	"testing"
	"time"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	basic "github.com/named-data/ndnd-client-core/std/engine/basic"
	"github.com/named-data/ndnd-client-core/std/engine/face"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
	"github.com/stretchr/testify/require"
)

func newTestNode(t *testing.T) (*Node, *face.FakeTransport, *basic.DummyTimer) {
	t.Helper()
	tr := face.NewFakeTransport()
	tm := basic.NewDummyTimer()
	n := New(tr, tm)

	go func() { _ = n.Run() }()
	t.Cleanup(func() {
		if n.IsRunning() {
			_ = n.Shutdown(false)
		}
	})
	require.Eventually(t, n.IsRunning, time.Second, time.Millisecond)
	return n, tr, tm
}

func dataFrame(t *testing.T, name enc.Name) []byte {
	t.Helper()
	return legacy.EncodeData(&legacy.Data{Name: name}).Join()
}

// Scenario 1: express & match (spec.md §8).
func TestScenarioExpressAndMatch(t *testing.T) {
	n, tr, _ := newTestNode(t)

	var gotData *legacy.Data
	id, err := n.ExpressInterest(mkInterest(1000, "a", "b"), func(_ *legacy.Interest, data *legacy.Data) {
		gotData = data
	}, func(*legacy.Interest) {
		t.Fatal("onTimeout must not fire")
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	require.NoError(t, tr.FeedFrame(dataFrame(t, enc.NameFromStrings("a", "b", "c"))))

	require.Eventually(t, func() bool { return gotData != nil }, time.Second, time.Millisecond)
	require.Equal(t, "/a/b/c", gotData.Name.String())
}

// Scenario 2: timeout (spec.md §8).
func TestScenarioTimeout(t *testing.T) {
	n, _, tm := newTestNode(t)

	timedOut := make(chan struct{}, 1)
	_, err := n.ExpressInterest(mkInterest(150, "x"), func(*legacy.Interest, *legacy.Data) {
		t.Fatal("onData must not fire")
	}, func(*legacy.Interest) {
		timedOut <- struct{}{}
	})
	require.NoError(t, err)

	tm.MoveForward(200 * time.Millisecond)

	select {
	case <-timedOut:
	case <-time.After(time.Second):
		t.Fatal("onTimeout never fired")
	}
}

// Scenario 3: cancel before fire (spec.md §8).
func TestScenarioCancelBeforeFire(t *testing.T) {
	n, tr, _ := newTestNode(t)

	id, err := n.ExpressInterest(mkInterest(1000, "y"), func(*legacy.Interest, *legacy.Data) {
		t.Fatal("onData must not fire for a cancelled interest")
	}, func(*legacy.Interest) {
		t.Fatal("onTimeout must not fire for a cancelled interest")
	})
	require.NoError(t, err)

	n.Post(func() { n.RemovePendingInterest(id) })
	<-syncPost(n)

	require.NoError(t, tr.FeedFrame(dataFrame(t, enc.NameFromStrings("y"))))
	time.Sleep(20 * time.Millisecond) // give the dispatcher a chance to misbehave
}

// Scenario 4: longest-prefix dispatch (spec.md §8).
func TestScenarioLongestPrefixDispatch(t *testing.T) {
	n, tr, _ := newTestNode(t)

	var h1Fired, h2Fired bool
	onH1 := func(enc.Name, *legacy.Interest, ndn.Transport, uint64) { h1Fired = true }
	onH2 := func(enc.Name, *legacy.Interest, ndn.Transport, uint64) { h2Fired = true }

	n.Post(func() {
		n.rpt.insert(enc.NameFromStrings("a"), onH1)
		n.rpt.insert(enc.NameFromStrings("a", "b"), onH2)
	})
	<-syncPost(n)

	require.NoError(t, tr.FeedFrame(legacy.EncodeInterest(mkInterest(1000, "a", "b", "c")).Join()))
	require.Eventually(t, func() bool { return h2Fired }, time.Second, time.Millisecond)
	require.False(t, h1Fired)

	h1Fired, h2Fired = false, false
	require.NoError(t, tr.FeedFrame(legacy.EncodeInterest(mkInterest(1000, "a", "x")).Join()))
	require.Eventually(t, func() bool { return h1Fired }, time.Second, time.Millisecond)
	require.False(t, h2Fired)
}

func syncPost(n *Node) <-chan struct{} {
	done := make(chan struct{})
	n.Post(func() { close(done) })
	return done
}
