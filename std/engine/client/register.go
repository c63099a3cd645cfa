package client

import (
	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
)

// ndndIdProbeName is the fixed probe Interest name (spec.md §4.7 step 2a)
// used to discover the local forwarder's identity.
var ndndIdProbeName = enc.NameFromStrings(
	"%C1.M.S.localhost", "%C1.M.SRV", "ndnd", "KEY",
)

// ndndIdProbeLifetimeMs is the probe Interest's lifetime (spec.md §6: "NdndId
// probe Interest lifetime equals 4000 ms").
const ndndIdProbeLifetimeMs = 4000

// OnRegisterFailedFunc is invoked exactly once if the ndnd-ID probe times
// out, and the prefix is never inserted into the RPT.
type OnRegisterFailedFunc func(prefix enc.Name)

// pendingRegistration is a registerPrefix call queued while the ndnd-ID
// probe for the node is still outstanding (spec.md §9: "AwaitingNdndId").
type pendingRegistration struct {
	prefix     enc.Name
	onInterest OnInterestFunc
	onFailed   OnRegisterFailedFunc
	flags      uint64
	id         uint64
}

// registerPrefix implements the two-phase registration protocol (spec.md
// §4.7). It allocates the RPT id immediately — before any network I/O — so
// the caller has a cancel handle even while the ndnd-ID probe is pending.
func (n *Node) registerPrefix(prefix enc.Name, onInterest OnInterestFunc, onFailed OnRegisterFailedFunc, flags uint64) uint64 {
	n.rpt.nextID++
	id := n.rpt.nextID

	if len(n.ndndID) == 0 {
		n.pendingRegs = append(n.pendingRegs, pendingRegistration{
			prefix:     prefix,
			onInterest: onInterest,
			onFailed:   onFailed,
			flags:      flags,
			id:         id,
		})
		n.startNdndIdProbe()
		return id
	}

	n.finishRegistration(prefix, onInterest, flags, id)
	return id
}

// startNdndIdProbe expresses the ndnd-ID probe Interest if one is not
// already in flight, per the Init -> NeedsNdndId -> Probing state machine
// (spec.md §4.7).
func (n *Node) startNdndIdProbe() {
	if n.probing {
		return
	}
	n.probing = true

	probe := &legacy.Interest{
		Name:       ndndIdProbeName,
		LifetimeMs: ndndIdProbeLifetimeMs,
	}

	n.expressInterestLow(probe,
		func(_ *legacy.Interest, data *legacy.Data) {
			n.probing = false
			id := legacy.ExtractNdndId(data)
			if len(id) == 0 {
				n.failAllPending()
				return
			}
			n.ndndID = id
			n.dispatchPending()
		},
		func(*legacy.Interest) {
			n.probing = false
			n.failAllPending()
		},
	)
}

// failAllPending invokes onFailed for every queued registration and empties
// the queue; the core does not insert any of them into the RPT.
func (n *Node) failAllPending() {
	pending := n.pendingRegs
	n.pendingRegs = nil
	for _, p := range pending {
		if p.onFailed != nil {
			p.onFailed(p.prefix)
		}
	}
}

// dispatchPending completes every queued registration once the ndnd-ID is known.
func (n *Node) dispatchPending() {
	pending := n.pendingRegs
	n.pendingRegs = nil
	for _, p := range pending {
		n.finishRegistration(p.prefix, p.onInterest, p.flags, p.id)
	}
}

// finishRegistration builds and sends the self-registration Interest
// (spec.md §4.7 steps 3-6), inserting the RPT entry before sending so a
// reply arriving during send cannot miss the handler.
func (n *Node) finishRegistration(prefix enc.Name, onInterest OnInterestFunc, flags uint64, id uint64) {
	fe := legacy.NewSelfRegEntry(prefix, flags)
	feWire := fe.Encode()

	regData := &legacy.Data{
		Name:     nil,
		Content:  feWire,
		SigType:  ndn.SignatureSha256WithRsa,
		SigValue: nil, // empty signature value, by the legacy convention
	}
	encodedData := legacy.EncodeData(regData).Join()

	regName := enc.NewName().
		Append(enc.NewStringComponent(enc.TypeGenericNameComponent, "ndnx")).
		Append(enc.NewBytesComponent(enc.TypeGenericNameComponent, n.ndndID)).
		Append(enc.NewStringComponent(enc.TypeGenericNameComponent, "selfreg")).
		Append(enc.NewBytesComponent(enc.TypeGenericNameComponent, encodedData))

	regInterest := &legacy.Interest{
		Name:       regName,
		LifetimeMs: -1,
		Scope:      1,
	}

	e := &registeredPrefix{
		id:         id,
		prefix:     prefix,
		onInterest: onInterest,
	}
	n.rpt.entries = append(n.rpt.entries, e)
	n.rpt.indexInsert(e)

	n.sendInterest(regInterest)
}
