package client

import (
	"github.com/named-data/ndnd-client-core/std/log"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
)

// dispatch classifies one inbound framed block and routes it to the PIT or
// the RPT (spec.md §4.6). A decode failure drops the block and the loop
// continues; an app callback panic is caught here so a misbehaving handler
// cannot tear down the reactor (spec.md §7, AppCallbackError).
func (n *Node) dispatch(frame []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(n, "app callback panicked in dispatcher", "recover", r)
		}
	}()

	typ, body, err := legacy.Classify(frame)
	if err != nil {
		log.Warn(n, "failed to classify inbound frame", "err", err)
		return
	}

	switch typ {
	case legacy.TypeInterest:
		n.dispatchInterest(body)
	case legacy.TypeData:
		n.dispatchData(body)
	default:
		log.Trace(n, "dropping frame of unhandled type", "type", typ)
	}
}

func (n *Node) dispatchInterest(body []byte) {
	interest, err := legacy.DecodeInterest(body)
	if err != nil {
		log.Warn(n, "failed to decode inbound interest", "err", err)
		return
	}

	entry := n.rpt.longestMatch(interest.Name)
	if entry == nil {
		log.Trace(n, "no registered prefix for interest - drop", "name", interest.Name)
		return
	}

	entry.onInterest(entry.prefix, interest, n.transport, entry.id)
}

func (n *Node) dispatchData(body []byte) {
	data, err := legacy.DecodeData(body)
	if err != nil {
		log.Warn(n, "failed to decode inbound data", "err", err)
		return
	}

	entry := n.pit.matchIncoming(data.Name)
	if entry == nil {
		log.Trace(n, "no pending interest for data - drop", "name", data.Name)
		return
	}

	// Capture onData and interest by value, PIT entry already removed by
	// matchIncoming above, then invoke: the callback may re-express the
	// same Interest safely (spec.md §4.6).
	onData, interest := entry.onData, entry.interest
	if onData != nil {
		onData(interest, data)
	}
}
