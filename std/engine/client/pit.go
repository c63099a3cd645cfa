// Package client implements the Node façade: the single-threaded reactor
// that multiplexes application requests and inbound transport frames,
// grounded in the teacher's basic.Engine (std/engine/basic/engine.go).
package client

import (
	"time"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
)

// DefaultInterestLifetime is the deadline assigned when an Interest's
// lifetime is unspecified (negative), mirroring the teacher's
// DefaultInterestLife (std/engine/basic/engine.go).
const DefaultInterestLifetime = 4000 * time.Millisecond

// OnDataFunc is invoked exactly once when a PendingInterest is satisfied
// by matching Data.
type OnDataFunc func(interest *legacy.Interest, data *legacy.Data)

// OnTimeoutFunc is invoked exactly once when a PendingInterest's deadline
// elapses with no matching Data.
type OnTimeoutFunc func(interest *legacy.Interest)

// pendingInterest is one outstanding PIT entry. The table owns it outright;
// a match or sweep transfers the callbacks out before they run, so a
// callback can never observe its own entry (the "remove-before-callback"
// rule).
type pendingInterest struct {
	id        uint64
	interest  *legacy.Interest
	onData    OnDataFunc
	onTimeout OnTimeoutFunc
	deadline  time.Time
}

// pit is the Pending Interest Table: an insertion-ordered sequence of
// outstanding Interests, matched against incoming Data and swept for
// timeouts by a single periodic timer. byHead/headless are a bucket index
// over the Interest name's first component, built once at insert and kept
// in sync on removal, so matchIncoming scans only entries that can
// possibly prefix-match an incoming Data name instead of the whole table.
type pit struct {
	entries  []*pendingInterest
	byHead   map[uint64][]*pendingInterest
	headless []*pendingInterest // entries whose Interest Name is empty, and so always a candidate
	nextID   uint64
}

func newPIT() *pit {
	return &pit{}
}

// insert allocates an id, computes the deadline, appends the entry at the
// end of insertion order, indexes it by its Interest name's first
// component, and returns the id.
func (p *pit) insert(now time.Time, interest *legacy.Interest, onData OnDataFunc, onTimeout OnTimeoutFunc) uint64 {
	p.nextID++
	id := p.nextID

	lifetime := DefaultInterestLifetime
	if interest.LifetimeMs >= 0 {
		lifetime = time.Duration(interest.LifetimeMs) * time.Millisecond
	}

	e := &pendingInterest{
		id:        id,
		interest:  interest,
		onData:    onData,
		onTimeout: onTimeout,
		deadline:  now.Add(lifetime),
	}
	p.entries = append(p.entries, e)
	p.indexInsert(e)
	return id
}

func (p *pit) indexInsert(e *pendingInterest) {
	if head, ok := firstComponentHash(e.interest.Name); ok {
		if p.byHead == nil {
			p.byHead = make(map[uint64][]*pendingInterest)
		}
		p.byHead[head] = append(p.byHead[head], e)
	} else {
		p.headless = append(p.headless, e)
	}
}

func (p *pit) indexRemove(e *pendingInterest) {
	if head, ok := firstComponentHash(e.interest.Name); ok {
		p.byHead[head] = removePendingInterest(p.byHead[head], e)
	} else {
		p.headless = removePendingInterest(p.headless, e)
	}
}

func removePendingInterest(s []*pendingInterest, target *pendingInterest) []*pendingInterest {
	for i, e := range s {
		if e == target {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// removeByID removes every entry with the given id (normally at most one).
// Silent on no-match; idempotent.
func (p *pit) removeByID(id uint64) {
	for i, e := range p.entries {
		if e.id == id {
			p.entries = append(p.entries[:i], p.entries[i+1:]...)
			p.indexRemove(e)
			return
		}
	}
}

// matchIncoming returns and removes the earliest-inserted entry whose
// Interest matches dataName, or nil if none matches. Only the bucket of
// entries sharing dataName's first component, plus any headless (empty
// Interest name) entries, are scanned — a genuine reduction over the full
// table once many prefixes are pending, since buckets are sized by a hash
// computed once at insert, not recomputed per comparison.
func (p *pit) matchIncoming(dataName enc.Name) *pendingInterest {
	var bucket []*pendingInterest
	if head, ok := firstComponentHash(dataName); ok {
		bucket = p.byHead[head]
	}

	candidate := earliestPendingMatch(bucket, dataName)
	if alt := earliestPendingMatch(p.headless, dataName); alt != nil && (candidate == nil || alt.id < candidate.id) {
		candidate = alt
	}
	if candidate == nil {
		return nil
	}
	p.removeByID(candidate.id)
	return candidate
}

// earliestPendingMatch returns the first entry in list (already in
// insertion order) whose Interest matches dataName.
func earliestPendingMatch(list []*pendingInterest, dataName enc.Name) *pendingInterest {
	for _, e := range list {
		if e.interest.MatchesName(dataName) {
			return e
		}
	}
	return nil
}

// firstComponentHash returns the hash of name's first component and true,
// or false if name is empty. Used to bucket PIT/RPT entries by their first
// component at insert time, and to pick the matching bucket at query time —
// an empty name always matches as a prefix, so it is indexed separately
// under headless rather than bucketed.
func firstComponentHash(name enc.Name) (uint64, bool) {
	if name.Size() == 0 {
		return 0, false
	}
	return name.At(0).Hash(), true
}

// sweepExpired removes and returns, in insertion order, every entry whose
// deadline has passed at or before now.
func (p *pit) sweepExpired(now time.Time) []*pendingInterest {
	var expired []*pendingInterest
	kept := p.entries[:0]
	for _, e := range p.entries {
		if !e.deadline.After(now) {
			expired = append(expired, e)
			p.indexRemove(e)
		} else {
			kept = append(kept, e)
		}
	}
	p.entries = kept
	return expired
}
