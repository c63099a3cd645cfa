package client

import (
	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn"
	"github.com/named-data/ndnd-client-core/std/ndn/legacy"
)

// OnInterestFunc is invoked when an Interest arrives matching a registered
// prefix, given the prefix it matched under, the Interest itself, the
// transport to reply on, and the registration's id.
type OnInterestFunc func(prefix enc.Name, interest *legacy.Interest, transport ndn.Transport, id uint64)

// registeredPrefix is one entry in the Registered Prefix Table.
type registeredPrefix struct {
	id         uint64
	prefix     enc.Name
	onInterest OnInterestFunc
}

// rpt is the Registered Prefix Table: an insertion-ordered sequence of
// application-owned prefixes, matched against incoming Interests by
// matching-constrained longest-prefix match (spec.md §4.4's semantics).
// byHead/headless bucket entries by their prefix's first component, built
// once at insert and kept in sync on removal, so longestMatch scans only
// entries that can possibly prefix-match an incoming Interest name instead
// of the whole table.
type rpt struct {
	entries  []*registeredPrefix
	byHead   map[uint64][]*registeredPrefix
	headless []*registeredPrefix // entries whose prefix is empty, and so always a candidate
	nextID   uint64
}

func newRPT() *rpt {
	return &rpt{}
}

// insert allocates an id, appends the entry, indexes it by its prefix's
// first component, and returns the id.
func (r *rpt) insert(prefix enc.Name, onInterest OnInterestFunc) uint64 {
	r.nextID++
	id := r.nextID
	e := &registeredPrefix{
		id:         id,
		prefix:     prefix,
		onInterest: onInterest,
	}
	r.entries = append(r.entries, e)
	r.indexInsert(e)
	return id
}

func (r *rpt) indexInsert(e *registeredPrefix) {
	if head, ok := firstComponentHash(e.prefix); ok {
		if r.byHead == nil {
			r.byHead = make(map[uint64][]*registeredPrefix)
		}
		r.byHead[head] = append(r.byHead[head], e)
	} else {
		r.headless = append(r.headless, e)
	}
}

func (r *rpt) indexRemove(e *registeredPrefix) {
	if head, ok := firstComponentHash(e.prefix); ok {
		r.byHead[head] = removeRegisteredPrefix(r.byHead[head], e)
	} else {
		r.headless = removeRegisteredPrefix(r.headless, e)
	}
}

func removeRegisteredPrefix(s []*registeredPrefix, target *registeredPrefix) []*registeredPrefix {
	for i, e := range s {
		if e == target {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

// removeByID removes every entry with the given id. Silent on no-match.
func (r *rpt) removeByID(id uint64) {
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.indexRemove(e)
			return
		}
	}
}

// longestMatch returns the entry whose prefix is a prefix of name and has
// the greatest size among those that match, breaking ties by earliest
// insertion. Returns nil if no entry matches. Only the bucket of entries
// sharing name's first component, plus any headless (empty prefix)
// entries, are scanned.
func (r *rpt) longestMatch(name enc.Name) *registeredPrefix {
	var bucket []*registeredPrefix
	if head, ok := firstComponentHash(name); ok {
		bucket = r.byHead[head]
	}

	best := bestPrefixMatch(bucket, name, nil)
	return bestPrefixMatch(r.headless, name, best)
}

// bestPrefixMatch scans list for the entry with the longest prefix of name,
// starting from (and possibly keeping) best; ties are broken by whichever
// entry has the smaller id, i.e. was inserted first, regardless of scan
// order between the caller's separate bucket and headless passes.
func bestPrefixMatch(list []*registeredPrefix, name enc.Name, best *registeredPrefix) *registeredPrefix {
	for _, e := range list {
		if !e.prefix.IsPrefixOf(name) {
			continue
		}
		switch {
		case best == nil:
			best = e
		case e.prefix.Size() > best.prefix.Size():
			best = e
		case e.prefix.Size() == best.prefix.Size() && e.id < best.id:
			best = e
		}
	}
	return best
}
