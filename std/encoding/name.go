package encoding

import "strings"

// Name is an ordered sequence of opaque name components (spec.md §3).
type Name []Component

// NewName builds a Name from a list of components.
func NewName(comps ...Component) Name {
	return Name(slicesClone(comps))
}

// NameFromStrings builds a generic-component Name from plain strings, the
// common case for application code and for the fixed probe/registration
// names in spec.md §4.7.
func NameFromStrings(comps ...string) Name {
	n := make(Name, len(comps))
	for i, s := range comps {
		n[i] = NewGenericComponent(s)
	}
	return n
}

func slicesClone(c []Component) []Component {
	out := make([]Component, len(c))
	copy(out, c)
	return out
}

// Append returns a new Name with the given components appended. Per
// spec.md §4.1 this copies; it never mutates the receiver.
func (n Name) Append(comps ...Component) Name {
	out := make(Name, 0, len(n)+len(comps))
	out = append(out, n...)
	out = append(out, comps...)
	return out
}

// Size returns the number of components in the name.
func (n Name) Size() int {
	return len(n)
}

// At returns the component at index i. It panics if i is out of range,
// matching the "fails if i >= size" contract of spec.md §4.1 — callers in
// this codebase never pass an unchecked index.
func (n Name) At(i int) Component {
	return n[i]
}

// Clone deep-copies the Name and every component's backing bytes.
func (n Name) Clone() Name {
	out := make(Name, len(n))
	for i, c := range n {
		out[i] = c.Clone()
	}
	return out
}

// Equal reports whether two names have the same components in the same order.
func (n Name) Equal(o Name) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if !n[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether n is a prefix of other: true iff
// n.Size() <= other.Size() and components [0, n.Size()) are pairwise equal
// (spec.md §3). Every Name is a prefix of itself.
func (n Name) IsPrefixOf(other Name) bool {
	if len(n) > len(other) {
		return false
	}
	for i := range n {
		if !n[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Compare gives a total order over names: first by component count, then
// componentwise. Used only for diagnostic display and deterministic test
// ordering (spec.md §4.1) — matching logic never depends on it.
func (n Name) Compare(o Name) int {
	if len(n) != len(o) {
		if len(n) < len(o) {
			return -1
		}
		return 1
	}
	for i := range n {
		if c := n[i].Compare(o[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Hash returns a non-cryptographic hash over every component, combining
// each Component.Hash in order. The RPT/PIT index does not use it: that
// index buckets by the first component's Component.Hash alone.
func (n Name) Hash() uint64 {
	h := uint64(14695981039346656037) // FNV offset basis, mixed with component hashes
	for _, c := range n {
		h ^= c.Hash()
		h *= 1099511628211
	}
	return h
}

// EncodingLength returns the total wire size of the name's components.
func (n Name) EncodingLength() int {
	l := 0
	for _, c := range n {
		l += c.EncodingLength()
	}
	return l
}

// EncodeInto writes every component's TLV encoding into buf in order.
func (n Name) EncodeInto(buf Buffer) int {
	p := 0
	for _, c := range n {
		p += c.EncodeInto(buf[p:])
	}
	return p
}

// Bytes encodes the name's components (without an outer Name TLV wrapper)
// into a freshly allocated byte slice.
func (n Name) Bytes() []byte {
	buf := make([]byte, n.EncodingLength())
	n.EncodeInto(buf)
	return buf
}

// ParseComponents parses a flat run of component TLVs (as produced by
// Bytes) until buf is exhausted.
func ParseComponents(buf Buffer) Name {
	var n Name
	for len(buf) > 0 {
		c, consumed := ParseComponent(buf)
		n = append(n, c)
		buf = buf[consumed:]
	}
	return n
}

// String renders the name in the conventional slash-separated URI form,
// e.g. "/a/b/c". The empty name renders as "/".
func (n Name) String() string {
	if len(n) == 0 {
		return "/"
	}
	sb := strings.Builder{}
	for _, c := range n {
		sb.WriteByte('/')
		sb.WriteString(c.String())
	}
	return sb.String()
}
