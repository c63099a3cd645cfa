package client

import (
	"testing"

	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/stretchr/testify/require"
)

func TestRPTLongestMatchPrefersDeeperPrefix(t *testing.T) {
	r := newRPT()
	idA := r.insert(enc.NameFromStrings("a"), nil)
	idB := r.insert(enc.NameFromStrings("a", "b"), nil)

	entry := r.longestMatch(enc.NameFromStrings("a", "b", "c"))
	require.NotNil(t, entry)
	require.Equal(t, idB, entry.id)

	entry = r.longestMatch(enc.NameFromStrings("a", "x"))
	require.NotNil(t, entry)
	require.Equal(t, idA, entry.id)
}

func TestRPTLongestMatchRequiresActualMatch(t *testing.T) {
	r := newRPT()
	r.insert(enc.NameFromStrings("a", "b", "c", "d"), nil)
	r.insert(enc.NameFromStrings("x"), nil)

	// /x is a shorter entry but it is the only one that actually matches
	// /x/y — the deeper /a/b/c/d entry must not be returned just because
	// it's the longest prefix in the table (spec.md §4.4's corrected
	// matching-constrained semantics; see DESIGN.md's bug-compatibility
	// decision).
	entry := r.longestMatch(enc.NameFromStrings("x", "y"))
	require.NotNil(t, entry)
	require.Equal(t, enc.NameFromStrings("x"), entry.prefix)
}

func TestRPTLongestMatchTiesBreakByEarliestInsertion(t *testing.T) {
	r := newRPT()
	idFirst := r.insert(enc.NameFromStrings("a"), nil)
	r.insert(enc.NameFromStrings("a"), nil)

	entry := r.longestMatch(enc.NameFromStrings("a", "b"))
	require.NotNil(t, entry)
	require.Equal(t, idFirst, entry.id)
}

func TestRPTNoMatchReturnsNil(t *testing.T) {
	r := newRPT()
	r.insert(enc.NameFromStrings("a"), nil)

	require.Nil(t, r.longestMatch(enc.NameFromStrings("z")))
}

func TestRPTRemoveByID(t *testing.T) {
	r := newRPT()
	id := r.insert(enc.NameFromStrings("a"), nil)
	r.removeByID(id)

	require.Nil(t, r.longestMatch(enc.NameFromStrings("a", "b")))

	// Idempotent.
	r.removeByID(id)
}
