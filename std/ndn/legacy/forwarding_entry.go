package legacy

import enc "github.com/named-data/ndnd-client-core/std/encoding"

// Custom (non-2014-NDN-TLV) type numbers for the ForwardingEntry structure
// carried as Data content in the self-registration handshake (spec.md
// §4.7 step 3). These live outside the standard NDN-TLV type range so they
// never collide with a future codec upgrade.
const (
	TypeForwardingEntry    enc.TLNum = 0x80
	TypeFwAction           enc.TLNum = 0x81
	TypeFwPrefix           enc.TLNum = 0x82
	TypeFwFaceId           enc.TLNum = 0x83
	TypeFwFlags            enc.TLNum = 0x84
	TypeFwFreshnessPeriod  enc.TLNum = 0x85
)

// ForwardingEntry is the legacy self-registration payload (spec.md §4.7
// step 3): a request that the forwarder start delivering Interests under
// Prefix to this face.
type ForwardingEntry struct {
	Action          string
	Prefix          enc.Name
	FaceId          int64
	Flags           uint64
	FreshnessPeriod int64
}

// NewSelfRegEntry builds the ForwardingEntry spec.md §4.7 step 3 requires:
// action "selfreg", the given prefix, FaceId -1 (let the forwarder infer
// it from the connection the Interest arrives on), and FreshnessPeriod -1
// (unspecified).
func NewSelfRegEntry(prefix enc.Name, flags uint64) *ForwardingEntry {
	return &ForwardingEntry{
		Action:          "selfreg",
		Prefix:          prefix,
		FaceId:          -1,
		Flags:           flags,
		FreshnessPeriod: -1,
	}
}

// Encode wire-encodes the ForwardingEntry as a ForwardingEntry TLV.
func (fe *ForwardingEntry) Encode() []byte {
	prefixBytes := fe.Prefix.Bytes()
	parts := []tlvPart{
		{TypeFwAction, []byte(fe.Action)},
		{TypeFwPrefix, prefixBytes},
		{TypeFwFaceId, enc.Nat(uint64(fe.FaceId)).Bytes()},
		{TypeFwFlags, enc.Nat(fe.Flags).Bytes()},
		{TypeFwFreshnessPeriod, enc.Nat(uint64(fe.FreshnessPeriod)).Bytes()},
	}
	bodyLen := 0
	for _, p := range parts {
		bodyLen += tlvLen(p.typ, p.val)
	}
	buf := make(enc.Buffer, TypeForwardingEntry.EncodingLength()+enc.TLNum(bodyLen).EncodingLength()+bodyLen)
	pos := TypeForwardingEntry.EncodeInto(buf)
	pos += enc.TLNum(bodyLen).EncodeInto(buf[pos:])
	for _, p := range parts {
		pos += writeTlv(buf[pos:], p.typ, p.val)
	}
	return buf[:pos]
}

// NdndIdSize is the size of the fixed-size signer-id fragment extracted from a
// Data reply's KeyLocator name, per the NDN convention spec.md §4.7 step 2b
// describes: the last component of the KeyLocator name, truncated or
// zero-padded to NdndIdSize bytes (the historical publisher-key-digest
// convention, 32 bytes — the length of a SHA-256 digest).
const NdndIdSize = 32

// ExtractNdndId extracts the ndnd-ID from a Data packet's KeyLocator name
// (spec.md §4.7 step 2b). Returns nil if the Data carries no KeyLocator.
func ExtractNdndId(d *Data) []byte {
	if d.KeyLocatorName == nil || d.KeyLocatorName.Size() == 0 {
		return nil
	}
	last := d.KeyLocatorName.At(d.KeyLocatorName.Size() - 1)
	id := make([]byte, NdndIdSize)
	copy(id, last.Val)
	return id
}
