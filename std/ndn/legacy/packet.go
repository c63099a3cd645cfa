// Package legacy is the minimal TLV codec the client core needs for the
// pre-2014 ndnx self-registration protocol described in spec.md §4.7.
// spec.md §1 lists the full Name/Interest/Data codec as a non-goal
// ("assumed available"); this package is the thin stand-in SPEC_FULL.md §12
// explains — just enough Type-Length-Value plumbing to build and parse the
// packets the registration handshake and ordinary Interest/Data exchange
// require, without dragging in the 2022 LpPacket/Nack/fragmentation
// machinery the legacy protocol never uses.
package legacy

import (
	enc "github.com/named-data/ndnd-client-core/std/encoding"
	"github.com/named-data/ndnd-client-core/std/ndn"
)

// Outer packet TLV type numbers, matching the historical NDN-TLV assignment.
const (
	TypeInterest  enc.TLNum = 0x05
	TypeData      enc.TLNum = 0x06
	TypeName      enc.TLNum = 0x07
	TypeScope     enc.TLNum = 0x0d
	TypeLifetime  enc.TLNum = 0x0c
	TypeContent   enc.TLNum = 0x15
	TypeSigInfo   enc.TLNum = 0x16
	TypeSigValue  enc.TLNum = 0x17
	TypeSigType   enc.TLNum = 0x1b
	TypeKeyLocator enc.TLNum = 0x1c
)

// Interest is the core's view of an NDN Interest (spec.md §3): a name, a
// lifetime, and an optional local-hop scope. Everything else a full NDN
// Interest can carry (selectors, nonce, forwarding hints...) is opaque to
// the core and dropped on decode / never set on encode.
type Interest struct {
	Name       enc.Name
	LifetimeMs int64 // negative = unspecified (spec.md §3)
	Scope      int   // 0 = unspecified; 1 = local-hop only (spec.md §4.7 step 4)
}

// MatchesName reports whether this Interest matches an incoming Data name,
// defined as name-prefix match (spec.md §3): full NDN selector matching is
// delegated to whatever richer codec sits above this one.
func (i *Interest) MatchesName(n enc.Name) bool {
	return i.Name.IsPrefixOf(n)
}

// EncodeInterest wire-encodes an Interest as an Interest TLV.
func EncodeInterest(i *Interest) enc.Wire {
	nameBytes := i.Name.Bytes()
	nameLen := enc.TLNum(len(nameBytes))
	nameTlvLen := TypeName.EncodingLength() + nameLen.EncodingLength() + len(nameBytes)

	bodyLen := nameTlvLen
	hasLifetime := i.LifetimeMs >= 0
	var lifetimeBytes []byte
	if hasLifetime {
		lifetimeBytes = enc.Nat(uint64(i.LifetimeMs)).Bytes()
		l := enc.TLNum(len(lifetimeBytes))
		bodyLen += TypeLifetime.EncodingLength() + l.EncodingLength() + len(lifetimeBytes)
	}
	hasScope := i.Scope != 0
	var scopeBytes []byte
	if hasScope {
		scopeBytes = enc.Nat(uint64(i.Scope)).Bytes()
		l := enc.TLNum(len(scopeBytes))
		bodyLen += TypeScope.EncodingLength() + l.EncodingLength() + len(scopeBytes)
	}

	buf := make(enc.Buffer, TypeInterest.EncodingLength()+enc.TLNum(bodyLen).EncodingLength()+bodyLen)
	p := TypeInterest.EncodeInto(buf)
	p += enc.TLNum(bodyLen).EncodeInto(buf[p:])
	p += TypeName.EncodeInto(buf[p:])
	p += enc.TLNum(nameLen).EncodeInto(buf[p:])
	p += copy(buf[p:], nameBytes)
	if hasLifetime {
		p += TypeLifetime.EncodeInto(buf[p:])
		p += enc.TLNum(len(lifetimeBytes)).EncodeInto(buf[p:])
		p += copy(buf[p:], lifetimeBytes)
	}
	if hasScope {
		p += TypeScope.EncodeInto(buf[p:])
		p += enc.TLNum(len(scopeBytes)).EncodeInto(buf[p:])
		p += copy(buf[p:], scopeBytes)
	}
	return enc.Wire{buf[:p]}
}

// DecodeInterest parses an Interest TLV body (the bytes after the outer
// Type-Length header have already been located by Classify).
func DecodeInterest(body enc.Buffer) (*Interest, error) {
	it := &Interest{LifetimeMs: -1}
	pos := 0
	for pos < len(body) {
		typ, p1 := enc.ParseTLNum(body[pos:])
		l, p2 := enc.ParseTLNum(body[pos+p1:])
		start := pos + p1 + p2
		end := start + int(l)
		if end > len(body) {
			return nil, enc.ErrBufferOverflow
		}
		val := body[start:end]
		switch typ {
		case TypeName:
			it.Name = enc.ParseComponents(val)
		case TypeLifetime:
			it.LifetimeMs = int64(decodeNat(val))
		case TypeScope:
			it.Scope = int(decodeNat(val))
		}
		pos = end
	}
	if it.Name == nil {
		return nil, ndn.ErrInvalidValue{Item: "Interest.Name", Value: nil}
	}
	return it, nil
}

// Data is the core's view of an NDN Data packet (spec.md §3): a name,
// content, and an opaque signature. The core reads Name, plus
// KeyLocatorName of the ndnd-ID probe reply; everything else is carried
// through untouched.
type Data struct {
	Name           enc.Name
	Content        []byte
	SigType        ndn.SigType
	SigValue       []byte
	KeyLocatorName enc.Name
}

// SignData computes a signature over Name and Content with signer and
// fills SigType/SigValue/KeyLocatorName from it. Registration's own
// self-reg Data never calls this (it uses the protocol's intentionally
// empty signature, spec.md §4.7 step 3) — this is for application-level
// Data a Node serves in response to a registered prefix's Interests.
func SignData(d *Data, signer ndn.Signer) error {
	covered := enc.Wire{d.Name.Bytes(), d.Content}
	sig, err := signer.Sign(covered)
	if err != nil {
		return err
	}
	d.SigType = signer.Type()
	d.SigValue = sig
	d.KeyLocatorName = signer.KeyLocator()
	return nil
}

// EncodeData wire-encodes a Data packet as a Data TLV.
func EncodeData(d *Data) enc.Wire {
	nameBytes := d.Name.Bytes()

	sigInfoBody := sigInfoBytes(d.SigType, d.KeyLocatorName)

	parts := []tlvPart{
		{TypeName, nameBytes},
		{TypeContent, d.Content},
		{TypeSigInfo, sigInfoBody},
		{TypeSigValue, d.SigValue},
	}

	bodyLen := 0
	for _, p := range parts {
		bodyLen += tlvLen(p.typ, p.val)
	}

	buf := make(enc.Buffer, TypeData.EncodingLength()+enc.TLNum(bodyLen).EncodingLength()+bodyLen)
	pos := TypeData.EncodeInto(buf)
	pos += enc.TLNum(bodyLen).EncodeInto(buf[pos:])
	for _, p := range parts {
		pos += writeTlv(buf[pos:], p.typ, p.val)
	}
	return enc.Wire{buf[:pos]}
}

// DecodeData parses a Data TLV body.
func DecodeData(body enc.Buffer) (*Data, error) {
	d := &Data{}
	pos := 0
	for pos < len(body) {
		typ, p1 := enc.ParseTLNum(body[pos:])
		l, p2 := enc.ParseTLNum(body[pos+p1:])
		start := pos + p1 + p2
		end := start + int(l)
		if end > len(body) {
			return nil, enc.ErrBufferOverflow
		}
		val := body[start:end]
		switch typ {
		case TypeName:
			d.Name = enc.ParseComponents(val)
		case TypeContent:
			d.Content = append([]byte(nil), val...)
		case TypeSigInfo:
			parseSigInfo(val, d)
		case TypeSigValue:
			d.SigValue = append([]byte(nil), val...)
		}
		pos = end
	}
	if d.Name == nil {
		return nil, ndn.ErrInvalidValue{Item: "Data.Name", Value: nil}
	}
	return d, nil
}

type tlvPart struct {
	typ enc.TLNum
	val []byte
}

func tlvLen(typ enc.TLNum, val []byte) int {
	l := enc.TLNum(len(val))
	return typ.EncodingLength() + l.EncodingLength() + len(val)
}

func writeTlv(buf enc.Buffer, typ enc.TLNum, val []byte) int {
	p := typ.EncodeInto(buf)
	p += enc.TLNum(len(val)).EncodeInto(buf[p:])
	p += copy(buf[p:], val)
	return p
}

func sigInfoBytes(sigType ndn.SigType, keyLocatorName enc.Name) []byte {
	sigTypeBytes := enc.Nat(uint64(sigType)).Bytes()
	parts := []tlvPart{{TypeSigType, sigTypeBytes}}
	var klBytes []byte
	if keyLocatorName != nil {
		klNameBytes := keyLocatorName.Bytes()
		innerLen := tlvLen(TypeName, klNameBytes)
		klBytes = make([]byte, innerLen)
		writeTlv(klBytes, TypeName, klNameBytes)
		parts = append(parts, tlvPart{TypeKeyLocator, klBytes})
	}
	bodyLen := 0
	for _, p := range parts {
		bodyLen += tlvLen(p.typ, p.val)
	}
	buf := make([]byte, bodyLen)
	pos := 0
	for _, p := range parts {
		pos += writeTlv(buf[pos:], p.typ, p.val)
	}
	return buf
}

func parseSigInfo(body []byte, d *Data) {
	pos := 0
	for pos < len(body) {
		typ, p1 := enc.ParseTLNum(body[pos:])
		l, p2 := enc.ParseTLNum(body[pos+p1:])
		start := pos + p1 + p2
		end := start + int(l)
		if end > len(body) {
			return
		}
		val := body[start:end]
		switch typ {
		case TypeSigType:
			d.SigType = ndn.SigType(decodeNat(val))
		case TypeKeyLocator:
			parseKeyLocator(val, d)
		}
		pos = end
	}
}

func parseKeyLocator(body []byte, d *Data) {
	pos := 0
	for pos < len(body) {
		typ, p1 := enc.ParseTLNum(body[pos:])
		l, p2 := enc.ParseTLNum(body[pos+p1:])
		start := pos + p1 + p2
		end := start + int(l)
		if end > len(body) {
			return
		}
		if typ == TypeName {
			d.KeyLocatorName = enc.ParseComponents(body[start:end])
		}
		pos = end
	}
}

func decodeNat(buf []byte) uint64 {
	var v uint64
	for _, b := range buf {
		v = (v << 8) | uint64(b)
	}
	return v
}

// Classify reads the outer Type-Length header of a framed block and
// returns the packet type plus the TLV body (the bytes between L and the
// end of the packet) — the input the receive dispatcher (spec.md §4.6)
// switches on.
func Classify(frame []byte) (typ enc.TLNum, body enc.Buffer, err error) {
	if len(frame) == 0 {
		return 0, nil, enc.ErrBufferOverflow
	}
	typ, p1 := enc.ParseTLNum(frame)
	if p1 >= len(frame) {
		return 0, nil, enc.ErrBufferOverflow
	}
	l, p2 := enc.ParseTLNum(frame[p1:])
	start := p1 + p2
	end := start + int(l)
	if end > len(frame) {
		return 0, nil, enc.ErrBufferOverflow
	}
	return typ, frame[start:end], nil
}
