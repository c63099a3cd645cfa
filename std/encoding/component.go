package encoding

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash"
)

// Name component type codes. The core only ever produces
// TypeGenericNameComponent components on the wire (legacy ndnx names are
// untyped), but the full set is kept as the teacher defines it so a future
// codec upgrade has somewhere to land.
const (
	TypeInvalidComponent                TLNum = 0x00
	TypeImplicitSha256DigestComponent   TLNum = 0x01
	TypeParametersSha256DigestComponent TLNum = 0x02
	TypeGenericNameComponent            TLNum = 0x08
	TypeKeywordNameComponent            TLNum = 0x20
)

// Component is a single opaque name component: a TLV type plus a byte value.
type Component struct {
	Typ TLNum
	Val []byte
}

// NewBytesComponent constructs a component of the given type from a byte slice.
func NewBytesComponent(typ TLNum, val []byte) Component {
	return Component{Typ: typ, Val: val}
}

// NewStringComponent constructs a component of the given type from a string.
func NewStringComponent(typ TLNum, val string) Component {
	return Component{Typ: typ, Val: []byte(val)}
}

// NewGenericComponent constructs a generic name component from a string.
func NewGenericComponent(val string) Component {
	return NewStringComponent(TypeGenericNameComponent, val)
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	return Component{Typ: c.Typ, Val: slices.Clone(c.Val)}
}

// Length returns the length of the component's value.
func (c Component) Length() TLNum {
	return TLNum(len(c.Val))
}

// EncodingLength returns the total number of bytes EncodeInto will write.
func (c Component) EncodingLength() int {
	l := len(c.Val)
	return c.Typ.EncodingLength() + Nat(l).EncodingLength() + l
}

// EncodeInto writes the component's Type-Length-Value into buf.
func (c Component) EncodeInto(buf Buffer) int {
	p1 := c.Typ.EncodeInto(buf)
	p2 := Nat(len(c.Val)).EncodeInto(buf[p1:])
	copy(buf[p1+p2:], c.Val)
	return p1 + p2 + len(c.Val)
}

// Bytes encodes the component into a freshly allocated byte slice.
func (c Component) Bytes() []byte {
	buf := make([]byte, c.EncodingLength())
	c.EncodeInto(buf)
	return buf
}

// ParseComponent parses one Component from the front of buf, returning the
// component and the number of bytes consumed.
func ParseComponent(buf Buffer) (Component, int) {
	typ, p1 := ParseTLNum(buf)
	l, p2 := ParseTLNum(buf[p1:])
	start := p1 + p2
	end := start + int(l)
	return Component{
		Typ: typ,
		Val: slices.Clone(buf[start:end]),
	}, end
}

// Equal reports whether two components have the same type and value.
func (c Component) Equal(rhs Component) bool {
	return c.Typ == rhs.Typ && bytes.Equal(c.Val, rhs.Val)
}

// Compare orders components first by type, then by value length, then
// lexicographically by byte value — used only for the Name total order
// (spec.md §4.1), never by matching logic.
func (c Component) Compare(rhs Component) int {
	if c.Typ != rhs.Typ {
		if c.Typ < rhs.Typ {
			return -1
		}
		return 1
	}
	if len(c.Val) != len(rhs.Val) {
		if len(c.Val) < len(rhs.Val) {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.Val, rhs.Val)
}

// Hash returns a fast, non-cryptographic hash of the component, used as the
// bucket key of the RPT/PIT first-component index (SPEC_FULL §11); matching
// within a bucket is still decided by component equality.
func (c Component) Hash() uint64 {
	h := xxhash.New()
	h.Write([]byte{byte(c.Typ)})
	h.Write(c.Val)
	return h.Sum64()
}

// String renders the component in the generic "type=value" text form used
// for diagnostics and log messages. Non-generic types are prefixed with
// their decimal type number; generic components render their value as text
// when printable, hex otherwise.
func (c Component) String() string {
	sb := strings.Builder{}
	if c.Typ != TypeGenericNameComponent {
		sb.WriteString(strconv.FormatUint(uint64(c.Typ), 10))
		sb.WriteByte('=')
	}
	if isPrintable(c.Val) {
		sb.Write(c.Val)
	} else {
		sb.WriteString("0x")
		for _, b := range c.Val {
			if b < 0x10 {
				sb.WriteByte('0')
			}
			sb.WriteString(strconv.FormatUint(uint64(b), 16))
		}
	}
	return sb.String()
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}
