package ndn

import enc "github.com/named-data/ndnd-client-core/std/encoding"

// SigType identifies a signature algorithm, matching the NDN-TLV
// SignatureType field.
type SigType uint64

const (
	SignatureDigestSha256   SigType = 0
	SignatureSha256WithRsa  SigType = 1
	SignatureSha256WithEcdsa SigType = 3
	SignatureHmacWithSha256 SigType = 4
	SignatureEd25519       SigType = 5
	// SignatureEmptyTest is used only by the in-tree test signer.
	SignatureEmptyTest SigType = 200
)

// Signer produces a signature value over wire-encoded bytes. The
// registration path (spec.md §4.7 step 3) never calls Sign — it sends an
// intentionally empty SignatureSha256WithRsa value — but a Signer is a
// first-class capability the core consumes for any other signed exchange.
type Signer interface {
	Type() SigType
	KeyName() enc.Name
	KeyLocator() enc.Name
	EstimateSize() uint
	Sign(covered enc.Wire) ([]byte, error)
	Public() ([]byte, error)
}

// Signature is a parsed signature as read off the wire: its type and value.
type Signature interface {
	SigType() SigType
	SigValue() []byte
}
