// Package edwards adapts filippo.io/edwards25519's Point and Scalar types
// into this module's Ed25519 surface: encode/decode, clamping, and the
// cofactored double-scalar multiply EdDSA verification needs.
package edwards

import (
	"filippo.io/edwards25519"

	"curvekit.dev/ecc/ecerr"
)

// Point is an Ed25519 group element.
type Point struct {
	p *edwards25519.Point
}

// NewIdentity returns the identity element.
func NewIdentity() *Point {
	return &Point{p: edwards25519.NewIdentityPoint()}
}

// NewGenerator returns the Ed25519 base point B.
func NewGenerator() *Point {
	return &Point{p: edwards25519.NewGeneratorPoint()}
}

// Decode parses a 32-byte little-endian compressed Ed25519 point.
func (pt *Point) Decode(b []byte) error {
	if len(b) != 32 {
		return ecerr.New(ecerr.InvalidPoint, "encoded point must be 32 bytes")
	}
	p := edwards25519.NewIdentityPoint()
	if _, err := p.SetBytes(b); err != nil {
		return ecerr.New(ecerr.InvalidPoint, "point is not a valid curve encoding: "+err.Error())
	}
	pt.p = p
	return nil
}

// Encode returns the 32-byte little-endian compressed encoding.
func (pt *Point) Encode() []byte {
	return pt.p.Bytes()
}

// ScalarBaseMult sets pt = s*B and returns pt.
func (pt *Point) ScalarBaseMult(s *Scalar) *Point {
	pt.p = edwards25519.NewIdentityPoint().ScalarBaseMult(s.s)
	return pt
}

// ScalarMult sets pt = s*a and returns pt.
func (pt *Point) ScalarMult(s *Scalar, a *Point) *Point {
	pt.p = edwards25519.NewIdentityPoint().ScalarMult(s.s, a.p)
	return pt
}

// Add sets pt = a + b and returns pt.
func (pt *Point) Add(a, b *Point) *Point {
	pt.p = edwards25519.NewIdentityPoint().Add(a.p, b.p)
	return pt
}

// Equal reports whether pt and a encode the same point.
func (pt *Point) Equal(a *Point) bool {
	return pt.p.Equal(a.p) == 1
}

// VarTimeDoubleScalarBaseMult sets pt = a*A + b*B (B the base point) in
// variable time. This is precisely EdDSA verify's check [8]S*B == [8]R +
// [8]h*A once both sides are pre-multiplied by the cofactor.
func (pt *Point) VarTimeDoubleScalarBaseMult(a *Scalar, A *Point, b *Scalar) *Point {
	pt.p = edwards25519.NewIdentityPoint().VarTimeDoubleScalarBaseMult(a.s, A.p, b.s)
	return pt
}

// MultByCofactor sets pt = 8*a and returns pt, used for cofactored
// verification per RFC 8032.
func (pt *Point) MultByCofactor(a *Point) *Point {
	pt.p = edwards25519.NewIdentityPoint().MultByCofactor(a.p)
	return pt
}
