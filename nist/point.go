package nist

import (
	"filippo.io/nistec"

	"curvekit.dev/ecc/ecerr"
)

// nistPoint is the common method set filippo.io/nistec generates for each
// of its four concrete point types. Go's own crypto/ecdsa uses exactly
// this generic-adapter trick internally to share one implementation
// across P224Point/P256Point/P384Point/P521Point; this package does the
// same so the rest of this module never needs curve-specific branches.
type nistPoint[T any] interface {
	*T
	Bytes() []byte
	BytesCompressed() []byte
	SetBytes([]byte) (*T, error)
	Add(p1, p2 *T) *T
	Double(p *T) *T
	ScalarMult(p *T, scalar []byte) (*T, error)
	ScalarBaseMult(scalar []byte) (*T, error)
}

// Point wraps one of nistec's point types behind the nistPoint contract.
type Point[T any, PT nistPoint[T]] struct {
	p *T
}

func newPoint[T any, PT nistPoint[T]]() Point[T, PT] {
	return Point[T, PT]{p: PT(new(T))}
}

// SetBytes parses a SEC1-encoded point (compressed or uncompressed),
// validating it lies on the curve and rejecting the point at infinity
// (nistec's SetBytes already enforces both).
func (p Point[T, PT]) SetBytes(b []byte) error {
	if _, err := PT(p.p).SetBytes(b); err != nil {
		return ecerr.New(ecerr.InvalidPoint, "point is not a valid curve encoding: "+err.Error())
	}
	return nil
}

// Bytes returns the uncompressed SEC1 encoding.
func (p Point[T, PT]) Bytes() []byte { return PT(p.p).Bytes() }

// BytesCompressed returns the compressed SEC1 encoding.
func (p Point[T, PT]) BytesCompressed() []byte { return PT(p.p).BytesCompressed() }

// Add sets p = a + b and returns p.
func (p Point[T, PT]) Add(a, b Point[T, PT]) Point[T, PT] {
	PT(p.p).Add(a.p, b.p)
	return p
}

// Double sets p = 2*a and returns p.
func (p Point[T, PT]) Double(a Point[T, PT]) Point[T, PT] {
	PT(p.p).Double(a.p)
	return p
}

// ScalarMult sets p = scalar*a in constant time and returns any error. scalar is a
// big-endian encoding of a value in [0, N); nistec reduces/validates it.
func (p Point[T, PT]) ScalarMult(a Point[T, PT], scalar []byte) error {
	if _, err := PT(p.p).ScalarMult(a.p, scalar); err != nil {
		return ecerr.New(ecerr.InvalidScalar, "scalar multiplication failed: "+err.Error())
	}
	return nil
}

// ScalarBaseMult sets p = scalar*G in constant time and returns any error.
func (p Point[T, PT]) ScalarBaseMult(scalar []byte) error {
	if _, err := PT(p.p).ScalarBaseMult(scalar); err != nil {
		return ecerr.New(ecerr.InvalidScalar, "base scalar multiplication failed: "+err.Error())
	}
	return nil
}

// P224Point, P256Point, P384Point, and P521Point instantiate the generic
// adapter for each curve nistec ships.
type (
	P224Point = Point[nistec.P224Point, *nistec.P224Point]
	P256Point = Point[nistec.P256Point, *nistec.P256Point]
	P384Point = Point[nistec.P384Point, *nistec.P384Point]
	P521Point = Point[nistec.P521Point, *nistec.P521Point]
)

// NewP224Point, NewP256Point, NewP384Point, and NewP521Point return a
// fresh point (the identity element) for each curve.
func NewP224Point() P224Point { return newPoint[nistec.P224Point, *nistec.P224Point]() }
func NewP256Point() P256Point { return newPoint[nistec.P256Point, *nistec.P256Point]() }
func NewP384Point() P384Point { return newPoint[nistec.P384Point, *nistec.P384Point]() }
func NewP521Point() P521Point { return newPoint[nistec.P521Point, *nistec.P521Point]() }
