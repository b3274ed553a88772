package edwards

import (
	"filippo.io/edwards25519"

	"curvekit.dev/ecc/ecerr"
)

// Scalar is an element of the Ed25519 scalar field (integers modulo the
// group order L).
type Scalar struct {
	s *edwards25519.Scalar
}

// NewScalar returns the zero scalar.
func NewScalar() *Scalar {
	return &Scalar{s: edwards25519.NewScalar()}
}

// SetCanonicalBytes sets r from a canonical 32-byte little-endian encoding
// in [0, L), rejecting any other value.
func (r *Scalar) SetCanonicalBytes(b []byte) error {
	s := edwards25519.NewScalar()
	if _, err := s.SetCanonicalBytes(b); err != nil {
		return ecerr.New(ecerr.InvalidScalar, "scalar is not a canonical encoding: "+err.Error())
	}
	r.s = s
	return nil
}

// SetUniformBytes sets r by wide-reducing a 64-byte (or longer) uniformly
// random input modulo L. This is how both the RFC 8032 nonce and the
// final challenge scalar are derived from a SHA-512 digest.
func (r *Scalar) SetUniformBytes(b []byte) error {
	s := edwards25519.NewScalar()
	if _, err := s.SetUniformBytes(b); err != nil {
		return ecerr.New(ecerr.InvalidScalar, "uniform reduction input too short: "+err.Error())
	}
	r.s = s
	return nil
}

// SetBytesWithClamping applies RFC 8032's clamping to the low 32 bytes of
// an expanded private key before treating them as a scalar.
func (r *Scalar) SetBytesWithClamping(b []byte) error {
	if len(b) != 32 {
		return ecerr.New(ecerr.InvalidScalar, "clamping input must be 32 bytes")
	}
	s, err := edwards25519.NewScalar().SetBytesWithClamping(b)
	if err != nil {
		return ecerr.New(ecerr.InvalidScalar, "clamping failed: "+err.Error())
	}
	r.s = s
	return nil
}

// Bytes returns the canonical 32-byte little-endian encoding.
func (r *Scalar) Bytes() []byte {
	return r.s.Bytes()
}

// Add sets r = a + b mod L.
func (r *Scalar) Add(a, b *Scalar) {
	r.s = edwards25519.NewScalar().Add(a.s, b.s)
}

// Multiply sets r = a*b mod L.
func (r *Scalar) Multiply(a, b *Scalar) {
	r.s = edwards25519.NewScalar().Multiply(a.s, b.s)
}

// MultiplyAdd sets r = a*b + c mod L.
func (r *Scalar) MultiplyAdd(a, b, c *Scalar) {
	r.s = edwards25519.NewScalar().MultiplyAdd(a.s, b.s, c.s)
}

// Negate sets r = -a mod L.
func (r *Scalar) Negate(a *Scalar) {
	r.s = edwards25519.NewScalar().Negate(a.s)
}
