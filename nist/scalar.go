package nist

import (
	"math/big"

	"curvekit.dev/ecc/ecerr"
)

// Scalar is an element of a NIST curve's scalar field (integers modulo the
// group order N), backed by math/big. nistec does not export its internal
// field type, and no pack example supplies a generic cross-curve scalar
// field library, so big.Int is this module's externally-supplied
// multi-precision collaborator for this one piece — see DESIGN.md for the
// accepted timing-variance tradeoff this implies.
type Scalar struct {
	d   *Descriptor
	val *big.Int
}

// NewScalar returns the zero scalar for d.
func NewScalar(d *Descriptor) *Scalar {
	return &Scalar{d: d, val: new(big.Int)}
}

// SetBytes sets r from a big-endian encoding, reducing modulo N, and
// reports whether the input was >= N.
func (r *Scalar) SetBytes(d *Descriptor, b []byte) (overflow bool) {
	r.d = d
	v := new(big.Int).SetBytes(b)
	overflow = v.Cmp(d.N) >= 0
	r.val = new(big.Int).Mod(v, d.N)
	return overflow
}

// SetKeyBytes sets r from a private-key encoding, rejecting zero and
// out-of-range values instead of silently reducing.
func (r *Scalar) SetKeyBytes(d *Descriptor, b []byte) error {
	overflow := r.SetBytes(d, b)
	if overflow || r.val.Sign() == 0 {
		return ecerr.New(ecerr.InvalidPrivateKey, "private key scalar is zero or out of range")
	}
	return nil
}

// Bytes returns the fixed-length big-endian encoding of r.
func (r *Scalar) Bytes() []byte {
	out := make([]byte, r.d.ByteLen)
	b := r.val.Bytes()
	copy(out[len(out)-len(b):], b)
	return out
}

// IsZero reports whether r is zero.
func (r *Scalar) IsZero() bool { return r.val.Sign() == 0 }

// Add sets r = a + b mod N.
func (r *Scalar) Add(a, b *Scalar) {
	r.d = a.d
	r.val = new(big.Int).Mod(new(big.Int).Add(a.val, b.val), a.d.N)
}

// Mul sets r = a*b mod N.
func (r *Scalar) Mul(a, b *Scalar) {
	r.d = a.d
	r.val = new(big.Int).Mod(new(big.Int).Mul(a.val, b.val), a.d.N)
}

// Inverse sets r = a^-1 mod N.
func (r *Scalar) Inverse(a *Scalar) {
	r.d = a.d
	r.val = new(big.Int).ModInverse(a.val, a.d.N)
}

// Negate sets r = -a mod N.
func (r *Scalar) Negate(a *Scalar) {
	r.d = a.d
	if a.val.Sign() == 0 {
		r.val = new(big.Int)
		return
	}
	r.val = new(big.Int).Sub(a.d.N, a.val)
}

// IsHigh reports whether r > N/2, the low-S normalization check.
func (r *Scalar) IsHigh() bool {
	half := new(big.Int).Rsh(r.d.N, 1)
	return r.val.Cmp(half) > 0
}

// BigInt exposes the underlying value for callers that need it (e.g. to
// hand scalar bytes to nistec's ScalarMult/ScalarBaseMult).
func (r *Scalar) BigInt() *big.Int { return r.val }
