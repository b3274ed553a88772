// Package secp256k1 implements the secp256k1 prime field, scalar field,
// and short-Weierstrass group law, plus the constant-time and
// variable-time scalar multiplication algorithms (including the GLV
// endomorphism) that back ECDSA over this curve.
//
// The field element representation (5 limbs, 52 bits each) and the
// overall method layout follow libsecp256k1's field_5x52 design.
package secp256k1

import (
	"crypto/subtle"
	"unsafe"

	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/internal/ctutil"
)

// FieldElement is an element of the secp256k1 base field, represented as
// five 52-bit limbs (sum(n[i] << 52*i) mod p). Arithmetic methods leave
// the element in a possibly-unnormalized, possibly-overflowed state
// (tracked by magnitude); callers normalize before exporting, comparing,
// or taking isOdd/isZero.
type FieldElement struct {
	n [5]uint64

	magnitude  int
	normalized bool
}

// FieldElementStorage is the compact (4x64) representation used when many
// field elements are kept around, e.g. precomputed comb/window tables.
type FieldElementStorage struct {
	n [4]uint64
}

const (
	fieldR  = 0x1000003D1
	limb0Ma = 0xFFFFFFFFFFFFF
	limb4Ma = 0x0FFFFFFFFFFFF

	fieldPLimb0 = 0xFFFFEFFFFFC2F
	fieldPLimb1 = 0xFFFFFFFFFFFFF
	fieldPLimb2 = 0xFFFFFFFFFFFFF
	fieldPLimb3 = 0xFFFFFFFFFFFFF
	fieldPLimb4 = 0x0FFFFFFFFFFFF
)

var (
	// FieldElementZero is the additive identity, normalized.
	FieldElementZero = FieldElement{normalized: true}

	// FieldElementOne is the multiplicative identity, normalized.
	FieldElementOne = FieldElement{n: [5]uint64{1, 0, 0, 0, 0}, magnitude: 1, normalized: true}
)

// NewFieldElement returns the zero element.
func NewFieldElement() *FieldElement {
	return &FieldElement{normalized: true}
}

// SetB32 sets r from a 32-byte big-endian encoding, rejecting values >= p.
// This is the component-A Import operation.
func (r *FieldElement) SetB32(b []byte) error {
	if len(b) != 32 {
		return ecerr.New(ecerr.InvalidFieldElement, "field element must be 32 bytes")
	}

	var d [4]uint64
	for i := 0; i < 4; i++ {
		d[i] = uint64(b[31-8*i]) | uint64(b[30-8*i])<<8 | uint64(b[29-8*i])<<16 | uint64(b[28-8*i])<<24 |
			uint64(b[27-8*i])<<32 | uint64(b[26-8*i])<<40 | uint64(b[25-8*i])<<48 | uint64(b[24-8*i])<<56
	}

	r.n[0] = d[0] & limb0Ma
	r.n[1] = ((d[0] >> 52) | (d[1] << 12)) & limb0Ma
	r.n[2] = ((d[1] >> 40) | (d[2] << 24)) & limb0Ma
	r.n[3] = ((d[2] >> 28) | (d[3] << 36)) & limb0Ma
	r.n[4] = (d[3] >> 16) & limb4Ma

	r.magnitude = 1
	r.normalized = false

	if r.overflows() {
		return ecerr.New(ecerr.InvalidFieldElement, "field element encoding is >= p")
	}
	return nil
}

// overflows reports whether the current (unnormalized, magnitude-1) value
// is >= p without mutating r. Used right after SetB32.
func (r *FieldElement) overflows() bool {
	var t FieldElement
	t = *r
	t.normalize()
	// normalize() already reduces mod p, so compare the pre-image to the
	// canonical result: they match iff the input was already canonical.
	var back [32]byte
	t.GetB32(back[:])
	var orig [32]byte
	var d [4]uint64
	d[0] = r.n[0] | (r.n[1] << 52)
	d[1] = (r.n[1] >> 12) | (r.n[2] << 40)
	d[2] = (r.n[2] >> 24) | (r.n[3] << 28)
	d[3] = (r.n[3] >> 36) | (r.n[4] << 16)
	for i := 0; i < 4; i++ {
		orig[31-8*i] = byte(d[i])
		orig[30-8*i] = byte(d[i] >> 8)
		orig[29-8*i] = byte(d[i] >> 16)
		orig[28-8*i] = byte(d[i] >> 24)
		orig[27-8*i] = byte(d[i] >> 32)
		orig[26-8*i] = byte(d[i] >> 40)
		orig[25-8*i] = byte(d[i] >> 48)
		orig[24-8*i] = byte(d[i] >> 56)
	}
	return subtle.ConstantTimeCompare(orig[:], back[:]) != 1
}

// GetB32 writes the canonical 32-byte big-endian encoding of r to b. This
// is the component-A Export operation.
func (r *FieldElement) GetB32(b []byte) {
	if len(b) != 32 {
		panic("field element byte array must be 32 bytes")
	}

	var t FieldElement
	t = *r
	t.normalize()

	var d [4]uint64
	d[0] = t.n[0] | (t.n[1] << 52)
	d[1] = (t.n[1] >> 12) | (t.n[2] << 40)
	d[2] = (t.n[2] >> 24) | (t.n[3] << 28)
	d[3] = (t.n[3] >> 36) | (t.n[4] << 16)

	for i := 0; i < 4; i++ {
		b[31-8*i] = byte(d[i])
		b[30-8*i] = byte(d[i] >> 8)
		b[29-8*i] = byte(d[i] >> 16)
		b[28-8*i] = byte(d[i] >> 24)
		b[27-8*i] = byte(d[i] >> 32)
		b[26-8*i] = byte(d[i] >> 40)
		b[25-8*i] = byte(d[i] >> 48)
		b[24-8*i] = byte(d[i] >> 56)
	}
}

// normalize reduces r to its canonical, magnitude-1 representative.
func (r *FieldElement) normalize() {
	t0, t1, t2, t3, t4 := r.n[0], r.n[1], r.n[2], r.n[3], r.n[4]

	x := t4 >> 48
	t4 &= limb4Ma

	t0 += x * fieldR
	t1 += t0 >> 52
	t0 &= limb0Ma
	t2 += t1 >> 52
	t1 &= limb0Ma
	m := t1
	t3 += t2 >> 52
	t2 &= limb0Ma
	m &= t2
	t4 += t3 >> 52
	t3 &= limb0Ma
	m &= t3

	var need uint64
	if t4 == limb4Ma && m == limb0Ma && t0 >= fieldPLimb0 {
		need = 1
	}
	x = (t4 >> 48) | need

	t0 += x * fieldR
	t1 += t0 >> 52
	t0 &= limb0Ma
	t2 += t1 >> 52
	t1 &= limb0Ma
	t3 += t2 >> 52
	t2 &= limb0Ma
	t4 += t3 >> 52
	t3 &= limb0Ma
	t4 &= limb4Ma

	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = t0, t1, t2, t3, t4
	r.magnitude = 1
	r.normalized = true
}

// normalizeWeak brings r to magnitude 1 without a full canonical reduction.
func (r *FieldElement) normalizeWeak() {
	t0, t1, t2, t3, t4 := r.n[0], r.n[1], r.n[2], r.n[3], r.n[4]

	x := t4 >> 48
	t4 &= limb4Ma

	t0 += x * fieldR
	t1 += t0 >> 52
	t0 &= limb0Ma
	t2 += t1 >> 52
	t1 &= limb0Ma
	t3 += t2 >> 52
	t2 &= limb0Ma
	t4 += t3 >> 52
	t3 &= limb0Ma

	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = t0, t1, t2, t3, t4
	r.magnitude = 1
}

// IsZero reports whether r is the zero element. r must be normalized.
func (r *FieldElement) IsZero() bool {
	return r.n[0] == 0 && r.n[1] == 0 && r.n[2] == 0 && r.n[3] == 0 && r.n[4] == 0
}

// IsOdd reports whether r, interpreted canonically, is odd.
func (r *FieldElement) IsOdd() bool {
	return r.n[0]&1 == 1
}

// Equal performs a constant-time comparison. Both operands must be
// normalized.
func (r *FieldElement) Equal(a *FieldElement) bool {
	return subtle.ConstantTimeCompare(
		(*[40]byte)(unsafe.Pointer(&r.n[0]))[:40],
		(*[40]byte)(unsafe.Pointer(&a.n[0]))[:40],
	) == 1
}

// SetInt sets r to a small non-negative integer (at most 0x7FFF); it
// panics otherwise.
func (r *FieldElement) SetInt(a int) {
	if a < 0 || a > 0x7FFF {
		panic("value out of range")
	}
	r.n[0], r.n[1], r.n[2], r.n[3], r.n[4] = uint64(a), 0, 0, 0, 0
	if a == 0 {
		r.magnitude = 0
	} else {
		r.magnitude = 1
	}
	r.normalized = true
}

// Clear wipes r's limbs so secret field elements don't linger in memory
// past their last use.
func (r *FieldElement) Clear() {
	ctutil.ZeroizeUint64(r.n[:])
	r.magnitude = 0
	r.normalized = true
}

// Negate sets r = -a, where a is assumed to have magnitude <= m.
func (r *FieldElement) Negate(a *FieldElement, m int) {
	if m < 0 || m > 31 {
		panic("magnitude out of range")
	}
	r.n[0] = (2*uint64(m)+1)*fieldPLimb0 - a.n[0]
	r.n[1] = (2*uint64(m)+1)*fieldPLimb1 - a.n[1]
	r.n[2] = (2*uint64(m)+1)*fieldPLimb2 - a.n[2]
	r.n[3] = (2*uint64(m)+1)*fieldPLimb3 - a.n[3]
	r.n[4] = (2*uint64(m)+1)*fieldPLimb4 - a.n[4]
	r.magnitude = m + 1
	r.normalized = false
}

// Add sets r += a.
func (r *FieldElement) Add(a *FieldElement) {
	r.n[0] += a.n[0]
	r.n[1] += a.n[1]
	r.n[2] += a.n[2]
	r.n[3] += a.n[3]
	r.n[4] += a.n[4]
	r.magnitude += a.magnitude
	r.normalized = false
}

// Sub sets r -= a.
func (r *FieldElement) Sub(a *FieldElement) {
	var negA FieldElement
	negA.Negate(a, a.magnitude)
	r.Add(&negA)
}

// MulInt multiplies r by a small non-negative integer.
func (r *FieldElement) MulInt(a int) {
	if a < 0 || a > 32 {
		panic("multiplier out of range")
	}
	ua := uint64(a)
	r.n[0] *= ua
	r.n[1] *= ua
	r.n[2] *= ua
	r.n[3] *= ua
	r.n[4] *= ua
	r.magnitude *= a
	r.normalized = false
}

// CondSelect sets r = a if flag == 1, leaves r unchanged if flag == 0.
// The limbs are selected with a mask rather than a branch; the magnitude
// and normalized bookkeeping fields are copied under a branch. This is the component-A
// conditional_select/conditional_negate primitive applied to plain select.
func (r *FieldElement) CondSelect(a *FieldElement, flag int) {
	mask := uint64(-(int64(flag) & 1))
	r.n[0] ^= mask & (r.n[0] ^ a.n[0])
	r.n[1] ^= mask & (r.n[1] ^ a.n[1])
	r.n[2] ^= mask & (r.n[2] ^ a.n[2])
	r.n[3] ^= mask & (r.n[3] ^ a.n[3])
	r.n[4] ^= mask & (r.n[4] ^ a.n[4])
	if flag != 0 {
		r.magnitude = a.magnitude
		r.normalized = a.normalized
	}
}

// CondNegate negates r in place when flag == 1, leaves r unchanged (up to
// the same magnitude bound) when flag == 0.
func (r *FieldElement) CondNegate(flag int, magnitude int) {
	var neg FieldElement
	neg.Negate(r, magnitude)
	r.CondSelect(&neg, flag)
}

// ToStorage packs a normalized copy of r into the compact 4x64 form.
func (r *FieldElement) ToStorage(s *FieldElementStorage) {
	var t FieldElement
	t = *r
	t.normalize()
	s.n[0] = t.n[0] | (t.n[1] << 52)
	s.n[1] = (t.n[1] >> 12) | (t.n[2] << 40)
	s.n[2] = (t.n[2] >> 24) | (t.n[3] << 28)
	s.n[3] = (t.n[3] >> 36) | (t.n[4] << 16)
}

// FromStorage unpacks the compact 4x64 form into r.
func (r *FieldElement) FromStorage(s *FieldElementStorage) {
	r.n[0] = s.n[0] & limb0Ma
	r.n[1] = ((s.n[0] >> 52) | (s.n[1] << 12)) & limb0Ma
	r.n[2] = ((s.n[1] >> 40) | (s.n[2] << 24)) & limb0Ma
	r.n[3] = ((s.n[2] >> 28) | (s.n[3] << 36)) & limb0Ma
	r.n[4] = (s.n[3] >> 16) & limb4Ma
	r.magnitude = 1
	r.normalized = false
}

// BatchInverse computes the inverse of every element of a into out using a
// single field inversion (Montgomery's trick), for batched affine
// conversion of windowed-NAF tables (component C to_affine).
func BatchInverse(out []FieldElement, a []FieldElement) {
	n := len(a)
	if n == 0 {
		return
	}

	s := make([]FieldElement, n)
	s[0].SetInt(1)
	for i := 1; i < n; i++ {
		s[i].Mul(&s[i-1], &a[i-1])
	}

	var u FieldElement
	u.Mul(&s[n-1], &a[n-1])
	u.Inv(&u)

	for i := n - 1; i >= 0; i-- {
		out[i].Mul(&u, &s[i])
		u.Mul(&u, &a[i])
	}
}
