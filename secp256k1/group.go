package secp256k1

import "curvekit.dev/ecc/ecerr"

// AffinePoint is a point on the secp256k1 curve y^2 = x^3 + 7 in affine
// coordinates, or the point at infinity.
type AffinePoint struct {
	x, y     FieldElement
	infinity bool
}

// JacobianPoint is a point in Jacobian projective coordinates, where the
// affine coordinates are (x/z^2, y/z^3).
type JacobianPoint struct {
	x, y, z  FieldElement
	infinity bool
}

// AffinePointStorage is the compact fixed-size encoding used in
// precomputed tables.
type AffinePointStorage struct {
	x, y FieldElementStorage
}

var (
	generatorX FieldElement
	generatorY FieldElement

	// Generator is the base point G.
	Generator AffinePoint
)

func init() {
	gx := []byte{
		0x79, 0xBE, 0x66, 0x7E, 0xF9, 0xDC, 0xBB, 0xAC, 0x55, 0xA0, 0x62, 0x95, 0xCE, 0x87, 0x0B, 0x07,
		0x02, 0x9B, 0xFC, 0xDB, 0x2D, 0xCE, 0x28, 0xD9, 0x59, 0xF2, 0x81, 0x5B, 0x16, 0xF8, 0x17, 0x98,
	}
	gy := []byte{
		0x48, 0x3A, 0xDA, 0x77, 0x26, 0xA3, 0xC4, 0x65, 0x5D, 0xA4, 0xFB, 0xFC, 0x0E, 0x11, 0x08, 0xA8,
		0xFD, 0x17, 0xB4, 0x48, 0xA6, 0x85, 0x54, 0x19, 0x9C, 0x47, 0xD0, 0x8F, 0xFB, 0x10, 0xD4, 0xB8,
	}
	if err := generatorX.SetB32(gx); err != nil {
		panic(err)
	}
	if err := generatorY.SetB32(gy); err != nil {
		panic(err)
	}
	Generator = AffinePoint{x: generatorX, y: generatorY}
}

// curveB is the secp256k1 curve equation constant (y^2 = x^3 + curveB).
func curveB() FieldElement {
	var b FieldElement
	b.SetInt(7)
	return b
}

// SetXY sets r to the point (x, y) without validating it lies on the curve.
func (r *AffinePoint) SetXY(x, y *FieldElement) {
	r.x, r.y, r.infinity = *x, *y, false
}

// SetXOdd sets r to the point with the given X coordinate and the given Y
// parity, and reports whether such a point exists (i.e. x^3+7 is a square).
func (r *AffinePoint) SetXOdd(x *FieldElement, odd bool) bool {
	var x2, x3, y2 FieldElement
	x2.Sqr(x)
	x3.Mul(&x2, x)
	b := curveB()
	y2 = x3
	y2.Add(&b)

	var y FieldElement
	if !y.Sqrt(&y2) {
		return false
	}
	y.normalize()
	if y.IsOdd() != odd {
		y.Negate(&y, 1)
		y.normalize()
	}
	r.SetXY(x, &y)
	return true
}

// IsInfinity reports whether r is the point at infinity.
func (r *AffinePoint) IsInfinity() bool { return r.infinity }

// IsOnCurve reports whether r satisfies the curve equation.
func (r *AffinePoint) IsOnCurve() bool {
	if r.infinity {
		return true
	}
	var lhs, rhs, x2, x3, xNorm, yNorm FieldElement
	xNorm, yNorm = r.x, r.y
	xNorm.normalize()
	yNorm.normalize()

	lhs.Sqr(&yNorm)
	x2.Sqr(&xNorm)
	x3.Mul(&x2, &xNorm)
	rhs = x3
	b := curveB()
	rhs.Add(&b)

	lhs.normalize()
	rhs.normalize()
	return lhs.Equal(&rhs)
}

// Negate sets r = -a.
func (r *AffinePoint) Negate(a *AffinePoint) {
	if a.infinity {
		r.SetInfinity()
		return
	}
	r.x = a.x
	r.y.Negate(&a.y, a.y.magnitude)
	r.infinity = false
}

// SetInfinity sets r to the identity element.
func (r *AffinePoint) SetInfinity() {
	r.x, r.y, r.infinity = FieldElementZero, FieldElementZero, true
}

// Equal compares two affine points for equality (not constant-time; used
// only in variable-time code paths such as table construction and tests).
func (r *AffinePoint) Equal(a *AffinePoint) bool {
	if r.infinity && a.infinity {
		return true
	}
	if r.infinity || a.infinity {
		return false
	}
	rn, an := *r, *a
	rn.x.normalize()
	rn.y.normalize()
	an.x.normalize()
	an.y.normalize()
	return rn.x.Equal(&an.x) && rn.y.Equal(&an.y)
}

// Clear wipes r's coordinates.
func (r *AffinePoint) Clear() {
	r.x.Clear()
	r.y.Clear()
	r.infinity = true
}

// ToStorage packs a normalized r into the compact table form.
func (r *AffinePoint) ToStorage(s *AffinePointStorage) {
	if r.infinity {
		s.x, s.y = FieldElementStorage{}, FieldElementStorage{}
		return
	}
	if !r.x.normalized {
		r.x.normalize()
	}
	if !r.y.normalized {
		r.y.normalize()
	}
	r.x.ToStorage(&s.x)
	r.y.ToStorage(&s.y)
}

// FromStorage unpacks the compact table form into r.
func (r *AffinePoint) FromStorage(s *AffinePointStorage) {
	if s.x == (FieldElementStorage{}) && s.y == (FieldElementStorage{}) {
		r.SetInfinity()
		return
	}
	r.x.FromStorage(&s.x)
	r.y.FromStorage(&s.y)
	r.infinity = false
}

// EncodeSEC1 writes r's SEC1 encoding to a buffer it allocates: 1 byte for
// the point at infinity, 33 bytes compressed, or 65 bytes uncompressed.
func (r *AffinePoint) EncodeSEC1(compressed bool) []byte {
	if r.infinity {
		return []byte{0x00}
	}
	x, y := r.x, r.y
	x.normalize()
	y.normalize()

	if compressed {
		out := make([]byte, 33)
		if y.IsOdd() {
			out[0] = 0x03
		} else {
			out[0] = 0x02
		}
		x.GetB32(out[1:])
		return out
	}
	out := make([]byte, 65)
	out[0] = 0x04
	x.GetB32(out[1:33])
	y.GetB32(out[33:65])
	return out
}

// DecodeSEC1 parses a SEC1-encoded point (compressed, uncompressed, or
// hybrid), validating it lies on the curve.
func (r *AffinePoint) DecodeSEC1(b []byte) error {
	if len(b) == 1 && b[0] == 0x00 {
		r.SetInfinity()
		return nil
	}
	if len(b) == 33 && (b[0] == 0x02 || b[0] == 0x03) {
		var x FieldElement
		if err := x.SetB32(b[1:]); err != nil {
			return err
		}
		if !r.SetXOdd(&x, b[0] == 0x03) {
			return ecerr.New(ecerr.InvalidPoint, "compressed point is not on the curve")
		}
		return nil
	}
	if len(b) == 65 && (b[0] == 0x04 || b[0] == 0x06 || b[0] == 0x07) {
		var x, y FieldElement
		if err := x.SetB32(b[1:33]); err != nil {
			return err
		}
		if err := y.SetB32(b[33:65]); err != nil {
			return err
		}
		if b[0] == 0x06 && y.IsOdd() {
			return ecerr.New(ecerr.InvalidPoint, "hybrid prefix parity mismatch")
		}
		if b[0] == 0x07 && !y.IsOdd() {
			return ecerr.New(ecerr.InvalidPoint, "hybrid prefix parity mismatch")
		}
		r.SetXY(&x, &y)
		if !r.IsOnCurve() {
			return ecerr.New(ecerr.InvalidPoint, "point is not on the curve")
		}
		return nil
	}
	return ecerr.New(ecerr.InvalidPoint, "unrecognized SEC1 point encoding")
}

// --- Jacobian coordinates ---

// SetInfinity sets r to the identity element.
func (r *JacobianPoint) SetInfinity() {
	r.x, r.y, r.z, r.infinity = FieldElementZero, FieldElementOne, FieldElementZero, true
}

// IsInfinity reports whether r is the point at infinity.
func (r *JacobianPoint) IsInfinity() bool { return r.infinity }

// SetAffine sets r from an affine point.
func (r *JacobianPoint) SetAffine(a *AffinePoint) {
	if a.infinity {
		r.SetInfinity()
		return
	}
	r.x, r.y, r.z, r.infinity = a.x, a.y, FieldElementOne, false
}

// SetJacobian sets r to the affine form of a using one field inversion.
// Callers multiplying many points should instead use BatchInverse over
// each point's Z coordinate.
func (r *AffinePoint) SetJacobian(a *JacobianPoint) {
	if a.infinity {
		r.SetInfinity()
		return
	}
	ac := *a
	r.infinity = false

	ac.z.Inv(&ac.z)
	var z2, z3 FieldElement
	z2.Sqr(&ac.z)
	z3.Mul(&ac.z, &z2)
	ac.x.Mul(&ac.x, &z2)
	ac.y.Mul(&ac.y, &z3)

	r.x, r.y = ac.x, ac.y
}

// Negate sets r = -a.
func (r *JacobianPoint) Negate(a *JacobianPoint) {
	if a.infinity {
		r.SetInfinity()
		return
	}
	r.x = a.x
	r.y.Negate(&a.y, a.y.magnitude)
	r.z = a.z
	r.infinity = false
}

// Double sets r = 2*a.
func (r *JacobianPoint) Double(a *JacobianPoint) {
	var l, s, t FieldElement

	r.infinity = a.infinity

	r.z.Mul(&a.z, &a.y)
	s.Sqr(&a.y)
	l.Sqr(&a.x)
	l.MulInt(3)
	l.Half(&l)
	t.Negate(&s, 1)
	t.Mul(&t, &a.x)
	r.x.Sqr(&l)
	r.x.Add(&t)
	r.x.Add(&t)
	s.Sqr(&s)
	t.Add(&r.x)
	r.y.Mul(&t, &l)
	r.y.Add(&s)
	r.y.Negate(&r.y, 2)
}

// AddVar sets r = a + b in variable time.
func (r *JacobianPoint) AddVar(a, b *JacobianPoint) {
	if a.infinity {
		*r = *b
		return
	}
	if b.infinity {
		*r = *a
		return
	}

	var z22, z12, u1, u2, s1, s2, h, i, h2, h3, t FieldElement

	z22.Sqr(&b.z)
	z12.Sqr(&a.z)
	u1.Mul(&a.x, &z22)
	u2.Mul(&b.x, &z12)
	s1.Mul(&a.y, &z22)
	s1.Mul(&s1, &b.z)
	s2.Mul(&b.y, &z12)
	s2.Mul(&s2, &a.z)

	h.Negate(&u1, 1)
	h.Add(&u2)
	i.Negate(&s2, 1)
	i.Add(&s1)

	var hNorm FieldElement
	hNorm = h
	hNorm.normalize()
	if hNorm.IsZero() {
		var iNorm FieldElement
		iNorm = i
		iNorm.normalize()
		if iNorm.IsZero() {
			r.Double(a)
			return
		}
		r.SetInfinity()
		return
	}

	r.infinity = false
	t.Mul(&h, &b.z)
	r.z.Mul(&a.z, &t)
	h2.Sqr(&h)
	h2.Negate(&h2, 1)
	h3.Mul(&h2, &h)
	t.Mul(&u1, &h2)
	r.x.Sqr(&i)
	r.x.Add(&h3)
	r.x.Add(&t)
	r.x.Add(&t)
	t.Add(&r.x)
	r.y.Mul(&t, &i)
	h3.Mul(&h3, &s1)
	r.y.Add(&h3)
}

// AddAffineVar sets r = a + b where b is affine, in variable time. When
// rzr is non-nil, *rzr is set such that r.z == a.z * (*rzr); this lets
// callers propagate a consistent Z-ratio across a table of Jacobian
// points built from a common affine base (used by the comb builder).
func (r *JacobianPoint) AddAffineVar(a *JacobianPoint, b *AffinePoint, rzr *FieldElement) {
	if a.infinity {
		r.SetAffine(b)
		return
	}
	if b.infinity {
		if rzr != nil {
			rzr.SetInt(1)
		}
		*r = *a
		return
	}

	var z12, u1, u2, s1, s2, h, i, h2, h3, t FieldElement

	z12.Sqr(&a.z)
	u1 = a.x
	u2.Mul(&b.x, &z12)
	s1 = a.y
	s2.Mul(&b.y, &z12)
	s2.Mul(&s2, &a.z)

	h.Negate(&u1, a.x.magnitude)
	h.Add(&u2)
	i.Negate(&s2, 1)
	i.Add(&s1)

	var hNorm FieldElement
	hNorm = h
	hNorm.normalize()
	if hNorm.IsZero() {
		var iNorm FieldElement
		iNorm = i
		iNorm.normalize()
		if iNorm.IsZero() {
			if rzr != nil {
				rzr.SetInt(0)
			}
			r.Double(a)
			return
		}
		if rzr != nil {
			rzr.SetInt(0)
		}
		r.SetInfinity()
		return
	}

	r.infinity = false
	if rzr != nil {
		*rzr = h
	}
	r.z.Mul(&a.z, &h)
	h2.Sqr(&h)
	h2.Negate(&h2, 1)
	h3.Mul(&h2, &h)
	t.Mul(&u1, &h2)
	r.x.Sqr(&i)
	r.x.Add(&h3)
	r.x.Add(&t)
	r.x.Add(&t)
	t.Add(&r.x)
	r.y.Mul(&t, &i)
	h3.Mul(&h3, &s1)
	r.y.Add(&h3)
}

// AddAffine sets r = a + b where b is affine.
func (r *JacobianPoint) AddAffine(a *JacobianPoint, b *AffinePoint) {
	r.AddAffineVar(a, b, nil)
}

// Clear wipes r's coordinates.
func (r *JacobianPoint) Clear() {
	r.x.Clear()
	r.y.Clear()
	r.z.Clear()
	r.infinity = true
}
