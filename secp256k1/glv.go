package secp256k1

import "curvekit.dev/ecc/internal/ctutil"

// GLV endomorphism constants and the scalar-splitting/signed-digit
// machinery used by constant-time fixed-base and variable-base scalar
// multiplication, ported from libsecp256k1's ecmult_const/GLV design.

// lambdaConstant is a primitive cube root of unity modulo n.
var lambdaConstant = Scalar{
	d: [4]uint64{
		(uint64(0xDF02967C) << 32) | uint64(0x1B23BD72),
		(uint64(0x122E22EA) << 32) | uint64(0x20816678),
		(uint64(0xA5261C02) << 32) | uint64(0x8812645A),
		(uint64(0x5363AD4C) << 32) | uint64(0xC05C30E0),
	},
}

// betaConstant is a primitive cube root of unity modulo p, such that
// lambda*(x, y) = (beta*x, y).
var betaConstant FieldElement

func init() {
	betaBytes := []byte{
		0x7a, 0xe9, 0x6a, 0x2b, 0x65, 0x7c, 0x07, 0x10,
		0x6e, 0x64, 0x47, 0x9e, 0xac, 0x34, 0x34, 0xe9,
		0x9c, 0xf0, 0x49, 0x75, 0x12, 0xf5, 0x89, 0x95,
		0xc1, 0x39, 0x6c, 0x28, 0x71, 0x95, 0x01, 0xee,
	}
	if err := betaConstant.SetB32(betaBytes); err != nil {
		panic(err)
	}
	betaConstant.normalize()
}

var (
	minusB1 = Scalar{
		d: [4]uint64{
			(uint64(0x6F547FA9) << 32) | uint64(0x0ABFE4C3),
			(uint64(0xE4437ED6) << 32) | uint64(0x010E8828),
			0,
			0,
		},
	}
	minusB2 = Scalar{
		d: [4]uint64{
			(uint64(0xD765CDA8) << 32) | uint64(0x3DB1562C),
			(uint64(0x8A280AC5) << 32) | uint64(0x0774346D),
			(uint64(0xFFFFFFFF) << 32) | uint64(0xFFFFFFFE),
			(uint64(0xFFFFFFFF) << 32) | uint64(0xFFFFFFFF),
		},
	}
	g1 = Scalar{
		d: [4]uint64{
			(uint64(0xE893209A) << 32) | uint64(0x45DBB031),
			(uint64(0x3DAA8A14) << 32) | uint64(0x71E8CA7F),
			(uint64(0xE86C90E4) << 32) | uint64(0x9284EB15),
			(uint64(0x3086D221) << 32) | uint64(0xA7D46BCD),
		},
	}
	g2 = Scalar{
		d: [4]uint64{
			(uint64(0x1571B4AE) << 32) | uint64(0x8AC47F71),
			(uint64(0x221208AC) << 32) | uint64(0x9DF506C6),
			(uint64(0x6F547FA9) << 32) | uint64(0x0ABFE4C4),
			(uint64(0xE4437ED6) << 32) | uint64(0x010E8828),
		},
	}
)

// mulShiftVar returns round(k*g / 2^shift).
func mulShiftVar(k, g *Scalar, shift uint) Scalar {
	var l [8]uint64
	Mul512(&l, k, g)

	var result Scalar
	shiftLimbs := shift / 64
	shiftLow := shift % 64
	shiftHigh := 64 - shiftLow

	if shift < 512 {
		result.d[0] = l[shiftLimbs] >> shiftLow
		if shift < 448 && shiftLow != 0 {
			result.d[0] |= l[shiftLimbs+1] << shiftHigh
		}
	}
	if shift < 448 {
		result.d[1] = l[shiftLimbs+1] >> shiftLow
		if shift < 384 && shiftLow != 0 {
			result.d[1] |= l[shiftLimbs+2] << shiftHigh
		}
	}
	if shift < 384 {
		result.d[2] = l[shiftLimbs+2] >> shiftLow
		if shift < 320 && shiftLow != 0 {
			result.d[2] |= l[shiftLimbs+3] << shiftHigh
		}
	}
	if shift < 320 {
		result.d[3] = l[shiftLimbs+3] >> shiftLow
	}

	if shift > 0 {
		bitPos := (shift - 1) & 0x3f
		limbIdx := (shift - 1) >> 6
		if limbIdx < 8 && (l[limbIdx]>>bitPos)&1 != 0 {
			var one Scalar
			one.SetInt(1)
			result.Add(&result, &one)
		}
	}
	return result
}

// scalarSplitLambda splits k into r1, r2 in (-2^128, 2^128) with
// r1 + lambda*r2 == k (mod n).
func scalarSplitLambda(r1, r2, k *Scalar) {
	var c1, c2 Scalar
	c1 = mulShiftVar(k, &g1, 384)
	c2 = mulShiftVar(k, &g2, 384)

	c1.Mul(&c1, &minusB1)
	c2.Mul(&c2, &minusB2)

	r2.Add(&c1, &c2)

	r1.Mul(r2, &lambdaConstant)
	r1.Negate(r1)
	r1.Add(r1, k)
}

// applyLambda sets r = lambda*a using the endomorphism lambda*(x,y) =
// (beta*x, y).
func applyLambda(r, a *AffinePoint) {
	*r = *a
	r.x.Mul(&r.x, &betaConstant)
	r.x.normalize()
}

const (
	constGroupSize = 5
	constTableSize = 1 << (constGroupSize - 1)
	constBits      = 130
	constGroups    = (constBits + constGroupSize - 1) / constGroupSize
)

// constK = (2^130 - 2^129 - 1)*(1 + lambda) mod n, used to keep the
// blinded scalar halves positive through the signed-digit comb.
var constK = Scalar{
	d: [4]uint64{
		(uint64(0xb5c2c1dc) << 32) | uint64(0xde9798d9),
		(uint64(0x589ae848) << 32) | uint64(0x26ba29e4),
		(uint64(0xc2bdd6bf) << 32) | uint64(0x7c118d6b),
		(uint64(0xa4e88a7d) << 32) | uint64(0xcb13034e),
	},
}

// constSOffset = 2^128.
var constSOffset = Scalar{d: [4]uint64{0, 0, 1, 0}}

// signedDigitTableGet performs a constant-time lookup of the signed odd
// digit n out of a table of precomputed odd multiples [1P, 3P, ..., 31P].
func signedDigitTableGet(pre []AffinePoint, n uint32) AffinePoint {
	negative := ((n >> (constGroupSize - 1)) ^ 1) != 0

	var negMask uint32
	if negative {
		negMask = 0xFFFFFFFF
	}
	index := (negMask ^ n) & ((1 << (constGroupSize - 1)) - 1)

	result := pre[0]
	for i := uint32(1); i < constTableSize; i++ {
		flag := ctutil.SelectInt(boolToFlag(i == index), 1, 0)
		result.x.CondSelect(&pre[i].x, flag)
		result.y.CondSelect(&pre[i].y, flag)
	}
	result.infinity = false

	var negY FieldElement
	negY.Negate(&result.y, 1)
	result.y.CondSelect(&negY, boolToFlag(negative))
	result.y.normalize()

	return result
}

func boolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// buildOddMultiplesTable builds [1a, 3a, 5a, ..., (2n-1)a] in affine
// coordinates using a single batched field inversion.
func buildOddMultiplesTable(n int, aJac *JacobianPoint) []AffinePoint {
	if aJac.IsInfinity() {
		return nil
	}

	preJac := make([]JacobianPoint, n)
	preAff := make([]AffinePoint, n)

	preJac[0] = *aJac

	var d JacobianPoint
	d.Double(aJac)

	for i := 1; i < n; i++ {
		preJac[i].AddVar(&preJac[i-1], &d)
	}

	z := make([]FieldElement, n)
	for i := 0; i < n; i++ {
		z[i] = preJac[i].z
	}
	zInv := make([]FieldElement, n)
	BatchInverse(zInv, z)

	for i := 0; i < n; i++ {
		var zi2, zi3 FieldElement
		zi2.Sqr(&zInv[i])
		zi3.Mul(&zi2, &zInv[i])
		preAff[i].x.Mul(&preJac[i].x, &zi2)
		preAff[i].y.Mul(&preJac[i].y, &zi3)
		preAff[i].infinity = false
	}

	return preAff
}

// ConstMul computes r = q*a via the GLV decomposition and a constant-time
// signed-digit comb over the two ~130-bit half-scalars. This is the
// variable-base, constant-time multiply used for ECDH-style operations
// on an untrusted point.
func ConstMul(r *JacobianPoint, a *AffinePoint, q *Scalar) {
	if a.infinity {
		r.SetInfinity()
		return
	}

	var s, v1, v2 Scalar
	s.Add(q, &constK)
	s.Half(&s)
	scalarSplitLambda(&v1, &v2, &s)
	v1.Add(&v1, &constSOffset)
	v2.Add(&v2, &constSOffset)

	var aJac JacobianPoint
	aJac.SetAffine(a)
	preA := buildOddMultiplesTable(constTableSize, &aJac)

	preALam := make([]AffinePoint, constTableSize)
	for i := 0; i < constTableSize; i++ {
		applyLambda(&preALam[i], &preA[i])
	}

	for group := constGroups - 1; group >= 0; group-- {
		bitOffset := uint(group * constGroupSize)
		bits1 := v1.GetBits(bitOffset, constGroupSize)
		bits2 := v2.GetBits(bitOffset, constGroupSize)

		t := signedDigitTableGet(preA, bits1)
		if group == constGroups-1 {
			r.SetAffine(&t)
		} else {
			for j := 0; j < constGroupSize; j++ {
				r.Double(r)
			}
			r.AddAffine(r, &t)
		}

		t = signedDigitTableGet(preALam, bits2)
		r.AddAffine(r, &t)
	}
}
