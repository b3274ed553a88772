package secp256k1

// EcmultVar computes r = na*a + ng*G in variable time. Both na and ng are
// first GLV-decomposed into half-width subscalars via scalarSplitLambda (the
// same split ConstMul uses for the constant-time path), so the point-side
// contribution becomes na1*a + na2*(lambda*a) and the generator-side
// contribution becomes ng1*G + ng2*(lambda*G); the four terms are then
// combined in a single left-to-right double-and-add pass over independent
// width-w NAF expansions (a 4-way joint sparse form / interleaved wNAF),
// mirroring libsecp256k1's secp256k1_ecmult with its endomorphism enabled.
// The generator side uses a wider window than the point side since its
// table is rebuilt from the well-known constant G rather than an arbitrary
// public key. Neither na, a, nor ng is secret during ECDSA verification and
// recovery, so a variable-time algorithm is the correct (and much faster)
// choice here.
func EcmultVar(r *JacobianPoint, na *Scalar, a *AffinePoint, ng *Scalar) {
	const wPoint = 5
	const wGen = 6
	const tablePoint = 1 << (wPoint - 2)
	const tableGen = 1 << (wGen - 2)

	na1, na2 := splitScalar(na)
	ng1, ng2 := splitScalar(ng)

	var aLam AffinePoint
	applyLambda(&aLam, a)
	var gLam AffinePoint
	applyLambda(&gLam, &Generator)

	aSigned := negateIfNeeded(a, na1.neg)
	aLamSigned := negateIfNeeded(&aLam, na2.neg)
	gSigned := negateIfNeeded(&Generator, ng1.neg)
	gLamSigned := negateIfNeeded(&gLam, ng2.neg)

	var aJac, aLamJac, gJac, gLamJac JacobianPoint
	aJac.SetAffine(&aSigned)
	aLamJac.SetAffine(&aLamSigned)
	gJac.SetAffine(&gSigned)
	gLamJac.SetAffine(&gLamSigned)

	aTable := buildOddMultiplesTable(tablePoint, &aJac)
	aLamTable := buildOddMultiplesTable(tablePoint, &aLamJac)
	gTable := buildOddMultiplesTable(tableGen, &gJac)
	gLamTable := buildOddMultiplesTable(tableGen, &gLamJac)

	na1NAF := na1.mag.NAF(wPoint)
	na2NAF := na2.mag.NAF(wPoint)
	ng1NAF := ng1.mag.NAF(wGen)
	ng2NAF := ng2.mag.NAF(wGen)

	top := len(na1NAF)
	for _, naf := range [][]int32{na2NAF, ng1NAF, ng2NAF} {
		if len(naf) > top {
			top = len(naf)
		}
	}

	r.SetInfinity()
	for i := top - 1; i >= 0; i-- {
		r.Double(r)

		if i < len(na1NAF) && na1NAF[i] != 0 {
			addSignedDigit(r, aTable, na1NAF[i])
		}
		if i < len(na2NAF) && na2NAF[i] != 0 {
			addSignedDigit(r, aLamTable, na2NAF[i])
		}
		if i < len(ng1NAF) && ng1NAF[i] != 0 {
			addSignedDigit(r, gTable, ng1NAF[i])
		}
		if i < len(ng2NAF) && ng2NAF[i] != 0 {
			addSignedDigit(r, gLamTable, ng2NAF[i])
		}
	}
}

// splitHalf is one GLV subscalar: a magnitude in [0, 2^128) plus the sign
// scalarSplitLambda's result carried before it got folded into mod-n wrap.
type splitHalf struct {
	mag Scalar
	neg bool
}

// splitScalar GLV-decomposes k into two half-width subscalars k1, k2 with
// k1 + lambda*k2 == k (mod n), each returned as an unsigned magnitude plus
// a sign bit rather than the wrapped mod-n residue scalarSplitLambda hands
// back, so the caller can fold the sign into which point gets multiplied
// instead of the scalar.
func splitScalar(k *Scalar) (splitHalf, splitHalf) {
	var r1, r2 Scalar
	scalarSplitLambda(&r1, &r2, k)

	m1, neg1 := splitSigned(&r1)
	m2, neg2 := splitSigned(&r2)
	return splitHalf{mag: m1, neg: neg1}, splitHalf{mag: m2, neg: neg2}
}

// splitSigned recovers the sign and magnitude of a scalarSplitLambda half,
// which scalarSplitLambda leaves as a mod-n residue representing a value in
// (-2^128, 2^128): a non-negative value fits entirely in the low two limbs,
// while a negative value wraps to n-|v|, recognizable by a nonzero limb
// above bit 128 (n is ~2^256, so n-|v| for |v| < 2^128 is always that
// large).
func splitSigned(k *Scalar) (mag Scalar, neg bool) {
	if k.d[2] != 0 || k.d[3] != 0 {
		mag.Negate(k)
		return mag, true
	}
	return *k, false
}

// negateIfNeeded returns p, or its negation when neg is true, without
// mutating p.
func negateIfNeeded(p *AffinePoint, neg bool) AffinePoint {
	if !neg {
		return *p
	}
	var np AffinePoint
	np.Negate(p)
	return np
}

// addSignedDigit adds digit*base (base being the point the odd-multiples
// table was built from) to r in variable time, where table holds
// [1*base, 3*base, 5*base, ...].
func addSignedDigit(r *JacobianPoint, table []AffinePoint, digit int32) {
	idx := digit
	neg := false
	if idx < 0 {
		idx = -idx
		neg = true
	}
	p := table[(idx-1)/2]
	if neg {
		var np AffinePoint
		np.Negate(&p)
		p = np
	}
	r.AddAffineVar(r, &p, nil)
}

// MulVar computes r = k*a in variable time. Used only when k and a are
// both public (e.g. recomputing a known signature's R point in tests); use
// ConstMul or a GenContext for anything touching a secret scalar.
func MulVar(r *JacobianPoint, a *AffinePoint, k *Scalar) {
	var zero Scalar
	EcmultVar(r, k, a, &zero)
}
