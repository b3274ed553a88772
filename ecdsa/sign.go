package ecdsa

import (
	"math/big"

	"curvekit.dev/ecc/curve"
	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/nist"
	"curvekit.dev/ecc/secp256k1"
)

// Signature is a parsed (r, s) ECDSA signature, curve-agnostic. RecoveryID
// is computed for every curve Sign supports (bit 0: parity of R's Y
// coordinate; bit 1: whether R's X coordinate overflowed the group order).
type Signature struct {
	R, S       *big.Int
	RecoveryID int
}

// Sign produces a deterministic (RFC 6979) ECDSA signature over a
// pre-hashed message, normalized to low-S.
func Sign(id curve.ID, priv, msgHash []byte) (*Signature, error) {
	d, ok := curve.Get(id)
	if !ok {
		return nil, ecerr.New(ecerr.InvalidScalar, "unknown curve")
	}
	if len(priv) != d.PrivateLen {
		return nil, ecerr.New(ecerr.InvalidPrivateKey, "private key has wrong length for curve")
	}

	if id == curve.SECP256K1 {
		return signSecp256k1(priv, msgHash)
	}
	return signNist(id, priv, msgHash)
}

func signSecp256k1(priv, msgHash []byte) (*Signature, error) {
	ctx, err := getSecp256k1Context()
	if err != nil {
		return nil, ecerr.New(ecerr.EntropyFailure, "failed to build blinded signing context: "+err.Error())
	}

	var sec secp256k1.Scalar
	if err := sec.SetB32Key(priv); err != nil {
		return nil, err
	}
	var msg secp256k1.Scalar
	if _, err := msg.SetB32(padOrTrunc(msgHash, 32)); err != nil {
		return nil, err
	}

	key := make([]byte, 64)
	copy(key[:32], priv)
	copy(key[32:], padOrTrunc(msgHash, 32))
	d := newDRBG(nonceHash(curve.SECP256K1), key)

	var nonce secp256k1.Scalar
	var nonceBytes [32]byte
	for {
		d.generate(nonceBytes[:])
		if err := nonce.SetB32Key(nonceBytes[:]); err == nil {
			break
		}
		d.reseed()
	}

	var rJac secp256k1.JacobianPoint
	ctx.MulGen(&rJac, &nonce)
	var rAff secp256k1.AffinePoint
	rAff.SetJacobian(&rJac)

	rBytes := rAff.EncodeSEC1(true)[1:] // strip the parity prefix byte, keep X
	var sigR secp256k1.Scalar
	overflow, err := sigR.SetB32(rBytes)
	if err != nil {
		return nil, err
	}
	if sigR.IsZero() {
		return nil, ecerr.New(ecerr.InvalidSignature, "signature r is zero")
	}

	var tmp, sigS, nonceInv secp256k1.Scalar
	tmp.Mul(&sigR, &sec)
	tmp.Add(&tmp, &msg)
	nonceInv.Inv(&nonce)
	sigS.Mul(&nonceInv, &tmp)
	if sigS.IsZero() {
		return nil, ecerr.New(ecerr.InvalidSignature, "signature s is zero")
	}

	xOverflowed := overflow
	yOdd := rAff.EncodeSEC1(true)[0] == 0x03
	negated := sigS.IsHigh()
	sigS.CondNegate(negated)
	if negated {
		yOdd = !yOdd
	}

	recID := 0
	if yOdd {
		recID |= 1
	}
	if xOverflowed {
		recID |= 2
	}

	var rBuf, sBuf [32]byte
	sigR.GetB32(rBuf[:])
	sigS.GetB32(sBuf[:])

	sec.Clear()
	msg.Clear()
	nonce.Clear()

	return &Signature{
		R:          new(big.Int).SetBytes(rBuf[:]),
		S:          new(big.Int).SetBytes(sBuf[:]),
		RecoveryID: recID,
	}, nil
}

func signNist(id curve.ID, priv, msgHash []byte) (*Signature, error) {
	d, _ := curve.Get(id)
	ops, _ := nistOpsFor(id)

	sec := nist.NewScalar(ops.desc)
	if err := sec.SetKeyBytes(ops.desc, priv); err != nil {
		return nil, err
	}

	msg := nist.NewScalar(ops.desc)
	msg.SetBytes(ops.desc, padOrTrunc(msgHash, d.PrivateLen))

	key := make([]byte, 0, 2*d.PrivateLen)
	key = append(key, priv...)
	key = append(key, padOrTrunc(msgHash, d.PrivateLen)...)
	drbg := newDRBG(nonceHash(id), key)

	var nonce *nist.Scalar
	nonceBytes := make([]byte, d.PrivateLen)
	for {
		drbg.generate(nonceBytes)
		cand := nist.NewScalar(ops.desc)
		if err := cand.SetKeyBytes(ops.desc, nonceBytes); err == nil {
			nonce = cand
			break
		}
		drbg.reseed()
	}

	rPointBytes, err := ops.scalarBaseMult(nonce.Bytes())
	if err != nil {
		return nil, err
	}
	// Uncompressed SEC1: 0x04 || X || Y.
	xBytes := rPointBytes[1 : 1+d.PrivateLen]
	yBytes := rPointBytes[1+d.PrivateLen : 1+2*d.PrivateLen]

	sigR := nist.NewScalar(ops.desc)
	xOverflowed := sigR.SetBytes(ops.desc, xBytes)
	if sigR.IsZero() {
		return nil, ecerr.New(ecerr.InvalidSignature, "signature r is zero")
	}

	var tmp, sigS, nonceInv nist.Scalar
	tmp.Mul(sigR, sec)
	tmp.Add(&tmp, msg)
	nonceInv.Inverse(nonce)
	sigS.Mul(&nonceInv, &tmp)
	if sigS.IsZero() {
		return nil, ecerr.New(ecerr.InvalidSignature, "signature s is zero")
	}

	yOdd := yBytes[len(yBytes)-1]&1 != 0
	if sigS.IsHigh() {
		var negS nist.Scalar
		negS.Negate(&sigS)
		sigS = negS
		yOdd = !yOdd
	}

	recID := 0
	if yOdd {
		recID |= 1
	}
	if xOverflowed {
		recID |= 2
	}

	return &Signature{R: sigR.BigInt(), S: sigS.BigInt(), RecoveryID: recID}, nil
}

// padOrTrunc left-pads or truncates b to exactly n bytes (ANSI X9.62 bit
// truncation for hash lengths that don't match the curve's order length).
func padOrTrunc(b []byte, n int) []byte {
	if len(b) == n {
		return b
	}
	out := make([]byte, n)
	if len(b) > n {
		copy(out, b[:n])
		return out
	}
	copy(out[n-len(b):], b)
	return out
}
