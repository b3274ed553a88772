package ecdsa

import (
	"math/big"

	"curvekit.dev/ecc/curve"
	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/nist"
	"curvekit.dev/ecc/secp256k1"
)

// Verify checks an ECDSA signature over a pre-hashed message against a
// public key encoded per SEC1 (compressed or uncompressed for secp256k1,
// or the curve's native uncompressed nistec encoding for the NIST curves).
func Verify(id curve.ID, pubKey []byte, msgHash []byte, sig *Signature) (bool, error) {
	d, ok := curve.Get(id)
	if !ok {
		return false, ecerr.New(ecerr.InvalidScalar, "unknown curve")
	}
	if sig.R.Sign() <= 0 || sig.S.Sign() <= 0 || sig.R.Cmp(d.Order) >= 0 || sig.S.Cmp(d.Order) >= 0 {
		return false, nil
	}

	if id == curve.SECP256K1 {
		return verifySecp256k1(pubKey, msgHash, sig)
	}
	return verifyNist(id, pubKey, msgHash, sig)
}

func verifySecp256k1(pubKey, msgHash []byte, sig *Signature) (bool, error) {
	var pub secp256k1.AffinePoint
	if err := pub.DecodeSEC1(pubKey); err != nil {
		return false, err
	}

	var r, s, msg secp256k1.Scalar
	var rBuf, sBuf, mBuf [32]byte
	sig.R.FillBytes(rBuf[:])
	sig.S.FillBytes(sBuf[:])
	if _, err := r.SetB32(rBuf[:]); err != nil {
		return false, err
	}
	if _, err := s.SetB32(sBuf[:]); err != nil {
		return false, err
	}
	copy(mBuf[:], padOrTrunc(msgHash, 32))
	if _, err := msg.SetB32(mBuf[:]); err != nil {
		return false, err
	}
	if r.IsZero() || s.IsZero() {
		return false, nil
	}

	var sInv, u1, u2 secp256k1.Scalar
	sInv.Inv(&s)
	u1.Mul(&sInv, &msg)
	u2.Mul(&sInv, &r)

	var result secp256k1.JacobianPoint
	secp256k1.EcmultVar(&result, &u2, &pub, &u1)

	var resultAff secp256k1.AffinePoint
	resultAff.SetJacobian(&result)
	if resultAff.IsInfinity() {
		return false, nil
	}

	xBytes := resultAff.EncodeSEC1(true)[1:]
	var x secp256k1.Scalar
	if _, err := x.SetB32(xBytes); err != nil {
		return false, err
	}

	return x.Equal(&r), nil
}

func verifyNist(id curve.ID, pubKey, msgHash []byte, sig *Signature) (bool, error) {
	ops, _ := nistOpsFor(id)
	d := ops.desc

	r := nist.NewScalar(d)
	s := nist.NewScalar(d)
	msg := nist.NewScalar(d)
	r.SetBytes(d, sig.R.Bytes())
	s.SetBytes(d, sig.S.Bytes())
	msg.SetBytes(d, padOrTrunc(msgHash, d.ByteLen))
	if r.IsZero() || s.IsZero() {
		return false, nil
	}

	var sInv, u1, u2 nist.Scalar
	sInv.Inverse(s)
	u1.Mul(&sInv, msg)
	u2.Mul(&sInv, r)

	p1Bytes, err := ops.scalarBaseMult(u1.Bytes())
	if err != nil {
		return false, err
	}
	p2Bytes, err := ops.scalarMult(pubKey, u2.Bytes())
	if err != nil {
		return false, err
	}
	sumBytes, err := ops.add(p1Bytes, p2Bytes)
	if err != nil {
		return false, err
	}
	// nistec encodes the point at infinity as a single 0x00 byte, shorter
	// than any valid uncompressed point (1 + 2*ByteLen bytes); reject
	// rather than slice out of range, matching "reject if R' is infinity".
	if len(sumBytes) < 1+d.ByteLen {
		return false, nil
	}

	xBytes := sumBytes[1 : 1+d.ByteLen]
	x := new(big.Int).SetBytes(xBytes)
	xMod := new(big.Int).Mod(x, d.N)

	return xMod.Cmp(r.BigInt()) == 0, nil
}
