package ecdsa

import (
	"encoding/hex"
	"math/big"

	"curvekit.dev/ecc/curve"
	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/nist"
	"curvekit.dev/ecc/secp256k1"
)

// secp256k1Order is the group order n, used to recompute r + n when a
// recovery id's overflow bit says r's field encoding exceeded n.
var secp256k1Order = mustHex("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141")

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Recover reconstructs the SEC1-uncompressed public key (0x04 || X || Y)
// that produced sig over msgHash, given the recovery id stored on the
// signature (bit 0: the parity of R's Y coordinate; bit 1: whether R's X
// coordinate had overflowed the group order when reduced mod n). Defined
// for secp256k1 and the four NIST curves; EdDSA has no recovery operation.
func Recover(id curve.ID, msgHash []byte, sig *Signature) ([]byte, error) {
	if sig.RecoveryID < 0 || sig.RecoveryID > 3 {
		return nil, ecerr.New(ecerr.InvalidRecoveryId, "recovery id must be in [0,3]")
	}

	if id == curve.SECP256K1 {
		return recoverSecp256k1(msgHash, sig)
	}
	return recoverNist(id, msgHash, sig)
}

func recoverSecp256k1(msgHash []byte, sig *Signature) ([]byte, error) {
	var rBuf, sBuf, mBuf [32]byte
	sig.R.FillBytes(rBuf[:])
	sig.S.FillBytes(sBuf[:])
	copy(mBuf[:], padOrTrunc(msgHash, 32))

	var r, s, msg secp256k1.Scalar
	if _, err := r.SetB32(rBuf[:]); err != nil {
		return nil, err
	}
	if _, err := s.SetB32(sBuf[:]); err != nil {
		return nil, err
	}
	if _, err := msg.SetB32(mBuf[:]); err != nil {
		return nil, err
	}
	if r.IsZero() || s.IsZero() {
		return nil, ecerr.New(ecerr.InvalidSignature, "signature r or s is zero")
	}

	// Reconstruct the field element x = r (+ n, if bit 1 of the recovery
	// id says r's field-encoding had overflowed n during signing). r + n
	// must still be below p, otherwise the recovery id is rejected.
	var x secp256k1.FieldElement
	if err := x.SetB32(rBuf[:]); err != nil {
		return nil, err
	}
	if sig.RecoveryID&2 != 0 {
		p, _ := new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F", 16)
		if new(big.Int).Add(sig.R, new(big.Int).SetBytes(secp256k1Order)).Cmp(p) >= 0 {
			return nil, ecerr.New(ecerr.InvalidRecoveryId, "recovered x coordinate is not a valid field element")
		}
		var nFE secp256k1.FieldElement
		if err := nFE.SetB32(secp256k1Order); err != nil {
			return nil, err
		}
		x.Add(&nFE)
	}

	yOdd := sig.RecoveryID&1 != 0
	var rPoint secp256k1.AffinePoint
	if !rPoint.SetXOdd(&x, yOdd) {
		return nil, ecerr.New(ecerr.InvalidPoint, "recovered x is not on the curve")
	}

	// pubkey = r^-1 * (s*R - msg*G)
	var rInv, negMsg secp256k1.Scalar
	rInv.Inv(&r)
	negMsg.Negate(&msg)

	var sr secp256k1.JacobianPoint
	secp256k1.MulVar(&sr, &rPoint, &s)

	var negMsgG secp256k1.JacobianPoint
	secp256k1.Mul(&negMsgG, &negMsg)

	var sum secp256k1.JacobianPoint
	sum.AddVar(&sr, &negMsgG)

	var sumAffine secp256k1.AffinePoint
	sumAffine.SetJacobian(&sum)
	if sumAffine.IsInfinity() {
		return nil, ecerr.New(ecerr.InvalidPoint, "recovered public key is the point at infinity")
	}

	var pubJac secp256k1.JacobianPoint
	secp256k1.MulVar(&pubJac, &sumAffine, &rInv)

	var pub secp256k1.AffinePoint
	pub.SetJacobian(&pubJac)
	if pub.IsInfinity() {
		return nil, ecerr.New(ecerr.InvalidPoint, "recovered public key is the point at infinity")
	}

	return pub.EncodeSEC1(false), nil
}

func recoverNist(id curve.ID, msgHash []byte, sig *Signature) ([]byte, error) {
	ops, ok := nistOpsFor(id)
	if !ok {
		return nil, ecerr.New(ecerr.InvalidScalar, "unknown curve")
	}
	d := ops.desc

	r := nist.NewScalar(d)
	s := nist.NewScalar(d)
	msg := nist.NewScalar(d)
	r.SetBytes(d, sig.R.Bytes())
	s.SetBytes(d, sig.S.Bytes())
	msg.SetBytes(d, padOrTrunc(msgHash, d.ByteLen))
	if r.IsZero() || s.IsZero() {
		return nil, ecerr.New(ecerr.InvalidSignature, "signature r or s is zero")
	}

	// Reconstruct R's x-coordinate, adding the group order back in when
	// the recovery id's overflow bit says the original field value
	// exceeded N during signing.
	x := new(big.Int).Set(r.BigInt())
	if sig.RecoveryID&2 != 0 {
		x.Add(x, d.N)
	}
	if x.Cmp(d.P) >= 0 {
		return nil, ecerr.New(ecerr.InvalidRecoveryId, "recovered x coordinate is not a valid field element")
	}
	xBytes := make([]byte, d.ByteLen)
	x.FillBytes(xBytes)

	prefix := byte(0x02)
	if sig.RecoveryID&1 != 0 {
		prefix = 0x03
	}
	compressedR := append([]byte{prefix}, xBytes...)

	// pubkey = r^-1 * (s*R - msg*G), computed through nistec's SEC1
	// decode-then-scalar-mult so R is validated (on-curve, non-infinity)
	// as a byproduct of decoding it.
	sRBytes, err := ops.scalarMult(compressedR, s.Bytes())
	if err != nil {
		return nil, ecerr.New(ecerr.InvalidPoint, "recovered R is not a valid curve point")
	}

	var negMsg nist.Scalar
	negMsg.Negate(msg)
	negMsgGBytes, err := ops.scalarBaseMult(negMsg.Bytes())
	if err != nil {
		return nil, err
	}

	sumBytes, err := ops.add(sRBytes, negMsgGBytes)
	if err != nil {
		return nil, err
	}
	// nistec encodes the point at infinity as a single 0x00 byte, shorter
	// than any valid uncompressed point (1 + 2*ByteLen bytes).
	if len(sumBytes) < 1+d.ByteLen {
		return nil, ecerr.New(ecerr.InvalidPoint, "recovered public key is the point at infinity")
	}

	var rInv nist.Scalar
	rInv.Inverse(r)
	pubBytes, err := ops.scalarMult(sumBytes, rInv.Bytes())
	if err != nil {
		return nil, err
	}
	if len(pubBytes) < 1+d.ByteLen {
		return nil, ecerr.New(ecerr.InvalidPoint, "recovered public key is the point at infinity")
	}

	return pubBytes, nil
}
