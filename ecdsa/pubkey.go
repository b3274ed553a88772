package ecdsa

import (
	"curvekit.dev/ecc/curve"
	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/nist"
	"curvekit.dev/ecc/secp256k1"
)

// DerivePublicKey computes the public key for a private key, encoded per
// SEC1 uncompressed form (0x04 || X || Y) for every curve.
func DerivePublicKey(id curve.ID, priv []byte) ([]byte, error) {
	d, ok := curve.Get(id)
	if !ok {
		return nil, ecerr.New(ecerr.InvalidScalar, "unknown curve")
	}
	if len(priv) != d.PrivateLen {
		return nil, ecerr.New(ecerr.InvalidPrivateKey, "private key has wrong length for curve")
	}

	if id == curve.SECP256K1 {
		ctx, err := getSecp256k1Context()
		if err != nil {
			return nil, ecerr.New(ecerr.EntropyFailure, "failed to build blinded signing context: "+err.Error())
		}
		var sec secp256k1.Scalar
		if err := sec.SetB32Key(priv); err != nil {
			return nil, err
		}
		var pubJac secp256k1.JacobianPoint
		ctx.MulGen(&pubJac, &sec)
		var pub secp256k1.AffinePoint
		pub.SetJacobian(&pubJac)
		return pub.EncodeSEC1(false), nil
	}

	ops, _ := nistOpsFor(id)
	sec := nist.NewScalar(ops.desc)
	if err := sec.SetKeyBytes(ops.desc, priv); err != nil {
		return nil, err
	}
	return ops.scalarBaseMult(sec.Bytes())
}
