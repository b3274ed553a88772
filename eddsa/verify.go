package eddsa

import (
	"crypto/sha512"

	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/edwards"
)

// Verify checks an Ed25519 signature over message against an encoded
// public key, using the same ph/context selection as Sign. Verification
// is cofactored per RFC 8032 §5.1.7, rejecting small-order R or A
// components instead of silently accepting them.
func Verify(pub, message, sig []byte, ph bool, context []byte) (bool, error) {
	if len(pub) != PublicLen {
		return false, ecerr.New(ecerr.InvalidPoint, "public key must be 32 bytes")
	}
	if len(sig) != SignatureLen {
		return false, ecerr.New(ecerr.InvalidSignature, "signature must be 64 bytes")
	}

	A := &edwards.Point{}
	if err := A.Decode(pub); err != nil {
		return false, err
	}

	R := &edwards.Point{}
	if err := R.Decode(sig[:32]); err != nil {
		return false, err
	}

	identity := edwards.NewIdentity()
	if edwards.NewIdentity().MultByCofactor(A).Equal(identity) || edwards.NewIdentity().MultByCofactor(R).Equal(identity) {
		return false, ecerr.New(ecerr.InvalidPoint, "public key or R is a small-order point")
	}

	s := edwards.NewScalar()
	if err := s.SetCanonicalBytes(sig[32:]); err != nil {
		return false, err
	}

	msg := prehash(ph, message)

	var dom []byte
	var err error
	if needsDom2(ph, context) {
		dom, err = dom2Prefix(ph, context)
		if err != nil {
			return false, err
		}
	}

	kHash := sha512.New()
	kHash.Write(dom)
	kHash.Write(sig[:32])
	kHash.Write(pub)
	kHash.Write(msg)
	kDigest := kHash.Sum(nil)

	challenge := edwards.NewScalar()
	if err := challenge.SetUniformBytes(kDigest); err != nil {
		return false, err
	}
	negChallenge := edwards.NewScalar()
	negChallenge.Negate(challenge)

	// check = s*B - k*A
	check := edwards.NewIdentity().VarTimeDoubleScalarBaseMult(negChallenge, A, s)

	lhs := edwards.NewIdentity().MultByCofactor(check)
	rhs := edwards.NewIdentity().MultByCofactor(R)

	return lhs.Equal(rhs), nil
}
