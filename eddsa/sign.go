package eddsa

import (
	"crypto/sha512"

	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/edwards"
)

// Sign produces a deterministic Ed25519 signature over message.
//
// ph selects Ed25519ph (message is hashed with SHA-512 before signing,
// per RFC 8032 §5.1). context, if non-empty, is the Ed25519ctx/Ed25519ph
// context string; plain Ed25519 (ph=false, context=nil) uses no domain
// separator, matching the original scheme byte-for-byte.
func Sign(seed, message []byte, ph bool, context []byte) ([]byte, error) {
	k, err := expand(seed)
	if err != nil {
		return nil, err
	}
	A := k.publicPoint()
	aEnc := A.Encode()

	msg := prehash(ph, message)

	var dom []byte
	if needsDom2(ph, context) {
		dom, err = dom2Prefix(ph, context)
		if err != nil {
			return nil, err
		}
	}

	rHash := sha512.New()
	rHash.Write(dom)
	rHash.Write(k.prefix[:])
	rHash.Write(msg)
	rDigest := rHash.Sum(nil)

	r := edwards.NewScalar()
	if err := r.SetUniformBytes(rDigest); err != nil {
		return nil, err
	}
	R := edwards.NewIdentity().ScalarBaseMult(r)
	rEnc := R.Encode()

	kHash := sha512.New()
	kHash.Write(dom)
	kHash.Write(rEnc)
	kHash.Write(aEnc)
	kHash.Write(msg)
	kDigest := kHash.Sum(nil)

	challenge := edwards.NewScalar()
	if err := challenge.SetUniformBytes(kDigest); err != nil {
		return nil, err
	}

	s := edwards.NewScalar()
	s.MultiplyAdd(challenge, k.scalar, r)

	sig := make([]byte, 0, SignatureLen)
	sig = append(sig, rEnc...)
	sig = append(sig, s.Bytes()...)
	if len(sig) != SignatureLen {
		return nil, ecerr.New(ecerr.InvalidSignature, "internal signature length mismatch")
	}
	return sig, nil
}
