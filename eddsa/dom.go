package eddsa

import (
	"crypto/sha512"

	"curvekit.dev/ecc/ecerr"
)

// dom2Label is RFC 8032's "SigEd25519 no Ed25519 collisions" domain
// separator, prepended to the hashed message whenever either a non-empty
// context string or the prehashed (ph) variant is in use. Plain Ed25519
// with an empty context uses no prefix at all, preserving compatibility
// with the original scheme.
const dom2Label = "SigEd25519 no Ed25519 collisions"

func needsDom2(ph bool, context []byte) bool {
	return ph || len(context) > 0
}

func dom2Prefix(ph bool, context []byte) ([]byte, error) {
	if len(context) > 255 {
		return nil, ecerr.New(ecerr.InvalidSignature, "context must be at most 255 bytes")
	}
	flag := byte(0)
	if ph {
		flag = 1
	}
	out := make([]byte, 0, len(dom2Label)+2+len(context))
	out = append(out, dom2Label...)
	out = append(out, flag, byte(len(context)))
	out = append(out, context...)
	return out, nil
}

// prehash applies SHA-512 to message when the ph (Ed25519ph) variant is
// requested; otherwise message passes through unchanged for the pure or
// ctx variants, which hash the actual message themselves inside sign/verify.
func prehash(ph bool, message []byte) []byte {
	if !ph {
		return message
	}
	sum := sha512.Sum512(message)
	return sum[:]
}
