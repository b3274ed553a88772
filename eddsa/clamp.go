// Package eddsa implements RFC 8032 Ed25519 signing and verification,
// including the Ed25519ph (prehashed) and Ed25519ctx (context-string)
// variants, on top of the edwards package's filippo.io/edwards25519
// wrappers.
package eddsa

import (
	"crypto/sha512"

	"curvekit.dev/ecc/ecerr"
	"curvekit.dev/ecc/edwards"
)

const (
	// SeedLen is the length of an Ed25519 private key seed.
	SeedLen = 32
	// PublicLen is the length of an encoded Ed25519 public key.
	PublicLen = 32
	// SignatureLen is the length of an encoded Ed25519 signature.
	SignatureLen = 64
)

// expandedKey holds the clamped scalar and nonce prefix derived from a
// 32-byte seed per RFC 8032 §5.1.5.
type expandedKey struct {
	scalar *edwards.Scalar
	prefix [32]byte
}

// expand hashes seed with SHA-512 and splits the digest into a clamped
// scalar (low half) and a nonce-derivation prefix (high half).
func expand(seed []byte) (*expandedKey, error) {
	if len(seed) != SeedLen {
		return nil, ecerr.New(ecerr.InvalidPrivateKey, "seed must be 32 bytes")
	}
	h := sha512.Sum512(seed)

	s := edwards.NewScalar()
	if err := s.SetBytesWithClamping(h[:32]); err != nil {
		return nil, err
	}

	k := &expandedKey{scalar: s}
	copy(k.prefix[:], h[32:])
	return k, nil
}

// publicPoint derives the public point A = s*B from an expanded key.
func (k *expandedKey) publicPoint() *edwards.Point {
	return edwards.NewIdentity().ScalarBaseMult(k.scalar)
}
