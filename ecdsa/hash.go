package ecdsa

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	minioSha256 "github.com/minio/sha256-simd"

	"curvekit.dev/ecc/curve"
)

// nonceHash selects the hash function RFC 6979's HMAC-DRBG is built on for
// a given curve, matching the conventional curve/hash pairing (P-224/
// SHA-224, P-256 and secp256k1/SHA-256, P-384/SHA-384, P-521/SHA-512): the
// DRBG's natural output size then covers each curve's qlen without
// truncation padding. P-256 and secp256k1 use the SIMD-accelerated SHA-256
// implementation the teacher already depended on; the others use the
// stdlib implementation (no SIMD variant exists for them in this module's
// dependency set).
func nonceHash(id curve.ID) func() hash.Hash {
	switch id {
	case curve.P224:
		return sha256.New224
	case curve.P256, curve.SECP256K1:
		return func() hash.Hash { return minioSha256.New() }
	case curve.P384:
		return sha512.New384
	case curve.P521:
		return sha512.New
	default:
		return func() hash.Hash { return minioSha256.New() }
	}
}
