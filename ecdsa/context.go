package ecdsa

import (
	"sync"

	"curvekit.dev/ecc/secp256k1"
)

// secp256k1Ctx is the process-wide blinded fixed-base context used for
// every secp256k1 secret-scalar G-multiplication this package performs:
// RFC 6979 nonce*G during signing, and priv*G during public-key
// derivation. Built once, lazily, from crypto/rand entropy via
// secp256k1.NewContext, matching spec.md §3/§4.E's scalar-blinding
// requirement — the bare package-level secp256k1.Mul deliberately stays
// unblinded for tests and non-secret uses.
var (
	secp256k1CtxOnce sync.Once
	secp256k1Ctx     *secp256k1.Context
	secp256k1CtxErr  error
)

func getSecp256k1Context() (*secp256k1.Context, error) {
	secp256k1CtxOnce.Do(func() {
		secp256k1Ctx, secp256k1CtxErr = secp256k1.NewContext()
	})
	return secp256k1Ctx, secp256k1CtxErr
}
