// Package ecdsa implements RFC 6979 deterministic ECDSA signing and
// verification across every curve registered in package curve except
// Ed25519, plus public-key recovery for secp256k1 and the NIST curves and the low-S
// normalization convention used throughout this module.
package ecdsa

import (
	"crypto/hmac"
	"hash"
)

// drbg is an RFC 6979 HMAC-DRBG: deterministic, reseedable only by
// restarting with a longer message (never done here), used to derive a
// per-signature nonce from (private key, message hash) so the same input
// always produces the same signature, eliminating the nonce-reuse failure
// mode that plagues externally-supplied randomness.
type drbg struct {
	newHash func() hash.Hash
	k, v    []byte
	size    int
}

// newDRBG seeds a DRBG per RFC 6979 §3.2 steps a-h, where key is the
// private key encoding concatenated with the message hash (and, for this
// module's extension, optional extra entropy appended after the hash).
func newDRBG(newHash func() hash.Hash, key []byte) *drbg {
	size := newHash().Size()
	d := &drbg{newHash: newHash, size: size}

	d.v = make([]byte, size)
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.k = make([]byte, size)

	mac := hmac.New(newHash, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x00})
	mac.Write(key)
	d.k = mac.Sum(nil)

	mac = hmac.New(newHash, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)

	mac = hmac.New(newHash, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x01})
	mac.Write(key)
	d.k = mac.Sum(nil)

	mac = hmac.New(newHash, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)

	return d
}

// generate fills out with DRBG output, calling HMAC as many times as
// needed (out may be longer than one hash block, as for P-521's 66-byte
// qlen against a 48 or 64-byte hash).
func (d *drbg) generate(out []byte) {
	pos := 0
	for pos < len(out) {
		mac := hmac.New(d.newHash, d.k)
		mac.Write(d.v)
		d.v = mac.Sum(nil)
		n := copy(out[pos:], d.v)
		pos += n
	}
}

// reseed runs RFC 6979's "k = HMAC_K(V || 0x00); V = HMAC_K(V)" retry step,
// used when a generated candidate nonce fell outside [1, N-1].
func (d *drbg) reseed() {
	mac := hmac.New(d.newHash, d.k)
	mac.Write(d.v)
	mac.Write([]byte{0x00})
	d.k = mac.Sum(nil)

	mac = hmac.New(d.newHash, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(nil)
}
