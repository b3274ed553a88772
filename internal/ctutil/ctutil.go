// Package ctutil holds the constant-time primitives shared by the
// secp256k1 and nist packages: mask-based conditional select/negate and
// optimizer-proof secret wiping. Every operation reachable from a
// secret-key code path is expected to be built out of these instead of an
// ordinary Go if/else over secret data.
package ctutil

import "runtime"

// Select64 returns a if mask == 1, or b if mask == 0, without branching on
// mask. mask must be exactly 0 or 1; any other value produces a nonsense
// result silently (callers control mask, it is never attacker data).
func Select64(mask, a, b uint64) uint64 {
	m := -mask
	return (m & a) | (^m & b)
}

// SelectInt is Select64 for the common "pick one of two ints" case used by
// table lookups over a signed digit window.
func SelectInt(mask int, a, b int) int {
	m := -int64(mask)
	return int((m & int64(a)) | (^m & int64(b)))
}

// Zeroize overwrites b with zeros in a way the compiler cannot prove is
// dead and therefore cannot elide, mirroring secp256k1_memclear_explicit.
func Zeroize(b []byte) {
	if len(b) == 0 {
		return
	}
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroizeUint64 clears a limb slice used by field/scalar representations.
func ZeroizeUint64(limbs []uint64) {
	if len(limbs) == 0 {
		return
	}
	for i := range limbs {
		limbs[i] = 0
	}
	runtime.KeepAlive(limbs)
}
