// Package nist adapts filippo.io/nistec's P-224/P-256/P-384/P-521 point
// arithmetic, plus a math/big-backed scalar field, into the generic
// curve interface this module exposes across all six supported curves.
package nist

import (
	"crypto/elliptic"
	"math/big"
)

// Descriptor names the fixed parameters of one NIST prime curve.
type Descriptor struct {
	Name      string
	ByteLen   int
	N         *big.Int // group order
	P         *big.Int // field prime
	curveForN elliptic.Curve
}

var (
	p224 = buildDescriptor("P224", elliptic.P224(), 28)
	p256 = buildDescriptor("P256", elliptic.P256(), 32)
	p384 = buildDescriptor("P384", elliptic.P384(), 48)
	p521 = buildDescriptor("P521", elliptic.P521(), 66)
)

func buildDescriptor(name string, c elliptic.Curve, byteLen int) *Descriptor {
	return &Descriptor{
		Name:      name,
		ByteLen:   byteLen,
		N:         c.Params().N,
		P:         c.Params().P,
		curveForN: c,
	}
}

// P224 returns the P-224 descriptor.
func P224() *Descriptor { return p224 }

// P256 returns the P-256 descriptor.
func P256() *Descriptor { return p256 }

// P384 returns the P-384 descriptor.
func P384() *Descriptor { return p384 }

// P521 returns the P-521 descriptor.
func P521() *Descriptor { return p521 }
