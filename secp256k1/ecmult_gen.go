package secp256k1

import (
	"sync"

	"curvekit.dev/ecc/ecerr"
)

const (
	genWindowBits = 4
	genDigits     = 64 // 256 bits / 4 bits per digit
	genTableSize  = 1 << genWindowBits
)

// GenContext holds the precomputed comb table and blinding scalar used for
// constant-time fixed-base (k*G) scalar multiplication. Table construction
// operates only on the public generator point and is not secret-dependent;
// the blinding scalar is what keeps a per-multiply secret k from leaving a
// timing/cache footprint tied to its value.
type GenContext struct {
	table   [genDigits][genTableSize]AffinePoint
	blind   Scalar
	initial JacobianPoint
	built   bool
}

// NewGenContext builds a fresh, unblinded comb table. Call Randomize
// afterward to install a blinding scalar derived from caller entropy.
func NewGenContext() *GenContext {
	c := &GenContext{}
	c.initial.SetInfinity()
	c.build()
	return c
}

func (c *GenContext) build() {
	base := Generator
	for i := 0; i < genDigits; i++ {
		c.table[i][0].SetInfinity()

		var baseJac JacobianPoint
		baseJac.SetAffine(&base)
		var accJac JacobianPoint
		accJac = baseJac
		c.table[i][1] = base
		for d := 2; d < genTableSize; d++ {
			accJac.AddAffine(&accJac, &base)
			var aff AffinePoint
			aff.SetJacobian(&accJac)
			c.table[i][d] = aff
		}

		// Advance base to 16 * base (i.e. base shifted up by one 4-bit digit).
		var next JacobianPoint
		next.SetAffine(&base)
		for b := 0; b < genWindowBits; b++ {
			next.Double(&next)
		}
		base.SetJacobian(&next)
	}
	c.built = true
}

// Randomize installs a blinding scalar derived from a 32-byte seed. The
// context remains safe to use concurrently for Mul only after this call
// completes; callers typically randomize once at startup and again
// whenever fresh entropy becomes available.
func (c *GenContext) Randomize(seed []byte) error {
	if len(seed) != 32 {
		return ecerr.New(ecerr.EntropyFailure, "blinding seed must be 32 bytes")
	}
	var blind Scalar
	if _, err := blind.SetB32(seed); err != nil {
		return err
	}
	c.blind = blind

	var initial JacobianPoint
	ConstMul(&initial, &Generator, &blind)
	c.initial = initial
	return nil
}

// Mul sets r = gn*G using the constant-time comb table, correcting for
// blinding. Safe to call with a secret gn.
func (c *GenContext) Mul(r *JacobianPoint, gn *Scalar) {
	if !c.built {
		c.build()
	}

	var masked Scalar
	masked.Sub(gn, &c.blind)

	r.SetInfinity()
	for i := 0; i < genDigits; i++ {
		digit := masked.GetBits(uint(i*genWindowBits), genWindowBits)

		sel := c.table[i][0]
		for d := 1; d < genTableSize; d++ {
			flag := 0
			if int(digit) == d {
				flag = 1
			}
			sel.x.CondSelect(&c.table[i][d].x, flag)
			sel.y.CondSelect(&c.table[i][d].y, flag)
			if flag == 1 {
				sel.infinity = false
			}
		}
		if digit == 0 {
			sel.infinity = true
		}

		r.AddAffine(r, &sel)
	}

	r.AddVar(r, &c.initial)
}

// Mul computes r = gn*G using a process-wide default context. Prefer a
// dedicated GenContext (randomized with caller entropy) for production
// signing paths; this is convenient for tests and one-off computations.
func Mul(r *JacobianPoint, gn *Scalar) {
	defaultGenOnce.Do(func() { defaultGenContext = NewGenContext() })
	defaultGenContext.Mul(r, gn)
}

// defaultGenContext is built on first use rather than at package
// initialization, since Generator is only set by group.go's init.
var (
	defaultGenOnce    sync.Once
	defaultGenContext *GenContext
)
