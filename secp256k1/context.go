package secp256k1

import "crypto/rand"

// Context bundles the precomputed fixed-base comb table and its blinding
// scalar. One Context is meant to be built once per process (or per
// long-lived signer) and reused; Randomize should be called with fresh
// entropy whenever the caller can provide it, rotating the blind without
// changing any public precomputed table entries.
type Context struct {
	gen *GenContext
}

// NewContext builds a Context with an unblinded comb table, then
// immediately randomizes it using crypto/rand.
func NewContext() (*Context, error) {
	c := &Context{gen: NewGenContext()}
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	if err := c.gen.Randomize(seed[:]); err != nil {
		return nil, err
	}
	return c, nil
}

// Randomize rotates the blinding scalar using caller-supplied entropy.
func (c *Context) Randomize(seed []byte) error {
	return c.gen.Randomize(seed)
}

// MulGen sets r = k*G using the constant-time blinded comb table.
func (c *Context) MulGen(r *JacobianPoint, k *Scalar) {
	c.gen.Mul(r, k)
}
