package nist

// Context is a thin per-curve handle that exists for API symmetry with the
// secp256k1 package's Context. nistec's ScalarMult/ScalarBaseMult are
// already constant-time with respect to the scalar, so unlike secp256k1's
// hand-rolled comb there is no precomputed table to (re)randomize here;
// Randomize is a no-op retained so callers can treat every curve's context
// uniformly through the registry in package curve.
type Context struct {
	Descriptor *Descriptor
}

// NewContext returns a Context for d.
func NewContext(d *Descriptor) *Context {
	return &Context{Descriptor: d}
}

// Randomize is a no-op for NIST curves; see the type comment.
func (c *Context) Randomize(seed []byte) error {
	return nil
}
