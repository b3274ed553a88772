package ecdsa

import (
	"curvekit.dev/ecc/curve"
	"curvekit.dev/ecc/nist"
)

// nistOps is the minimal dispatch surface ecdsa needs from one of the four
// concrete nistec-backed point types, resolved once per curve ID so the
// sign/verify code below never has to branch on which NIST curve it's
// working with.
type nistOps struct {
	desc           *nist.Descriptor
	scalarBaseMult func(scalar []byte) ([]byte, error)
	scalarMult     func(pointBytes, scalar []byte) ([]byte, error)
	add            func(aBytes, bBytes []byte) ([]byte, error)
}

func nistOpsFor(id curve.ID) (*nistOps, bool) {
	switch id {
	case curve.P224:
		return buildNistOps(nist.P224(), nist.NewP224Point, nist.NewP224Point), true
	case curve.P256:
		return buildNistOps(nist.P256(), nist.NewP256Point, nist.NewP256Point), true
	case curve.P384:
		return buildNistOps(nist.P384(), nist.NewP384Point, nist.NewP384Point), true
	case curve.P521:
		return buildNistOps(nist.P521(), nist.NewP521Point, nist.NewP521Point), true
	default:
		return nil, false
	}
}

// point is the common shape every nist.PxxxPoint type has (they're all
// instantiations of the same generic nist.Point[T, PT]).
type point[P any] interface {
	SetBytes([]byte) error
	Bytes() []byte
	BytesCompressed() []byte
	ScalarBaseMult([]byte) error
	ScalarMult(P, []byte) error
	Add(P, P) P
}

func buildNistOps[P point[P]](d *nist.Descriptor, newPoint func() P, newPoint2 func() P) *nistOps {
	return &nistOps{
		desc: d,
		scalarBaseMult: func(scalar []byte) ([]byte, error) {
			p := newPoint()
			if err := p.ScalarBaseMult(scalar); err != nil {
				return nil, err
			}
			return p.Bytes(), nil
		},
		scalarMult: func(pointBytes, scalar []byte) ([]byte, error) {
			base := newPoint()
			if err := base.SetBytes(pointBytes); err != nil {
				return nil, err
			}
			out := newPoint2()
			if err := out.ScalarMult(base, scalar); err != nil {
				return nil, err
			}
			return out.Bytes(), nil
		},
		add: func(aBytes, bBytes []byte) ([]byte, error) {
			a := newPoint()
			if err := a.SetBytes(aBytes); err != nil {
				return nil, err
			}
			b := newPoint2()
			if err := b.SetBytes(bBytes); err != nil {
				return nil, err
			}
			out := a.Add(a, b)
			return out.Bytes(), nil
		},
	}
}
