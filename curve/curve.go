// Package curve is the component-H registry: a stable identifier and
// descriptor for every curve this module supports, used by the ecdsa and
// eddsa packages to dispatch to the right backend (secp256k1, nist, or
// edwards) without every caller needing to import all three.
package curve

import (
	"math/big"

	"curvekit.dev/ecc/nist"
)

// ID names a supported curve.
type ID string

const (
	P224      ID = "P224"
	P256      ID = "P256"
	P384      ID = "P384"
	P521      ID = "P521"
	SECP256K1 ID = "SECP256K1"
	ED25519   ID = "ED25519"
)

// Descriptor carries the fixed public parameters of a curve.
type Descriptor struct {
	ID           ID
	Name         string
	PrivateLen   int // byte length of a private key / scalar encoding
	SignatureLen int // byte length of a fixed-size (r||s or R||S) signature, 0 if variable (DER)
	IsEdwards    bool
	Nist         *nist.Descriptor // non-nil for P224/P256/P384/P521
	Order        *big.Int         // group order n (secp256k1 and the NIST curves; nil for ED25519, use edwards internals)
}

var registry = map[ID]*Descriptor{
	P224: {ID: P224, Name: "P-224", PrivateLen: 28, SignatureLen: 56, Nist: nist.P224(), Order: nist.P224().N},
	P256: {ID: P256, Name: "P-256", PrivateLen: 32, SignatureLen: 64, Nist: nist.P256(), Order: nist.P256().N},
	P384: {ID: P384, Name: "P-384", PrivateLen: 48, SignatureLen: 96, Nist: nist.P384(), Order: nist.P384().N},
	P521: {ID: P521, Name: "P-521", PrivateLen: 66, SignatureLen: 132, Nist: nist.P521(), Order: nist.P521().N},
	SECP256K1: {
		ID: SECP256K1, Name: "secp256k1", PrivateLen: 32, SignatureLen: 64,
		Order: secp256k1Order(),
	},
	ED25519: {ID: ED25519, Name: "Ed25519", PrivateLen: 32, SignatureLen: 64, IsEdwards: true},
}

func secp256k1Order() *big.Int {
	n, _ := new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)
	return n
}

// Get looks up a curve descriptor by ID.
func Get(id ID) (*Descriptor, bool) {
	d, ok := registry[id]
	return d, ok
}

// All returns every supported curve ID, in a stable order.
func All() []ID {
	return []ID{P224, P256, P384, P521, SECP256K1, ED25519}
}
