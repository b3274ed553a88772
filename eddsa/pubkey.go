package eddsa

// DerivePublicKey computes the 32-byte encoded public key for a 32-byte
// private key seed.
func DerivePublicKey(seed []byte) ([]byte, error) {
	k, err := expand(seed)
	if err != nil {
		return nil, err
	}
	return k.publicPoint().Encode(), nil
}
