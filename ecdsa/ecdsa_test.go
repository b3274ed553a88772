package ecdsa

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"testing"

	"curvekit.dev/ecc/curve"
)

func hb(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestSignVerifyRoundTripSecp256k1(t *testing.T) {
	priv := hb(t, "cc524c2fe62cc8b820bc830890bedd623d3a836dce22517023bcda4f1c5c756e")
	msg := hb(t, "fa09ee3d85c4938e098fbbf6a4f761a0537e465f610b7873fb264306c37b336c")

	pub, err := DerivePublicKey(curve.SECP256K1, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}

	sig, err := Sign(curve.SECP256K1, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(curve.SECP256K1, pub, msg, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify should accept a freshly produced signature")
	}

	// Low-S normalization: S must never exceed n/2.
	half := new(big.Int).SetBytes(hb(t, "7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0"))
	if sig.S.Cmp(half) > 0 {
		t.Fatalf("signature S exceeds n/2: %x", sig.S.Bytes())
	}
}

func TestSignVerifyRoundTripP224(t *testing.T) {
	priv := bytes.Repeat([]byte{0xab}, 28)
	msg := bytes.Repeat([]byte{0xcd}, 28)

	pub, err := DerivePublicKey(curve.P224, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}

	sig, err := Sign(curve.P224, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(curve.P224, pub, msg, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify should accept a freshly produced P-224 signature")
	}

	recovered, err := Recover(curve.P224, msg, sig)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !bytes.Equal(recovered, pub) {
		t.Fatalf("recovered pubkey = %x, want %x", recovered, pub)
	}
}

func TestSignVerifyRoundTripP384(t *testing.T) {
	priv := bytes.Repeat([]byte{0xab}, 48)
	msg := bytes.Repeat([]byte{0xcd}, 48)

	pub, err := DerivePublicKey(curve.P384, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}

	sig, err := Sign(curve.P384, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := Verify(curve.P384, pub, msg, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify should accept a freshly produced P-384 signature")
	}

	recovered, err := Recover(curve.P384, msg, sig)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !bytes.Equal(recovered, pub) {
		t.Fatalf("recovered pubkey = %x, want %x", recovered, pub)
	}
}

func TestSignVerifyRoundTripP256(t *testing.T) {
	priv := hb(t, "43f729cc1d9494feb28c1e1d36dbcddfdcd717988d51da888feabc9e55e171b8")
	msg := hb(t, "51890598bff4a6468635e8d1903edc7e9bf4eba756e97f3ca01a2ca9365404ae")

	pub, err := DerivePublicKey(curve.P256, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}
	wantPub := hb(t, "03802b0dc263d91bc5831b9efcc2b50e5bb5d902bd67a404f7b752db3eedeb39bf")
	// wantPub is the compressed form; pub here is SEC1-uncompressed (0x04||X||Y).
	if !bytes.Equal(pub[1:1+32], wantPub[1:]) {
		t.Fatalf("derived public key X mismatch: got %x want %x", pub[1:33], wantPub[1:])
	}

	sig, err := Sign(curve.P256, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := Verify(curve.P256, pub, msg, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("Verify should accept a freshly produced P-256 signature")
	}
}

func TestVerifyRejectsBitFlips(t *testing.T) {
	priv := hb(t, "cc524c2fe62cc8b820bc830890bedd623d3a836dce22517023bcda4f1c5c756e")
	msg := hb(t, "fa09ee3d85c4938e098fbbf6a4f761a0537e465f610b7873fb264306c37b336c")

	pub, err := DerivePublicKey(curve.SECP256K1, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}
	sig, err := Sign(curve.SECP256K1, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	flippedMsg := make([]byte, len(msg))
	copy(flippedMsg, msg)
	flippedMsg[0] ^= 0x01
	if ok, _ := Verify(curve.SECP256K1, pub, flippedMsg, sig); ok {
		t.Fatal("Verify must reject a tampered message")
	}

	flippedPub := make([]byte, len(pub))
	copy(flippedPub, pub)
	flippedPub[len(flippedPub)-1] ^= 0x01
	if ok, err := Verify(curve.SECP256K1, flippedPub, msg, sig); ok && err == nil {
		t.Fatal("Verify must reject a tampered public key")
	}
}

func TestRecoverMatchesPubkey(t *testing.T) {
	priv := hb(t, "cc524c2fe62cc8b820bc830890bedd623d3a836dce22517023bcda4f1c5c756e")
	msg := hb(t, "fa09ee3d85c4938e098fbbf6a4f761a0537e465f610b7873fb264306c37b336c")

	pub, err := DerivePublicKey(curve.SECP256K1, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}
	sig, err := Sign(curve.SECP256K1, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	recovered, err := Recover(curve.SECP256K1, msg, sig)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !bytes.Equal(recovered, pub) {
		t.Fatalf("recovered pubkey = %x, want %x", recovered, pub)
	}
}

func TestSignRejectsWrongLengthKey(t *testing.T) {
	if _, err := Sign(curve.SECP256K1, []byte{1, 2, 3}, make([]byte, 32)); err == nil {
		t.Fatal("expected an error for a malformed private key length")
	}
}

func TestRecoverRejectsBadID(t *testing.T) {
	sig := &Signature{R: big.NewInt(1), S: big.NewInt(1), RecoveryID: 9}
	if _, err := Recover(curve.SECP256K1, make([]byte, 32), sig); err == nil {
		t.Fatal("expected InvalidRecoveryId for an out-of-range recovery id")
	}
}

func TestRecoverMatchesPubkeyP256(t *testing.T) {
	priv := hb(t, "43f729cc1d9494feb28c1e1d36dbcddfdcd717988d51da888feabc9e55e171b8")
	msg := hb(t, "51890598bff4a6468635e8d1903edc7e9bf4eba756e97f3ca01a2ca9365404ae")

	pub, err := DerivePublicKey(curve.P256, priv)
	if err != nil {
		t.Fatalf("DerivePublicKey: %v", err)
	}
	sig, err := Sign(curve.P256, priv, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	recovered, err := Recover(curve.P256, msg, sig)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if !bytes.Equal(recovered, pub) {
		t.Fatalf("recovered pubkey = %x, want %x", recovered, pub)
	}
}
