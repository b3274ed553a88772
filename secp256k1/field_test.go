package secp256k1

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestFieldElementRoundTrip(t *testing.T) {
	vectors := []string{
		"0000000000000000000000000000000000000000000000000000000000000001",
		"79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
	}
	for _, v := range vectors {
		b := hexBytes(t, v)
		if len(b) != 32 {
			t.Fatalf("test vector %q is not 32 bytes", v)
		}

		var fe FieldElement
		if err := fe.SetB32(b); err != nil {
			t.Fatalf("SetB32(%x): %v", b, err)
		}
		var out [32]byte
		fe.GetB32(out[:])
		if !bytes.Equal(out[:], b) {
			t.Fatalf("round trip mismatch: got %x want %x", out, b)
		}
	}
}

func TestFieldElementRejectsOverflow(t *testing.T) {
	// p itself must be rejected.
	p := hexBytes(t, "FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEFFFFFC2F")
	var fe FieldElement
	if err := fe.SetB32(p); err == nil {
		t.Fatal("expected InvalidFieldElement for p, got nil")
	}

	maxVal := bytes.Repeat([]byte{0xFF}, 32)
	var fe2 FieldElement
	if err := fe2.SetB32(maxVal); err == nil {
		t.Fatal("expected InvalidFieldElement for 2^256-1, got nil")
	}
}

func TestFieldElementAddSubInverse(t *testing.T) {
	var a, b, sum, diff FieldElement
	a.SetInt(12345)
	b.SetInt(6789)

	sum = a
	sum.Add(&b)
	diff = sum
	diff.Sub(&b)
	diff.normalize()
	a.normalize()
	if !diff.Equal(&a) {
		t.Fatal("(a+b)-b != a")
	}
}

func TestFieldElementMulIdentity(t *testing.T) {
	var a, r FieldElement
	a.SetInt(30000)
	r.Mul(&a, &FieldElementOne)
	a.normalize()
	r.normalize()
	if !r.Equal(&a) {
		t.Fatal("a*1 != a")
	}
}

func TestFieldElementInv(t *testing.T) {
	var a, inv, prod FieldElement
	a.SetInt(42)
	inv.Inv(&a)
	prod.Mul(&a, &inv)
	prod.normalize()
	if !prod.Equal(&FieldElementOne) {
		t.Fatalf("a * a^-1 != 1, got %v", prod)
	}
}

func TestFieldElementSqrt(t *testing.T) {
	var a, sq, root FieldElement
	a.SetInt(9)
	sq.Sqr(&a)
	if ok := root.Sqrt(&sq); !ok {
		t.Fatal("expected a square root to exist for a perfect square")
	}
	var check FieldElement
	check.Sqr(&root)
	check.normalize()
	sq.normalize()
	if !check.Equal(&sq) {
		t.Fatal("sqrt(x)^2 != x")
	}
}

func TestFieldElementSqrtNonResidue(t *testing.T) {
	// secp256k1's p ≡ 3 (mod 4), and for any such prime -1 is always a
	// quadratic non-residue, so Sqrt must report failure for it.
	var negOne, root FieldElement
	negOne.Negate(&FieldElementOne, 1)
	negOne.normalize()
	if ok := root.Sqrt(&negOne); ok {
		t.Fatal("-1 must not be a square mod p when p ≡ 3 (mod 4)")
	}
}

func TestFieldElementIsOddIsZero(t *testing.T) {
	var zero, one, two FieldElement
	zero.SetInt(0)
	one.SetInt(1)
	two.SetInt(2)
	if !zero.IsZero() {
		t.Fatal("zero.IsZero() should be true")
	}
	if !one.IsOdd() {
		t.Fatal("one.IsOdd() should be true")
	}
	if two.IsOdd() {
		t.Fatal("two.IsOdd() should be false")
	}
}

func TestFieldElementCondSelect(t *testing.T) {
	var a, b, r FieldElement
	a.SetInt(1)
	b.SetInt(2)

	r = a
	r.CondSelect(&b, 0)
	r.normalize()
	a.normalize()
	if !r.Equal(&a) {
		t.Fatal("CondSelect with flag=0 should leave r unchanged")
	}

	r = a
	r.CondSelect(&b, 1)
	r.normalize()
	b.normalize()
	if !r.Equal(&b) {
		t.Fatal("CondSelect with flag=1 should overwrite r with b")
	}
}

func TestBatchInverse(t *testing.T) {
	in := make([]FieldElement, 4)
	for i := range in {
		in[i].SetInt(i + 1)
	}
	out := make([]FieldElement, 4)
	BatchInverse(out, in)

	for i := range in {
		var prod FieldElement
		prod.Mul(&in[i], &out[i])
		prod.normalize()
		if !prod.Equal(&FieldElementOne) {
			t.Fatalf("element %d: a*BatchInverse(a) != 1", i)
		}
	}
}
