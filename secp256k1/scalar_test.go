package secp256k1

import (
	"bytes"
	"testing"
)

func TestScalarRoundTrip(t *testing.T) {
	var s Scalar
	s.SetInt(123456789)
	var buf [32]byte
	s.GetB32(buf[:])

	var s2 Scalar
	overflow, err := s2.SetB32(buf[:])
	if err != nil {
		t.Fatalf("SetB32: %v", err)
	}
	if overflow {
		t.Fatal("unexpected overflow for a small scalar")
	}
	if !s.Equal(&s2) {
		t.Fatal("round trip mismatch")
	}
}

func TestScalarRejectsOverflow(t *testing.T) {
	// n itself must reduce to 0 and report overflow.
	nBytes := []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFE,
		0xBA, 0xAE, 0xDC, 0xE6, 0xAF, 0x48, 0xA0, 0x3B,
		0xBF, 0xD2, 0x5E, 0x8C, 0xD0, 0x36, 0x41, 0x41,
	}
	var s Scalar
	overflow, err := s.SetB32(nBytes)
	if err != nil {
		t.Fatalf("SetB32(n): %v", err)
	}
	if !overflow {
		t.Fatal("expected SetB32(n) to report overflow")
	}
	if !s.IsZero() {
		t.Fatal("n mod n must be zero")
	}
}

func TestScalarSetB32KeyRejectsZero(t *testing.T) {
	var s Scalar
	var zero [32]byte
	if err := s.SetB32Key(zero[:]); err == nil {
		t.Fatal("expected the zero scalar to be rejected as a private key")
	}
}

func TestScalarAddSubInverse(t *testing.T) {
	var a, b, sum, diff Scalar
	a.SetInt(999999937)
	b.SetInt(314159265)

	sum.Add(&a, &b)
	diff.Sub(&sum, &b)
	if !diff.Equal(&a) {
		t.Fatal("(a+b)-b != a")
	}
}

func TestScalarMulInv(t *testing.T) {
	var a, inv, prod Scalar
	a.SetInt(17)
	inv.Inv(&a)
	prod.Mul(&a, &inv)
	if !prod.Equal(&ScalarOne) {
		t.Fatal("a * a^-1 != 1")
	}
}

func TestScalarHalf(t *testing.T) {
	var a, half, doubled Scalar
	a.SetInt(10)
	half.Half(&a)
	doubled.Add(&half, &half)
	if !doubled.Equal(&a) {
		t.Fatal("2*(a/2) != a")
	}

	var odd, halfOdd, doubledOdd Scalar
	odd.SetInt(11)
	halfOdd.Half(&odd)
	doubledOdd.Add(&halfOdd, &halfOdd)
	if !doubledOdd.Equal(&odd) {
		t.Fatal("2*(a/2) != a for odd a")
	}
}

func TestScalarIsHigh(t *testing.T) {
	if ScalarOne.IsHigh() {
		t.Fatal("1 must not be high")
	}
	nMinusOne := Scalar{d: [4]uint64{scalarN0 - 1, scalarN1, scalarN2, scalarN3}}
	if !nMinusOne.IsHigh() {
		t.Fatal("n-1 must be high")
	}
}

func TestScalarGetBits(t *testing.T) {
	var s Scalar
	s.SetInt(0xABCD)
	if got := s.GetBits(0, 16); got != 0xABCD {
		t.Fatalf("GetBits(0,16) = %x, want ABCD", got)
	}
	if got := s.GetBits(4, 12); got != 0x0ABC {
		t.Fatalf("GetBits(4,12) = %x, want 0ABC", got)
	}
}

func TestScalarNAFReconstructs(t *testing.T) {
	var s Scalar
	s.SetInt(987654321)

	digits := s.NAF(5)

	var sum Scalar
	var pow Scalar
	pow.SetInt(1)
	for _, d := range digits {
		if d != 0 {
			var term Scalar
			if d >= 0 {
				term.SetInt(uint64(d))
			} else {
				var neg Scalar
				neg.SetInt(uint64(-d))
				term.Negate(&neg)
			}
			term.Mul(&term, &pow)
			sum.Add(&sum, &term)
		}
		pow.Add(&pow, &pow)
	}

	if !sum.Equal(&s) {
		t.Fatal("NAF digits did not reconstruct the original scalar")
	}
}

func TestMul512MatchesMul(t *testing.T) {
	var a, b, viaReduce Scalar
	a.SetInt(123456789)
	b.SetInt(987654321)
	viaReduce.Mul(&a, &b)

	var wide [8]uint64
	Mul512(&wide, &a, &b)
	var viaWide Scalar
	viaWide.reduceWide(wide)

	if !viaWide.Equal(&viaReduce) {
		t.Fatal("reduceWide(Mul512(a,b)) != Mul(a,b)")
	}
}

func TestScalarClear(t *testing.T) {
	var s Scalar
	s.SetInt(42)
	s.Clear()
	if !s.IsZero() {
		t.Fatal("Clear should zero the scalar")
	}
}

func TestScalarCondSelect(t *testing.T) {
	var a, b, r Scalar
	a.SetInt(1)
	b.SetInt(2)

	r = a
	r.CondSelect(&b, 0)
	if !r.Equal(&a) {
		t.Fatal("CondSelect flag=0 should leave r unchanged")
	}
	r = a
	r.CondSelect(&b, 1)
	if !r.Equal(&b) {
		t.Fatal("CondSelect flag=1 should overwrite r")
	}
}

func TestScalarBytesBE(t *testing.T) {
	var s Scalar
	s.SetInt(0x0102030405060708)
	var buf [32]byte
	s.GetB32(buf[:])
	if !bytes.Equal(buf[24:], []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Fatalf("unexpected big-endian encoding: %x", buf)
	}
}
