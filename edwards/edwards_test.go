package edwards

import "testing"

func TestIdentityEncodeDecode(t *testing.T) {
	id := NewIdentity()
	enc := id.Encode()
	if len(enc) != 32 {
		t.Fatalf("encoded identity length = %d, want 32", len(enc))
	}

	var decoded Point
	if err := decoded.Decode(enc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(id) {
		t.Fatal("decode(encode(identity)) != identity")
	}
}

func TestGeneratorScalarMultIdentity(t *testing.T) {
	zero := NewScalar()

	g := NewGenerator()
	var viaMult Point
	viaMult.ScalarMult(zero, g)
	if !viaMult.Equal(NewIdentity()) {
		t.Fatal("0 * G must be the identity")
	}
}

func TestScalarBaseMultMatchesScalarMult(t *testing.T) {
	s := NewScalar()
	if err := s.SetUniformBytes(make([]byte, 64)); err != nil {
		t.Fatalf("SetUniformBytes: %v", err)
	}
	// All-zero uniform input reduces to the zero scalar; use a nonzero
	// clamped scalar derived the same way EdDSA signing does instead.
	seed := make([]byte, 32)
	seed[0] = 0x01
	clamped := NewScalar()
	if err := clamped.SetBytesWithClamping(seed); err != nil {
		t.Fatalf("SetBytesWithClamping: %v", err)
	}

	var viaBase, viaGeneric Point
	viaBase.ScalarBaseMult(clamped)
	g := NewGenerator()
	viaGeneric.ScalarMult(clamped, g)

	if !viaBase.Equal(&viaGeneric) {
		t.Fatal("ScalarBaseMult(s) != ScalarMult(s, B)")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := NewGenerator()
	enc := g.Encode()

	var decoded Point
	if err := decoded.Decode(enc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(g) {
		t.Fatal("decode(encode(G)) != G")
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	var p Point
	if err := p.Decode(make([]byte, 31)); err == nil {
		t.Fatal("expected an error for a 31-byte encoding")
	}
	if err := p.Decode(make([]byte, 33)); err == nil {
		t.Fatal("expected an error for a 33-byte encoding")
	}
}

func TestMultByCofactorOfIdentity(t *testing.T) {
	id := NewIdentity()
	var eight Point
	eight.MultByCofactor(id)
	if !eight.Equal(id) {
		t.Fatal("8 * identity must still be the identity")
	}
}

func TestScalarAddNegateRoundTrip(t *testing.T) {
	a := NewScalar()
	seed := make([]byte, 32)
	seed[0] = 0x02
	if err := a.SetBytesWithClamping(seed); err != nil {
		t.Fatalf("SetBytesWithClamping: %v", err)
	}

	neg := NewScalar()
	neg.Negate(a)

	sum := NewScalar()
	sum.Add(a, neg)

	if sum.Bytes()[0] != 0 {
		t.Fatalf("a + (-a) should be zero, got first byte %x", sum.Bytes()[0])
	}
	for _, b := range sum.Bytes() {
		if b != 0 {
			t.Fatal("a + (-a) should encode as all-zero bytes")
		}
	}
}
