package ecerr

import (
	"errors"
	"testing"
)

func TestKindStringer(t *testing.T) {
	tests := []struct {
		in   Kind
		want string
	}{
		{InvalidFieldElement, "InvalidFieldElement"},
		{InvalidScalar, "InvalidScalar"},
		{InvalidPoint, "InvalidPoint"},
		{InvalidSignature, "InvalidSignature"},
		{InvalidRecoveryId, "InvalidRecoveryId"},
		{InvalidPrivateKey, "InvalidPrivateKey"},
		{NotASquare, "NotASquare"},
		{EntropyFailure, "EntropyFailure"},
	}

	for i, test := range tests {
		if got := test.in.Error(); got != test.want {
			t.Errorf("#%d: got %s want %s", i, got, test.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := New(InvalidPoint, "compressed point is not on the curve")

	if !errors.Is(err, InvalidPoint) {
		t.Fatal("errors.Is should match the wrapped Kind")
	}
	if errors.Is(err, InvalidScalar) {
		t.Fatal("errors.Is should not match an unrelated Kind")
	}
	if err.Error() != "compressed point is not on the curve" {
		t.Fatalf("unexpected Error() text: %s", err.Error())
	}
}
