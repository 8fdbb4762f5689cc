package validate

import "testing"

func TestRequired(t *testing.T) {
	if Required("") || Required(" \t") {
		t.Fatalf("blank values must not pass Required")
	}
	if !Required(" USD ") {
		t.Fatalf("non-blank value must pass Required")
	}
}

func TestOneOfFold(t *testing.T) {
	if !OneOfFold("DESC", "asc", "desc") {
		t.Fatalf("expected case-insensitive match")
	}
	if OneOfFold("up", "asc", "desc") || OneOfFold("asc") {
		t.Fatalf("unexpected match")
	}
}

func TestIntBounds(t *testing.T) {
	zero, negative, one := 0, -1, 1
	if !NonNegative(nil) || !NonNegative(&zero) || NonNegative(&negative) {
		t.Fatalf("unexpected NonNegative result")
	}
	if !Positive(nil) || !Positive(&one) || Positive(&zero) {
		t.Fatalf("unexpected Positive result")
	}
}
