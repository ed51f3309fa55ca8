package alphabet

import "testing"

func TestIndexCanonical(t *testing.T) {
	cases := map[byte]Base{
		'A': A, 'a': A,
		'C': C, 'c': C,
		'G': G, 'g': G,
		'T': T, 't': T,
		'U': T, 'u': T,
		'N': N, 'x': N, '-': N,
	}
	for c, want := range cases {
		if got := Index(c); got != want {
			t.Errorf("Index(%q) = %v, want %v", c, got, want)
		}
	}
}

func TestMaskIndexSoftMasksLowercase(t *testing.T) {
	if MaskIndex('a') != N {
		t.Errorf("MaskIndex('a') should route to N in mask mode")
	}
	if MaskIndex('A') != A {
		t.Errorf("MaskIndex('A') should still resolve to A")
	}
}

func TestComplement(t *testing.T) {
	pairs := map[Base]Base{A: T, T: A, C: G, G: C, N: N}
	for b, want := range pairs {
		if got := Complement(b); got != want {
			t.Errorf("Complement(%v) = %v, want %v", b, got, want)
		}
	}
}

func TestReverseComplement(t *testing.T) {
	src := []byte("ACGTACGT")
	dst := make([]byte, len(src))
	ReverseComplement(dst, src)
	want := "ACGTACGT" // palindromic under this pattern
	if string(dst) != want {
		t.Errorf("ReverseComplement(%s) = %s, want %s", src, dst, want)
	}

	src2 := []byte("AAAACGTTTT")
	dst2 := make([]byte, len(src2))
	ReverseComplement(dst2, src2)
	if string(dst2) != "AAAACGTTTT" {
		t.Errorf("ReverseComplement(%s) = %s, want self (palindromic)", src2, dst2)
	}
}

func TestIUPACComplement(t *testing.T) {
	cases := map[byte]byte{'A': 'T', 'R': 'Y', 'B': 'V', 'N': 'N', 'a': 't'}
	for c, want := range cases {
		if got := IUPACComplement(c); got != want {
			t.Errorf("IUPACComplement(%q) = %q, want %q", c, got, want)
		}
	}
}
