// Package alphabet maps nucleotide base characters to small integer indices
// and back, and provides the complement tables used by the reverse-complement
// PWM builder.
package alphabet

import (
	bioalphabet "github.com/biogo/biogo/alphabet"
)

// Base is a small integer index into a PWM row. Indices 0..3 are the four
// canonical nucleotides; 4 ("N") is the catch-all for anything else.
type Base int8

// Canonical base indices, matching the column order every motif format in
// this repository normalizes to: A, C, G, T (or U for RNA motifs).
const (
	A Base = iota
	C
	G
	T
	N // non-standard / ambiguous
)

// NumBases is the number of canonical bases a PWM row scores (A, C, G, T).
const NumBases = 4

// NumRows is the number of rows a PWM carries per position: the four
// canonical bases plus the ambiguity sentinel row.
const NumRows = 5

func (b Base) String() string {
	switch b {
	case A:
		return "A"
	case C:
		return "C"
	case G:
		return "G"
	case T:
		return "T"
	case N:
		return "N"
	default:
		return "?"
	}
}

// index and maskIndex are filled in once by init below; biogo's canonical
// DNA alphabet is only used there to cross-check that its four letters
// map to canonical indices.
var index [256]Base
var maskIndex [256]Base

func init() {
	for i := range index {
		index[i] = N
		maskIndex[i] = N
	}
	set := func(upper, lower byte, b Base) {
		index[upper] = b
		index[lower] = b
		maskIndex[upper] = b
		// Soft-masked (lowercase) bases are routed to the ambiguity index so
		// that a scan in mask mode silently skips repeat-masked windows.
		maskIndex[lower] = N
	}
	set('A', 'a', A)
	set('C', 'c', C)
	set('G', 'g', G)
	set('T', 't', T)
	set('U', 'u', T) // RNA: U behaves as T throughout scoring.

	// Exercise biogo's own canonical DNA alphabet as a cross-check: each of
	// the four canonical letters biogo's DNA alphabet recognizes must
	// resolve to one of our four canonical indices, never to N.
	for _, l := range []bioalphabet.Letter{'A', 'C', 'G', 'T'} {
		if idx := bioalphabet.DNA.IndexOf(l); idx >= 0 {
			if index[byte(l)] == N {
				panic("alphabet: biogo DNA letter not represented in index table: " + string(l))
			}
		}
	}
}

// Index maps a raw sequence byte to its base index, 4 ("N") for anything
// that isn't a recognized nucleotide letter (case-insensitive).
func Index(c byte) Base { return index[c] }

// MaskIndex is like Index, but routes lowercase a/c/g/t/u to the ambiguity
// index, implementing the scanner's soft-mask mode.
func MaskIndex(c byte) Base { return maskIndex[c] }

// complement maps a canonical base index to its Watson-Crick complement.
// The ambiguity index complements to itself.
var complement = [NumRows]Base{T, G, C, A, N}

// Complement returns the Watson-Crick complement of a canonical base index.
func Complement(b Base) Base { return complement[b] }

// complementByte maps an ASCII base character to its complement character,
// preserving case, used when reverse-complementing raw sequence bytes (as
// opposed to PWM rows). Non-ACGTU letters complement to 'N'.
var complementByte [256]byte

func init() {
	for i := range complementByte {
		complementByte[i] = 'N'
	}
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'}, {'U', 'A'},
		{'a', 't'}, {'c', 'g'}, {'g', 'c'}, {'t', 'a'}, {'u', 'a'},
	}
	for _, p := range pairs {
		complementByte[p.a] = p.b
	}
}

// ComplementByte returns the complement of a raw sequence byte, preserving
// case and mapping anything non-ACGTU to 'N'.
func ComplementByte(c byte) byte { return complementByte[c] }

// ReverseComplement writes the reverse complement of src into dst. dst and
// src must have equal length; they may overlap only if they are identical.
func ReverseComplement(dst, src []byte) {
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = ComplementByte(src[n-1-i])
	}
}

// iupacComplement holds the complement of the eleven IUPAC ambiguity codes
// (RYKMSWBDHVN) plus A, C, G, T and U.
var iupacComplement = map[byte]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A', 'U': 'A',
	'R': 'Y', 'Y': 'R', 'K': 'M', 'M': 'K', 'S': 'S', 'W': 'W',
	'B': 'V', 'V': 'B', 'D': 'H', 'H': 'D', 'N': 'N',
}

// IUPACComplement returns the complement of an IUPAC ambiguity code,
// preserving case. Unrecognized bytes complement to 'N'.
func IUPACComplement(c byte) byte {
	upper := c
	lower := false
	if c >= 'a' && c <= 'z' {
		upper = c - ('a' - 'A')
		lower = true
	}
	r, ok := iupacComplement[upper]
	if !ok {
		r = 'N'
	}
	if lower {
		r += 'a' - 'A'
	}
	return r
}
