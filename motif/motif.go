// Package motif parses MEME, HOMER, JASPAR, and HOCOMOCO PCM motif
// descriptions and converts them into integer log-odds position weight
// matrices (PWMs) suitable for the scan package's inner loop.
package motif

import (
	"math"

	"github.com/yamscan/yamscan/alphabet"
)

const (
	// MaxLen is the largest number of positions a motif may have.
	MaxLen = 50
	// MaxNameLen is the largest number of characters a motif name may have
	// before dedup/truncation accounting runs out of room.
	MaxNameLen = 256
	// AmbiguitySentinel is the per-position score assigned to the "any
	// non-standard base" row. It is large enough in magnitude that a single
	// non-ACGTU base in a window drives the window's total score far below
	// any threshold reachable at a realistic p-value, while staying well
	// clear of signed-32-bit overflow even summed over MaxLen positions.
	AmbiguitySentinel int32 = -10_000_000
	// MinBackground is the smallest probability mass a background
	// component may carry; smaller values are clamped up before
	// normalization.
	MinBackground = 0.001
	// DefaultNSites is the nominal number of sites used to convert
	// probabilities to pseudocount-adjusted log-odds scores when a motif
	// file does not declare its own site count.
	DefaultNSites = 1000
	// DefaultPseudocount is the pseudocount added across the four bases
	// when no override is supplied.
	DefaultPseudocount = 0.1
	// MaxCDFSize bounds the score-distribution engine's working array; a
	// motif whose L*(max-min)+1 exceeds this is rejected as intractable.
	MaxCDFSize = 2097152
)

// Background is a four-component nucleotide background distribution in
// A, C, G, T order.
type Background [alphabet.NumBases]float64

// UniformBackground is used when neither the user nor the motif file
// supplies one.
var UniformBackground = Background{0.25, 0.25, 0.25, 0.25}

// Normalize clamps every component to at least MinBackground and rescales
// so the four components sum to 1.
func (b *Background) Normalize() {
	sum := 0.0
	for i := range b {
		if b[i] < MinBackground {
			b[i] = MinBackground
		}
		sum += b[i]
	}
	for i := range b {
		b[i] /= sum
	}
}

// Motif is a named, fixed-width PWM together with the forward and
// reverse-complement score rows and the information the score-distribution
// engine and scanner need. Most fields other than Name, Size, PWM and PWMRC
// are populated by the scoredist package once a target p-value is known.
type Motif struct {
	Name     string
	FileLine int

	// Background is the nucleotide distribution this motif's PWM was
	// built against (the motif file's declared background if it had
	// one, otherwise the caller's -b value or UniformBackground).
	// scoredist.Build must score this motif's CDF against the same
	// distribution or its thresholds and p-values won't match the PWM.
	Background Background

	// Size is the number of positions, L.
	Size int

	// PWM and PWMRC are [Size][5]int32 score tables; column 4 is the
	// ambiguity sentinel row, pinned to AmbiguitySentinel and never
	// modified after construction.
	PWM   [][5]int32
	PWMRC [][5]int32

	// Min and Max are the smallest/largest per-position score across A,C,G,T
	// (never considering the ambiguity row).
	Min, Max int32

	// MinScore and MaxScore are the sums of per-position min/max over all
	// Size positions: the extreme achievable scores for this motif.
	MinScore, MaxScore int64

	// CDFOffset, CDFMax and CDFSize describe the score-distribution
	// engine's working array; see scoredist.Build.
	CDFOffset int64
	CDFMax    int64
	CDFSize   int64

	// CDF[k] = P(total_score - CDFOffset >= k) under the background,
	// populated by scoredist.Build.
	CDF []float64

	// Threshold is the smallest integer score (in the motif's native score
	// axis) at which a window is reported. math.MaxInt64 marks a motif that
	// cannot reach the requested p-value (NonScoring).
	Threshold  int64
	PValue     float64
	NonScoring bool
}

// ThresholdUnreachable is the sentinel Threshold value assigned to a motif
// whose MaxScore cannot achieve the requested p-value.
const ThresholdUnreachable = int64(math.MaxInt64)

// ScorePercent reports a score as a percentage of this motif's achievable
// range, clamped to [0, 100]. MinScore may be negative.
func (m *Motif) ScorePercent(score int32) float64 {
	span := m.MaxScore - m.MinScore
	if span <= 0 {
		return 100
	}
	pct := float64(int64(score)-m.MinScore) / float64(span) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}
