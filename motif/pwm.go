package motif

import (
	"math"

	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
	"gonum.org/v1/gonum/floats"
)

// ParsedMotif is the format-independent result of a motif-file parser: a
// name, the file line its header started on, a per-position probability
// matrix (each row summing to ~1 over A,C,G,T), and an optional per-motif
// site count (0 means "not declared, use the caller's default").
type ParsedMotif struct {
	Name     string
	FileLine int
	PPM      [][alphabet.NumBases]float64
	NSites   float64
}

// rowSumFatalTolerance and rowSumWarnTolerance are the row-sum error bounds
// from spec.md: above the fatal bound the row is rejected outright, above
// the warn bound it is rescaled and a warning is reported.
const (
	rowSumFatalTolerance = 0.1
	rowSumWarnTolerance  = 0.02
)

// NormalizeRow checks that row sums to ~1 and rescales it in place if it is
// off by more than rowSumWarnTolerance but less than rowSumFatalTolerance.
// It returns whether a (non-fatal) rescale happened, and an error if the row
// is too far from normalized to use at all.
func NormalizeRow(row *[alphabet.NumBases]float64) (rescaled bool, err error) {
	sum := floats.Sum(row[:])
	diff := math.Abs(sum - 1)
	if diff > rowSumFatalTolerance {
		return false, errors.Errorf("row sums to %.4f, more than %.2f away from 1", sum, rowSumFatalTolerance)
	}
	if diff > rowSumWarnTolerance {
		floats.Scale(1/sum, row[:])
		return true, nil
	}
	return false, nil
}

// Build converts a position probability matrix into a Motif's forward and
// reverse-complement integer log-odds PWMs.
//
// score = floor(1000 * log2((p*nsites + pseudo/4) / ((nsites+pseudo)*bkg)))
//
// nsites and pseudocount follow spec.md defaults (DefaultNSites,
// DefaultPseudocount) when zero.
func Build(pm ParsedMotif, bkg Background, pseudocount float64) (*Motif, error) {
	L := len(pm.PPM)
	if L < 1 || L > MaxLen {
		return nil, errors.Errorf("motif %q: size %d out of range [1, %d]", pm.Name, L, MaxLen)
	}
	if len(pm.Name) > MaxNameLen {
		return nil, errors.Errorf("motif name exceeds %d characters: %q", MaxNameLen, pm.Name)
	}
	nsites := pm.NSites
	if nsites <= 0 {
		nsites = DefaultNSites
	}
	if pseudocount <= 0 {
		pseudocount = DefaultPseudocount
	}

	m := &Motif{
		Name:       pm.Name,
		FileLine:   pm.FileLine,
		Background: bkg,
		Size:       L,
		PWM:        make([][5]int32, L),
		PWMRC:      make([][5]int32, L),
		Min:        math.MaxInt32,
		Max:        math.MinInt32,
	}

	for i := 0; i < L; i++ {
		row := pm.PPM[i]
		for b := 0; b < alphabet.NumBases; b++ {
			p := row[b]
			q := bkg[b]
			raw := (p*nsites + pseudocount/4) / ((nsites + pseudocount) * q)
			score := int32(math.Floor(1000 * math.Log2(raw)))
			m.PWM[i][b] = score
			if score < m.Min {
				m.Min = score
			}
			if score > m.Max {
				m.Max = score
			}
		}
		m.PWM[i][alphabet.N] = AmbiguitySentinel
	}
	for i := 0; i < L; i++ {
		rowMin, rowMax := m.PWM[i][0], m.PWM[i][0]
		for b := 1; b < alphabet.NumBases; b++ {
			if m.PWM[i][b] < rowMin {
				rowMin = m.PWM[i][b]
			}
			if m.PWM[i][b] > rowMax {
				rowMax = m.PWM[i][b]
			}
		}
		m.MinScore += int64(rowMin)
		m.MaxScore += int64(rowMax)
	}

	buildReverseComplement(m)
	return m, nil
}

// buildReverseComplement fills PWMRC from PWM: position i of the reverse
// complement motif is position (L-1-i) of the forward motif, with base rows
// permuted by the Watson-Crick complement (A<->T, C<->G); the ambiguity row
// is copied verbatim since it complements to itself.
func buildReverseComplement(m *Motif) {
	L := m.Size
	for i := 0; i < L; i++ {
		src := m.PWM[L-1-i]
		var dst [5]int32
		for b := alphabet.Base(0); b < alphabet.NumBases; b++ {
			dst[alphabet.Complement(b)] = src[b]
		}
		dst[alphabet.N] = AmbiguitySentinel
		m.PWMRC[i] = dst
	}
}

// BuildConsensus builds a motif directly from a consensus string (the -1
// flag): each position gives its literal base probability
// 1-3*MinBackground and the other three MinBackground, and the result is
// built with a site count of 1, with an ambiguity row as usual. Every
// character must be A, C, G, T or U; IUPAC ambiguity codes are rejected.
func BuildConsensus(consensus string, bkg Background, pseudocount float64) (*Motif, error) {
	L := len(consensus)
	if L < 1 || L > MaxLen {
		return nil, errors.Errorf("consensus length %d out of range [1, %d]", L, MaxLen)
	}
	ppm := make([][alphabet.NumBases]float64, L)
	for i := 0; i < L; i++ {
		idx := alphabet.Index(consensus[i])
		if idx == alphabet.N {
			return nil, errors.Errorf("consensus %q: position %d (%q) is not a standard base", consensus, i+1, consensus[i])
		}
		for b := 0; b < alphabet.NumBases; b++ {
			if alphabet.Base(b) == idx {
				ppm[i][b] = 1 - 3*MinBackground
			} else {
				ppm[i][b] = MinBackground
			}
		}
	}
	return Build(ParsedMotif{Name: consensus, PPM: ppm, NSites: 1}, bkg, pseudocount)
}
