// Package scan slides a motif's PWM across a sequence and reports every
// window whose score clears the motif's threshold.
package scan

import (
	"github.com/yamscan/yamscan/alphabet"
	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scoredist"
)

// Orientation selects which strand(s) a scan reports hits for.
type Orientation int

const (
	// Dual scores both strands at each offset in a single pass.
	Dual Orientation = iota
	// ForwardOnly scores only the input strand.
	ForwardOnly
	// ReverseOnly scores only the reverse complement.
	ReverseOnly
)

// Hit is a single window scoring at or above a motif's threshold.
type Hit struct {
	SeqIndex    int
	Start       int // 0-based, inclusive
	End         int // 0-based, exclusive
	Strand      byte
	MotifName   string
	PValue      float64
	Score       int32
	ScorePct    float64
	Match       []byte
}

// Options controls a single scan pass over one sequence.
type Options struct {
	Orientation Orientation
	// Mask routes soft-masked (lowercase) bases to the ambiguity index,
	// per spec 4.3's masking option.
	Mask bool
	// RegionStart/RegionEnd restrict scanning to a 0-based half-open
	// sub-range of the sequence (BED mode). A zero-length range (both 0)
	// with Restricted=false scans the full sequence.
	Restricted          bool
	RegionStart         int
	RegionEnd           int
}

func indexFunc(mask bool) func(byte) alphabet.Base {
	if mask {
		return alphabet.MaskIndex
	}
	return alphabet.Index
}

// Sequence scans data for every position at which m (and, in Dual mode,
// its reverse complement) clears m.Threshold, appending hits to dst and
// returning the extended slice. seqIndex is recorded on every Hit for
// later sorting/formatting by the caller.
func Sequence(dst []Hit, m *motif.Motif, seqIndex int, data []byte, opts Options) []Hit {
	if m.NonScoring {
		return dst
	}
	idx := indexFunc(opts.Mask)
	L := m.Size
	start, end := 0, len(data)
	if opts.Restricted {
		start, end = opts.RegionStart, opts.RegionEnd
		if end > len(data) {
			end = len(data)
		}
	}
	if end-start < L {
		return dst
	}
	for offset := start; offset+L <= end; offset++ {
		window := data[offset : offset+L]
		switch opts.Orientation {
		case Dual:
			fwd, rev := scoreDual(m, idx, window)
			if int64(fwd) >= m.Threshold {
				dst = append(dst, makeHit(m, seqIndex, offset, offset+L, '+', fwd, window))
			}
			if int64(rev) >= m.Threshold {
				dst = append(dst, makeHit(m, seqIndex, offset, offset+L, '-', rev, window))
			}
		case ForwardOnly:
			fwd := scoreRow(m.PWM, idx, window)
			if int64(fwd) >= m.Threshold {
				dst = append(dst, makeHit(m, seqIndex, offset, offset+L, '+', fwd, window))
			}
		case ReverseOnly:
			rev := scoreRow(m.PWMRC, idx, window)
			if int64(rev) >= m.Threshold {
				dst = append(dst, makeHit(m, seqIndex, offset, offset+L, '-', rev, window))
			}
		}
	}
	return dst
}

// scoreDual computes both the forward and reverse-complement scores of
// window in a single pass over its bytes, fused for cache reuse per spec
// 4.3.
func scoreDual(m *motif.Motif, idx func(byte) alphabet.Base, window []byte) (fwd, rev int32) {
	L := len(window)
	for i := 0; i < L; i++ {
		b := idx(window[i])
		fwd += m.PWM[i][b]
		rev += m.PWMRC[i][b]
	}
	return fwd, rev
}

func scoreRow(pwm [][5]int32, idx func(byte) alphabet.Base, window []byte) int32 {
	var score int32
	for i, c := range window {
		score += pwm[i][idx(c)]
	}
	return score
}

func makeHit(m *motif.Motif, seqIndex, start, end int, strand byte, score int32, window []byte) Hit {
	match := make([]byte, len(window))
	copy(match, window)
	return Hit{
		SeqIndex:  seqIndex,
		Start:     start,
		End:       end,
		Strand:    strand,
		MotifName: m.Name,
		PValue:    scoredist.PValueAt(m, score),
		Score:     score,
		ScorePct:  m.ScorePercent(score),
		Match:     match,
	}
}
