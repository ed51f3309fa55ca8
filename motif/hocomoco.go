package motif

import (
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
)

// parseHOCOMOCO implements the HOCOMOCO PCM format: a ">" header followed
// by L four-column PCM (count) rows, converted to a PPM by column
// normalization. spec 4.1 requires column sums to agree across rows (off by
// one is a warning, not fatal); a '-' in the matrix body at detection time
// signals a pre-computed PWM, which this branch rejects.
func parseHOCOMOCO(text string) ([]ParsedMotif, error) {
	lines := strings.Split(text, "\n")
	var motifs []ParsedMotif

	var cur *ParsedMotif
	var colSums []float64
	flush := func() error {
		if cur == nil {
			return nil
		}
		if len(cur.PPM) == 0 {
			return errors.Errorf("motif %q (line %d): empty matrix", cur.Name, cur.FileLine)
		}
		if err := checkColumnSums(colSums); err != nil {
			return errors.Wrapf(err, "motif %q (line %d)", cur.Name, cur.FileLine)
		}
		motifs = append(motifs, *cur)
		cur, colSums = nil, nil
		return nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return nil, err
			}
			name, err := trimName(strings.TrimSpace(strings.TrimPrefix(line, ">")), false)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", i+1)
			}
			cur = &ParsedMotif{Name: name, FileLine: i + 1}
			continue
		}
		if trimmed == "" || cur == nil {
			continue
		}
		if strings.Contains(trimmed, "-") && !looksNumeric(trimmed) {
			return nil, errors.Errorf("motif %q, line %d: PWM-like row rejected, only raw PCM counts are accepted here", cur.Name, i+1)
		}
		counts, err := parseFloatRow(trimmed)
		if err != nil {
			return nil, errors.Wrapf(err, "motif %q, line %d", cur.Name, i+1)
		}
		total := counts[alphabet.A] + counts[alphabet.C] + counts[alphabet.G] + counts[alphabet.T]
		if total <= 0 {
			return nil, errors.Errorf("motif %q, line %d: row sums to zero counts", cur.Name, i+1)
		}
		colSums = append(colSums, total)
		var row [alphabet.NumBases]float64
		for b := 0; b < alphabet.NumBases; b++ {
			row[b] = counts[b] / total
		}
		cur.PPM = append(cur.PPM, row)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(motifs) == 0 {
		return nil, errors.New("HOCOMOCO PCM file contains no motifs")
	}
	return motifs, nil
}

// looksNumeric reports whether every rune in s is one a float row may
// legitimately contain (a leading '-' on a negative PCM count is not valid
// HOCOMOCO PCM data, but a '-' inside e.g. "1e-05" is).
func looksNumeric(s string) bool {
	for _, f := range strings.Fields(s) {
		for i, r := range f {
			switch {
			case r >= '0' && r <= '9':
			case r == '.' || r == 'e' || r == 'E' || r == '+':
			case r == '-' && i > 0:
			default:
				return false
			}
		}
	}
	return true
}

// checkColumnSums rejects a motif whose per-position count totals differ
// by more than one, and logs a warning when they differ by at most one.
func checkColumnSums(sums []float64) error {
	if len(sums) < 2 {
		return nil
	}
	ref := sums[0]
	for _, s := range sums[1:] {
		if diff := s - ref; diff > 1 || diff < -1 {
			return errors.Errorf("HOCOMOCO PCM: column sums vary by more than 1 (%.0f vs %.0f)", s, ref)
		}
	}
	for _, s := range sums[1:] {
		if s != ref {
			log.Error.Printf("HOCOMOCO PCM: column sums differ by at most 1 (%.0f vs %.0f)", s, ref)
			break
		}
	}
	return nil
}
