package motif

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
)

// parseJASPAR implements the JASPAR raw-counts format: a ">" header
// followed by four rows, each "<letter> [ <counts...> ]", one per A, C, G,
// T/U in any order. Counts are converted to a PPM here by dividing each
// column by its total; the pseudocount is added later, by Build.
func parseJASPAR(text string) ([]ParsedMotif, error) {
	lines := strings.Split(text, "\n")
	var motifs []ParsedMotif

	i := 0
	for i < len(lines) {
		line := lines[i]
		if !strings.HasPrefix(line, ">") {
			i++
			continue
		}
		name, err := trimName(strings.TrimSpace(strings.TrimPrefix(line, ">")), false)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		headerLine := i + 1
		i++

		counts := map[alphabet.Base][]float64{}
		rowsSeen := 0
		for rowsSeen < alphabet.NumBases && i < len(lines) {
			row := strings.TrimSpace(lines[i])
			if row == "" {
				i++
				continue
			}
			letter, values, err := parseJASPARRow(row)
			if err != nil {
				return nil, errors.Wrapf(err, "motif %q, line %d", name, i+1)
			}
			idx := alphabet.Index(letter)
			if idx == alphabet.N {
				return nil, errors.Errorf("motif %q, line %d: unexpected row letter %q", name, i+1, letter)
			}
			if _, dup := counts[idx]; dup {
				return nil, errors.Errorf("motif %q, line %d: duplicate row for letter %q", name, i+1, letter)
			}
			counts[idx] = values
			rowsSeen++
			i++
		}
		if rowsSeen != alphabet.NumBases {
			return nil, errors.Errorf("motif %q (line %d): expected %d count rows, found %d", name, headerLine, alphabet.NumBases, rowsSeen)
		}
		L := len(counts[alphabet.A])
		for b := alphabet.Base(1); b < alphabet.NumBases; b++ {
			if len(counts[b]) != L {
				return nil, errors.Errorf("motif %q (line %d): count rows have mismatched lengths", name, headerLine)
			}
		}
		ppm := make([][alphabet.NumBases]float64, L)
		for pos := 0; pos < L; pos++ {
			var total float64
			for b := alphabet.Base(0); b < alphabet.NumBases; b++ {
				total += counts[b][pos]
			}
			if total <= 0 {
				return nil, errors.Errorf("motif %q (line %d): column %d sums to zero counts", name, headerLine, pos+1)
			}
			for b := alphabet.Base(0); b < alphabet.NumBases; b++ {
				ppm[pos][b] = counts[b][pos] / total
			}
		}
		motifs = append(motifs, ParsedMotif{Name: name, FileLine: headerLine, PPM: ppm, NSites: 0})
	}

	if len(motifs) == 0 {
		return nil, errors.New("JASPAR file contains no motifs")
	}
	return motifs, nil
}

// parseJASPARRow parses "A [ 3 1 0 5 ]" into ('A', [3,1,0,5]).
func parseJASPARRow(row string) (byte, []float64, error) {
	open := strings.Index(row, "[")
	close := strings.LastIndex(row, "]")
	if open < 0 || close < 0 || close < open {
		return 0, nil, errors.Errorf("malformed JASPAR row %q, expected \"<letter> [ counts ]\"", row)
	}
	letterField := strings.TrimSpace(row[:open])
	if len(letterField) == 0 {
		return 0, nil, errors.Errorf("malformed JASPAR row %q: missing letter", row)
	}
	letter := letterField[0]
	fields := strings.Fields(row[open+1 : close])
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "parsing count %q", f)
		}
		values[i] = v
	}
	return letter, values, nil
}
