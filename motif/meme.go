package motif

import (
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
)

const proteinAlphabetMarker = "ALPHABET= ACDEFGHIKLMNPQRSTVWY"

// parseMEME implements the MEME minimal motif format: an ALPHABET/strands
// preamble, an optional background-frequencies line, and a sequence of
// "MOTIF <name>" blocks each followed by a "letter-probability matrix" line
// and L data rows.
func parseMEME(text string) ([]ParsedMotif, *Background, error) {
	lines := strings.Split(text, "\n")

	if strings.Contains(text, proteinAlphabetMarker) {
		return nil, nil, errors.New("MEME file declares a protein alphabet; only nucleotide motifs are supported")
	}

	var bkg *Background
	var motifs []ParsedMotif

	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "strands:"):
			if strings.Contains(trimmed, "-") {
				log.Error.Printf("line %d: MEME file declares reverse-strand scanning; this implementation always scans both strands unless -f is given", i+1)
			}
			i++

		case strings.HasPrefix(trimmed, "Background letter frequencies"):
			i++
			if i >= len(lines) {
				return nil, nil, errors.Errorf("line %d: Background letter frequencies header with no data line", i)
			}
			parsed, err := parseMEMEBackground(lines[i])
			if err != nil {
				return nil, nil, errors.Wrapf(err, "line %d", i+1)
			}
			bkg = &parsed
			i++

		case strings.HasPrefix(trimmed, "MOTIF "):
			name, err := trimName(strings.TrimSpace(strings.TrimPrefix(trimmed, "MOTIF")), false)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "line %d", i+1)
			}
			headerLine := i + 1
			i++
			// Skip ahead to the letter-probability matrix line.
			nsites := 0.0
			for i < len(lines) && !strings.Contains(lines[i], "letter-probability matrix") {
				if strings.Contains(lines[i], "nsites=") {
					nsites = extractNSites(lines[i])
				}
				i++
			}
			if i >= len(lines) {
				return nil, nil, errors.Errorf("motif %q (line %d): no letter-probability matrix found", name, headerLine)
			}
			if n := extractNSites(lines[i]); n > 0 {
				nsites = n
			}
			i++
			var ppm [][alphabet.NumBases]float64
			for i < len(lines) {
				row := strings.TrimSpace(lines[i])
				if row == "" || strings.HasPrefix(row, "-") || strings.HasPrefix(row, "*") {
					i++
					break
				}
				values, err := parseFloatRow(row)
				if err != nil {
					return nil, nil, errors.Wrapf(err, "motif %q, line %d", name, i+1)
				}
				if err := checkRow(&values, name, i+1, true); err != nil {
					return nil, nil, err
				}
				ppm = append(ppm, values)
				i++
			}
			if len(ppm) == 0 {
				return nil, nil, errors.Errorf("motif %q (line %d): empty matrix", name, headerLine)
			}
			motifs = append(motifs, ParsedMotif{Name: name, FileLine: headerLine, PPM: ppm, NSites: nsites})

		default:
			i++
		}
	}

	if len(motifs) == 0 {
		return nil, nil, errors.New("MEME file contains no MOTIF blocks")
	}
	return motifs, bkg, nil
}

func extractNSites(line string) float64 {
	idx := strings.Index(line, "nsites=")
	if idx < 0 {
		return 0
	}
	rest := strings.TrimSpace(line[idx+len("nsites="):])
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return v
}

func parseMEMEBackground(line string) (Background, error) {
	fields := strings.Fields(line)
	var bkg Background
	set := map[string]float64{}
	for i := 0; i+1 < len(fields); i += 2 {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return bkg, errors.Wrapf(err, "parsing background value %q", fields[i+1])
		}
		set[strings.ToUpper(fields[i])] = v
	}
	order := []string{"A", "C", "G", "T"}
	for i, letter := range order {
		v, ok := set[letter]
		if !ok {
			return bkg, errors.Errorf("background letter frequencies line missing %q", letter)
		}
		bkg[i] = v
	}
	bkg.Normalize()
	return bkg, nil
}

func parseFloatRow(line string) ([alphabet.NumBases]float64, error) {
	var out [alphabet.NumBases]float64
	fields := strings.Fields(line)
	if len(fields) != alphabet.NumBases {
		return out, errors.Errorf("expected %d columns, got %d", alphabet.NumBases, len(fields))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return out, errors.Wrapf(err, "parsing column %d (%q)", i, f)
		}
		out[i] = v
	}
	return out, nil
}
