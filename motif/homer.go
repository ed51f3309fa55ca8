package motif

import (
	"strings"

	"github.com/pkg/errors"
)

// parseHOMER implements the HOMER known-motif format: a ">" header line
// (whose fields beyond the name are tab-separated, which is how the format
// is distinguished from HOCOMOCO), followed by space/tab-separated
// four-column PPM rows until the next header or EOF.
func parseHOMER(text string) ([]ParsedMotif, error) {
	lines := strings.Split(text, "\n")
	var motifs []ParsedMotif

	var cur *ParsedMotif
	flush := func() error {
		if cur == nil {
			return nil
		}
		if len(cur.PPM) == 0 {
			return errors.Errorf("motif %q (line %d): empty matrix", cur.Name, cur.FileLine)
		}
		motifs = append(motifs, *cur)
		cur = nil
		return nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return nil, err
			}
			fields := strings.Split(strings.TrimPrefix(line, ">"), "\t")
			name, err := trimName(fields[0], false)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", i+1)
			}
			cur = &ParsedMotif{Name: name, FileLine: i + 1}
			continue
		}
		if trimmed == "" || cur == nil {
			continue
		}
		row, err := parseFloatRow(trimmed)
		if err != nil {
			return nil, errors.Wrapf(err, "motif %q, line %d", cur.Name, i+1)
		}
		if err := checkRow(&row, cur.Name, i+1, true); err != nil {
			return nil, err
		}
		cur.PPM = append(cur.PPM, row)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(motifs) == 0 {
		return nil, errors.New("HOMER file contains no motifs")
	}
	return motifs, nil
}
