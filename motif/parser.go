package motif

import (
	"bufio"
	"io"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
)

// Format identifies an autodetected motif-file dialect.
type Format int

const (
	// FormatUnknown is returned when detection fails.
	FormatUnknown Format = iota
	FormatMEME
	FormatHOMER
	FormatJASPAR
	FormatHOCOMOCO
)

func (f Format) String() string {
	switch f {
	case FormatMEME:
		return "MEME"
	case FormatHOMER:
		return "HOMER"
	case FormatJASPAR:
		return "JASPAR"
	case FormatHOCOMOCO:
		return "HOCOMOCO PCM"
	default:
		return "unknown"
	}
}

// ParseResult is everything Parse recovers from a motif file: the detected
// format, the background the file itself supplied (if any; MEME only), and
// the parsed motifs in file order.
type ParseResult struct {
	Format     Format
	Background *Background
	Motifs     []ParsedMotif
}

// peekLines buffers up to n non-blank lines for format sniffing without
// consuming the underlying reader twice; the sniffed lines are replayed to
// the per-format parser through a combined reader.
type sniffer struct {
	lines []string
}

// Parse autodetects the motif file dialect from its first non-blank content
// lines and dispatches to the matching per-format parser. See spec section
// 4.1 for the exact detection rules.
func Parse(r io.Reader) (ParseResult, error) {
	br := bufio.NewReader(r)
	content, err := io.ReadAll(br)
	if err != nil {
		return ParseResult{}, errors.Wrap(err, "reading motif file")
	}
	text := string(content)

	if strings.Contains(text, "MEME version ") {
		motifs, bkg, err := parseMEME(text)
		return ParseResult{Format: FormatMEME, Background: bkg, Motifs: motifs}, err
	}

	firstNonBlank := firstNonBlankLine(text)
	if !strings.HasPrefix(strings.TrimSpace(firstNonBlank), ">") {
		return ParseResult{}, errors.New("unrecognized motif file: expected \"MEME version\" or a \">\" header")
	}

	lines := strings.Split(text, "\n")
	headerIdx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == strings.TrimSpace(firstNonBlank) {
			headerIdx = i
			break
		}
	}
	kind := classifyHeaderBlock(lines, headerIdx)
	switch kind {
	case FormatJASPAR:
		motifs, err := parseJASPAR(text)
		return ParseResult{Format: FormatJASPAR, Motifs: motifs}, err
	case FormatHOMER:
		motifs, err := parseHOMER(text)
		return ParseResult{Format: FormatHOMER, Motifs: motifs}, err
	default:
		motifs, err := parseHOCOMOCO(text)
		return ParseResult{Format: FormatHOCOMOCO, Motifs: motifs}, err
	}
}

// classifyHeaderBlock implements the JASPAR/HOMER/HOCOMOCO disambiguation
// from spec 4.1: if a line following the first ">" header starts with 'A'
// and contains both '[' and ']' it's JASPAR; else if any header line (a
// line starting with '>') contains a TAB it's HOMER; else HOCOMOCO PCM.
func classifyHeaderBlock(lines []string, headerIdx int) Format {
	for i := headerIdx + 1; i < len(lines) && i < headerIdx+6; i++ {
		l := lines[i]
		if strings.HasPrefix(strings.TrimSpace(l), "A") && strings.Contains(l, "[") && strings.Contains(l, "]") {
			return FormatJASPAR
		}
	}
	for _, l := range lines {
		if strings.HasPrefix(l, ">") && strings.Contains(l, "\t") {
			return FormatHOMER
		}
	}
	return FormatHOCOMOCO
}

func firstNonBlankLine(text string) string {
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			return l
		}
	}
	return ""
}

// trimName enforces the 256-character cap and, unless keepFull is set,
// truncates the name at its first whitespace run, matching every format's
// shared name-handling rule.
func trimName(raw string, keepFull bool) (string, error) {
	name := raw
	if !keepFull {
		if i := strings.IndexAny(name, " \t"); i >= 0 {
			name = name[:i]
		}
	}
	name = strings.TrimSpace(name)
	if len(name) > MaxNameLen {
		return "", errors.Errorf("motif name exceeds %d characters: %q", MaxNameLen, raw)
	}
	if name == "" {
		return "", errors.New("empty motif name")
	}
	return name, nil
}

// checkRow normalizes row in place (see NormalizeRow) and logs a warning if
// it was rescaled and verbose is requested.
func checkRow(row *[alphabet.NumBases]float64, name string, line int, verbose bool) error {
	rescaled, err := NormalizeRow(row)
	if err != nil {
		return errors.Wrapf(err, "motif %q, line %d", name, line)
	}
	if rescaled && verbose {
		log.Error.Printf("motif %q, line %d: row sum off by more than %.2f, rescaled", name, line, rowSumWarnTolerance)
	}
	return nil
}
