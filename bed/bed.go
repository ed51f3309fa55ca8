package bed

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/yerrors"
)

// Region is a single BED interval: a zero-based, half-open [Start, End)
// range on a named sequence, an optional range name, and a strand
// restriction ('+', '-', or '.' for both).
type Region struct {
	SeqName  string
	Start    int
	End      int
	Name     string
	Strand   byte
	FileLine int

	// SeqIndex is resolved against an Index once the sequence list is
	// known; it is -1 until Resolve is called.
	SeqIndex int
}

// commentPrefixes lists the line prefixes that mark a comment/header line
// to be skipped, per spec 4.5/6.
var commentPrefixes = []string{"#", "browser", "track"}

// Parse reads 3+ column TSV BED records from r. It does not resolve
// sequence names or trim against sequence lengths; call Resolve and Trim
// for that once the sequence list is available.
func Parse(r io.Reader) ([]*Region, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var regions []*Region
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		region, err := parseLine(trimmed, lineNum)
		if err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading BED file")
	}
	return regions, nil
}

func isComment(line string) bool {
	for _, p := range commentPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func parseLine(line string, lineNum int) (*Region, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 3 {
		// Some BED producers use runs of whitespace instead of tabs.
		fields = strings.Fields(line)
	}
	if len(fields) < 3 {
		return nil, errors.Errorf("BED line %d: expected at least 3 fields, got %d", lineNum, len(fields))
	}
	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, errors.Wrapf(err, "BED line %d: invalid start field %q", lineNum, fields[1])
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, errors.Wrapf(err, "BED line %d: invalid end field %q", lineNum, fields[2])
	}
	if start >= end {
		return nil, errors.Errorf("BED line %d: start (%d) >= end (%d)", lineNum, start, end)
	}
	region := &Region{
		SeqName:  fields[0],
		Start:    start,
		End:      end,
		Strand:   '.',
		FileLine: lineNum,
		SeqIndex: -1,
	}
	if len(fields) >= 4 {
		region.Name = fields[3]
	}
	if len(fields) >= 6 {
		switch fields[5] {
		case "+", "-", ".":
			region.Strand = fields[5][0]
		default:
			return nil, errors.Errorf("BED line %d: invalid strand field %q", lineNum, fields[5])
		}
	}
	// Field 5 (score) is deliberately ignored.
	return region, nil
}

// Resolve looks every region's SeqName up in idx, setting SeqIndex. It is
// fatal (per spec 4.5) for a region to reference a sequence absent from
// idx.
func Resolve(regions []*Region, idx *Index) error {
	for _, r := range regions {
		i, ok := idx.Lookup(r.SeqName)
		if !ok {
			return errors.Errorf("BED line %d: sequence %q not found in input", r.FileLine, r.SeqName)
		}
		r.SeqIndex = i
	}
	return nil
}

// Trim clips each region's End down to seqLens[region.SeqIndex] (logging a
// warning when verbose), and returns an error for any region whose Start
// is at or past its (possibly trimmed) End.
func Trim(regions []*Region, seqLens []int, verbose bool) error {
	for _, r := range regions {
		size := seqLens[r.SeqIndex]
		if r.End > size {
			yerrors.Warn(verbose, "BED line %d: range end %d exceeds sequence %q length %d, trimming", r.FileLine, r.End, r.SeqName, size)
			r.End = size
		}
		if r.Start >= r.End {
			return errors.Errorf("BED line %d: range [%d, %d) is empty after trimming to sequence %q length %d", r.FileLine, r.Start, r.End, r.SeqName, size)
		}
	}
	return nil
}

// RequireUniqueSeqNames enforces the spec 4.5 rule that BED mode forbids
// duplicate sequence names, independent of any -d dedup setting.
func RequireUniqueSeqNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return errors.Errorf("duplicate sequence name %q is not allowed when a BED file restricts scanning", n)
		}
		seen[n] = true
	}
	return nil
}
