package driver

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scan"
)

// version is reported in the scanner's header line.
const version = "1.0"

// WriteHeader emits the leading "##yamscan v... [ arguments ]" line.
func WriteHeader(w *bufio.Writer, args []string) {
	fmt.Fprintf(w, "##yamscan v%s [ %s ]\n", version, strings.Join(args, " "))
}

// WriteStats emits the "##MotifCount=... MaxPossibleHits=..." line.
// MaxPossibleHits is the sum, over every scoring motif, of the number of
// windows it could possibly be evaluated at: two per position in dual
// orientation, one otherwise.
func WriteStats(w *bufio.Writer, motifs []*motif.Motif, sequences []int, orientation scan.Orientation, dedupped bool) {
	maxHits := 0
	scoring := 0
	for _, m := range motifs {
		if m.NonScoring {
			continue
		}
		scoring++
	}
	perWindow := 1
	if orientation == scan.Dual {
		perWindow = 2
	}
	for _, seqLen := range sequences {
		for _, m := range motifs {
			if m.NonScoring {
				continue
			}
			windows := seqLen - m.Size + 1
			if windows > 0 {
				maxHits += windows * perWindow
			}
		}
	}
	fmt.Fprintf(w, "##MotifCount=%d MaxPossibleHits=%d", scoring, maxHits)
	if dedupped {
		fmt.Fprint(w, " Dedupped=true")
	}
	fmt.Fprint(w, "\n")
}

// ColumnHeader is the scanner's fixed output column header line.
const ColumnHeader = "seq_name\tstart\tend\tstrand\tmotif\tpvalue\tscore\tscore_pct\tmatch"

// WriteColumnHeader emits ColumnHeader.
func WriteColumnHeader(w *bufio.Writer) {
	fmt.Fprintln(w, ColumnHeader)
}

// WriteHit formats one hit per the output contract: 1-based inclusive
// coordinates, optionally prefixed with a BED range in BED mode.
func WriteHit(w *bufio.Writer, seqName string, h scan.Hit, bedPrefix string) {
	if bedPrefix != "" {
		fmt.Fprint(w, bedPrefix)
	}
	fmt.Fprintf(w, "%s\t%d\t%d\t%c\t%s\t%.6g\t%d\t%.2f\t%s\n",
		seqName, h.Start+1, h.End, h.Strand, h.MotifName, h.PValue, h.Score, h.ScorePct, h.Match)
}

// BEDPrefix formats the "chrom:start-end(strand)\trange_name\t" prefix
// BED mode adds before every hit record.
func BEDPrefix(chrom string, start, end int, strand byte, name string) string {
	return fmt.Sprintf("%s:%d-%d(%c)\t%s\t", chrom, start+1, end, strand, name)
}
