// Package driver orchestrates a full scan run: building thresholds for
// every motif, partitioning motifs across worker goroutines via pool,
// scanning each worker's share of motifs against every sequence (or
// BED-restricted region), and writing the scanner's TSV output
// contract.
package driver

import (
	"io"

	"github.com/yamscan/yamscan/bed"
	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scan"
	"github.com/yamscan/yamscan/seqio"
)

// Context collapses the globals the teacher's original tool would have
// kept (motif list, sequence list, BED table, output handle, options)
// into a single value threaded through the run, per the design notes'
// "single Context value" decision.
type Context struct {
	Motifs    []*motif.Motif
	Sequences []seqio.Sequence
	SeqIndex  *bed.Index
	Regions   []*bed.Region // nil unless BED mode is active

	Opts Options
	Out  io.Writer

	// Reopen re-opens the sequence input from the top, used only in
	// streaming mode where Sequences is not pre-loaded in full.
	Reopen seqio.Opener
}

// Options mirrors the scanner command surface from spec.md 6.
type Options struct {
	PValue      float64
	Orientation scan.Orientation
	Mask        bool
	Streaming   bool // -M, low-memory re-read-per-motif mode
	Workers     int  // -j
	Thresh0     bool // -0
	Consensus   bool // motif built via -1
	Verbose     bool // -v / -w
	Dedup       bool // -d
	ProgName    string
	Args        []string
}
