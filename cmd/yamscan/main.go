// Command yamscan scans FASTA/FASTQ sequence input for matches to one
// or more motif position weight matrices, optionally restricted to a
// set of BED ranges.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/bed"
	"github.com/yamscan/yamscan/dedup"
	"github.com/yamscan/yamscan/driver"
	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scan"
	"github.com/yamscan/yamscan/seqio"
)

// defaultPvalue is the scanner's default p-value threshold (spec 6: "-t
// <pvalue> (default 1e-4)").
const defaultPvalue = 1e-4

type cliOpts struct {
	motifPath   string
	consensus   string
	seqPath     string
	outPath     string
	bedPath     string
	background  string
	pvalue      float64
	thresh0     bool
	parallelism int
	nsites      int
	forwardOnly bool
	mask        bool
	dedup       bool
	reverseOnly bool
	streaming   bool
	jobs        int
	mask2       bool
	verbose     bool
	warn        bool
	strandWarn  bool
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: yamscan -m <motifs> -s <sequences> [options]\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	var o cliOpts
	flag.StringVar(&o.motifPath, "m", "", "motif file (MEME, HOMER, JASPAR, or HOCOMOCO)")
	flag.StringVar(&o.consensus, "1", "", "scan a single consensus string (A, C, G, T or U only) instead of a motif file")
	flag.StringVar(&o.seqPath, "s", "", "FASTA/FASTQ sequence file, gzip-ok, '-' for stdin")
	flag.StringVar(&o.outPath, "o", "", "output file (default stdout)")
	flag.StringVar(&o.bedPath, "x", "", "restrict scanning to these BED ranges")
	flag.StringVar(&o.background, "b", "", "background frequencies \"a,c,g,t\" (default uniform)")
	flag.Float64Var(&o.pvalue, "t", defaultPvalue, "p-value threshold")
	flag.BoolVar(&o.thresh0, "0", false, "force score threshold to 0")
	flag.IntVar(&o.parallelism, "p", 1, "number of worker goroutines")
	flag.IntVar(&o.nsites, "n", motif.DefaultNSites, "default site count for motifs lacking one")
	flag.BoolVar(&o.forwardOnly, "f", false, "scan the forward strand only")
	flag.BoolVar(&o.mask2, "M", false, "low-memory streaming mode: re-read input once per motif")
	flag.BoolVar(&o.dedup, "d", false, "deduplicate repeated sequence/motif names instead of failing")
	flag.BoolVar(&o.reverseOnly, "r", false, "scan the reverse-complement strand only")
	flag.BoolVar(&o.mask, "l", false, "soft-mask mode: skip lowercase bases")
	flag.IntVar(&o.jobs, "j", 1, "alias for -p")
	flag.BoolVar(&o.strandWarn, "g", false, "no effect: MEME strand hints only ever produce a warning")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.BoolVar(&o.warn, "w", false, "emit non-fatal warnings")

	cleanup := grail.Init()
	defer cleanup()

	if o.motifPath == "" && o.consensus == "" {
		log.Fatalf("one of -m or -1 is required")
	}
	if o.seqPath == "" {
		log.Fatalf("-s is required")
	}

	if err := run(o, os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(o cliOpts, args []string) error {
	bkg := motif.UniformBackground
	if o.background != "" {
		var err error
		bkg, err = parseBackground(o.background)
		if err != nil {
			return errors.Wrap(err, "parsing -b")
		}
	}

	motifs, err := loadMotifs(o, bkg)
	if err != nil {
		return err
	}

	if o.mask2 && o.seqPath == "-" {
		// Streaming re-reads -s once per motif, which stdin cannot do, so
		// stdin input is always held in memory instead.
		o.mask2 = false
	}

	opener := seqio.Open(o.seqPath)
	var sequences []seqio.Sequence
	if !o.mask2 {
		sequences, err = seqio.ReadAll(opener)
		if err != nil {
			return errors.Wrap(err, "reading sequence input")
		}
	}

	names, lens, err := resolveNames(sequences, opener, o.mask2)
	if err != nil {
		return err
	}
	if o.bedPath != "" {
		if err := bed.RequireUniqueSeqNames(names); err != nil {
			return err
		}
	}
	names, err = dedupNames(names, o.dedup)
	if err != nil {
		return err
	}
	seqIndex := bed.NewIndex(names)

	var regions []*bed.Region
	if o.bedPath != "" {
		regions, err = loadBED(o.bedPath, seqIndex, lens, o.verbose || o.warn)
		if err != nil {
			return err
		}
	}

	out := os.Stdout
	if o.outPath != "" {
		f, err := os.Create(o.outPath)
		if err != nil {
			return errors.Wrapf(err, "creating %s", o.outPath)
		}
		defer f.Close()
		out = f
	}

	orientation := scan.Dual
	switch {
	case o.forwardOnly:
		orientation = scan.ForwardOnly
	case o.reverseOnly:
		orientation = scan.ReverseOnly
	}

	workers := o.parallelism
	if o.jobs > workers {
		workers = o.jobs
	}
	if o.mask2 {
		workers = 1
	}

	ctx := &driver.Context{
		Motifs:    motifs,
		Sequences: sequences,
		SeqIndex:  seqIndex,
		Regions:   regions,
		Reopen:    opener,
		Out:       out,
		Opts: driver.Options{
			PValue:      o.pvalue,
			Orientation: orientation,
			Mask:        o.mask,
			Streaming:   o.mask2,
			Workers:     workers,
			Thresh0:     o.thresh0,
			Consensus:   o.consensus != "",
			Verbose:     o.verbose || o.warn,
			Dedup:       o.dedup,
			Args:        args[1:],
		},
	}
	return driver.Run(ctx)
}

func loadMotifs(o cliOpts, bkg motif.Background) ([]*motif.Motif, error) {
	if o.consensus != "" {
		m, err := motif.BuildConsensus(o.consensus, bkg, motif.DefaultPseudocount)
		if err != nil {
			return nil, errors.Wrap(err, "building consensus motif")
		}
		return []*motif.Motif{m}, nil
	}
	f, err := os.Open(o.motifPath)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", o.motifPath)
	}
	defer f.Close()
	result, err := motif.Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "parsing motif file")
	}
	bkgToUse := bkg
	if result.Background != nil {
		bkgToUse = *result.Background
	}
	bkgToUse.Normalize()

	var motifs []*motif.Motif
	names := dedup.NewChecker()
	for _, pm := range result.Motifs {
		if o.dedup {
			pm.Name, err = names.Resolve(pm.Name)
			if err != nil {
				return nil, err
			}
		} else if err := names.Abort(pm.Name); err != nil {
			return nil, errors.Wrap(err, "duplicate motif name")
		}
		if pm.NSites <= 0 {
			pm.NSites = float64(o.nsites)
		}
		m, err := motif.Build(pm, bkgToUse, motif.DefaultPseudocount)
		if err != nil {
			return nil, errors.Wrapf(err, "building motif %q", pm.Name)
		}
		motifs = append(motifs, m)
	}
	if err := names.Flush(); err != nil {
		return nil, errors.Wrap(err, "duplicate motif name")
	}
	if len(motifs) == 0 {
		return nil, errors.New("motif file contains no motifs")
	}
	return motifs, nil
}

// resolveNames returns every sequence's name and length, in file order.
// In streaming mode sequences hasn't been loaded yet, so this reads the
// input once up front purely to learn names/lengths/order; the scan
// itself re-reads per motif via ctx.Reopen.
func resolveNames(sequences []seqio.Sequence, opener seqio.Opener, streaming bool) ([]string, []int, error) {
	if !streaming {
		return seqio.Names(sequences), sequenceLengths(sequences), nil
	}
	seqs, err := seqio.ReadAll(opener)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading sequence input")
	}
	return seqio.Names(seqs), sequenceLengths(seqs), nil
}

func sequenceLengths(sequences []seqio.Sequence) []int {
	lens := make([]int, len(sequences))
	for i, s := range sequences {
		lens[i] = len(s.Data)
	}
	return lens
}

// dedupNames resolves duplicate sequence names when dedupe is set
// (-d); otherwise it fails once five duplicates are seen, or after the
// last name if there were fewer.
func dedupNames(names []string, dedupe bool) ([]string, error) {
	checker := dedup.NewChecker()
	out := make([]string, len(names))
	for i, n := range names {
		if dedupe {
			resolved, err := checker.Resolve(n)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
			continue
		}
		if err := checker.Abort(n); err != nil {
			return nil, errors.Wrap(err, "duplicate sequence name")
		}
		out[i] = n
	}
	if err := checker.Flush(); err != nil {
		return nil, errors.Wrap(err, "duplicate sequence name")
	}
	return out, nil
}

func loadBED(path string, idx *bed.Index, lens []int, verbose bool) ([]*bed.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	regions, err := bed.Parse(f)
	if err != nil {
		return nil, err
	}
	if err := bed.Resolve(regions, idx); err != nil {
		return nil, err
	}
	if lens != nil {
		if err := bed.Trim(regions, lens, verbose); err != nil {
			return nil, err
		}
	}
	return regions, nil
}

func parseBackground(s string) (motif.Background, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return motif.Background{}, errors.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	var bkg motif.Background
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return motif.Background{}, errors.Wrapf(err, "parsing background component %d", i)
		}
		bkg[i] = v
	}
	bkg.Normalize()
	return bkg, nil
}
