package driver

import (
	"bufio"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/bed"
	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/pool"
	"github.com/yamscan/yamscan/scan"
	"github.com/yamscan/yamscan/scoredist"
	"github.com/yamscan/yamscan/seqio"
	"github.com/yamscan/yamscan/yerrors"
)

// Run builds every motif's threshold, then scans the sequence list
// against all motifs, writing the output contract to ctx.Out. It
// dispatches to the in-memory or streaming (re-read-per-motif) scan
// path according to ctx.Opts.Streaming.
func Run(ctx *Context) error {
	if err := buildThresholds(ctx); err != nil {
		return err
	}

	w := bufio.NewWriter(ctx.Out)
	defer w.Flush()

	lens := sequenceLengths(ctx)
	if ctx.Opts.Streaming && ctx.Sequences == nil {
		// Streaming mode: nothing is loaded yet, so read once for lengths.
		seqs, err := seqio.ReadAll(ctx.Reopen)
		if err != nil {
			return errors.Wrap(err, "reading sequence input")
		}
		lens = make([]int, len(seqs))
		for i, s := range seqs {
			lens[i] = len(s.Data)
		}
	}

	WriteHeader(w, ctx.Opts.Args)
	WriteStats(w, ctx.Motifs, lens, ctx.Opts.Orientation, ctx.Opts.Dedup)
	WriteColumnHeader(w)

	regions := regionsBySeq(ctx.Regions)
	sink := &writeSink{w: w, verbose: ctx.Opts.Verbose}

	if ctx.Opts.Streaming {
		return runStreaming(ctx, sink, regions)
	}
	return runInMemory(ctx, sink, regions)
}

func buildThresholds(ctx *Context) error {
	scratch := scoredist.NewScratch()
	for _, m := range ctx.Motifs {
		opts := scoredist.Options{Thresh0: ctx.Opts.Thresh0, Consensus: ctx.Opts.Consensus}
		if err := scoredist.Build(m, m.Background, ctx.Opts.PValue, scratch, opts); err != nil {
			return errors.Wrapf(err, "building score distribution for motif %q", m.Name)
		}
		if m.NonScoring {
			yerrors.Warn(ctx.Opts.Verbose, "motif %q: p-value %.3g is unreachable, marking non-scoring", m.Name, ctx.Opts.PValue)
		}
	}
	return nil
}

func sequenceLengths(ctx *Context) []int {
	lens := make([]int, len(ctx.Sequences))
	for i, s := range ctx.Sequences {
		lens[i] = len(s.Data)
	}
	return lens
}

// regionsBySeq groups BED regions by the sequence index they restrict.
func regionsBySeq(regions []*bed.Region) map[int][]*bed.Region {
	if len(regions) == 0 {
		return nil
	}
	out := make(map[int][]*bed.Region)
	for _, r := range regions {
		out[r.SeqIndex] = append(out[r.SeqIndex], r)
	}
	return out
}

// enclosingRegion finds the BED region that contains a hit's window, for
// formatting the hit's BED-mode prefix.
func enclosingRegion(regions map[int][]*bed.Region, seqIndex, start, end int) (*bed.Region, bool) {
	for _, r := range regions[seqIndex] {
		if start >= r.Start && end <= r.End {
			return r, true
		}
	}
	return nil, false
}

// writeSink implements pool.Sink. pool.Run calls Emit and Progress with
// its own mutex held, serializing every write into w across all
// workers, so writeSink needs no locking of its own.
type writeSink struct {
	w       *bufio.Writer
	verbose bool
	seqName func(seqIndex int) string
	regions map[int][]*bed.Region
}

func (s *writeSink) Emit(workerID int, motifName string, hits []scan.Hit) {
	for _, h := range hits {
		name := s.seqName(h.SeqIndex)
		prefix := ""
		if r, ok := enclosingRegion(s.regions, h.SeqIndex, h.Start, h.End); ok {
			prefix = BEDPrefix(r.SeqName, r.Start, r.End, r.Strand, r.Name)
		}
		WriteHit(s.w, name, h, prefix)
	}
}

func (s *writeSink) Progress(done, total int) {
	if s.verbose {
		log.Info.Printf("scanned %s/%s motifs", humanize.Comma(int64(done)), humanize.Comma(int64(total)))
	}
}

// runInMemory scans every already-loaded sequence against every motif,
// partitioning motifs across ctx.Opts.Workers goroutines.
func runInMemory(ctx *Context, sink *writeSink, regions map[int][]*bed.Region) error {
	sink.seqName = func(i int) string { return ctx.Sequences[i].Name }
	sink.regions = regions

	return pool.Run(ctx.Motifs, ctx.Opts.Workers, sink, func(scratch *scoredist.Scratch, m *motif.Motif) ([]scan.Hit, error) {
		var hits []scan.Hit
		for i, s := range ctx.Sequences {
			hits = scanOne(hits, ctx, regions, m, i, s.Data)
		}
		return hits, nil
	})
}

// runStreaming reopens the sequence input once per motif, trading
// memory for I/O, and runs single-threaded since a re-opened input can
// only be consumed once per motif.
func runStreaming(ctx *Context, sink *writeSink, regions map[int][]*bed.Region) error {
	names, err := peekNames(ctx)
	if err != nil {
		return err
	}
	sink.seqName = func(i int) string { return names[i] }
	sink.regions = regions

	for motifIdx, m := range ctx.Motifs {
		seqs, err := seqio.ReadAll(ctx.Reopen)
		if err != nil {
			return errors.Wrapf(err, "re-reading sequence input for motif %q", m.Name)
		}
		var hits []scan.Hit
		for i, s := range seqs {
			hits = scanOne(hits, ctx, regions, m, i, s.Data)
		}
		sink.Emit(0, m.Name, hits)
		sink.Progress(motifIdx+1, len(ctx.Motifs))
	}
	return nil
}

// peekNames reads the sequence input once up front (even in streaming
// mode) purely to learn sequence names/order; per design notes open
// question 2, every subsequent re-read must enumerate in this same
// order.
func peekNames(ctx *Context) ([]string, error) {
	if ctx.Sequences != nil {
		return seqio.Names(ctx.Sequences), nil
	}
	seqs, err := seqio.ReadAll(ctx.Reopen)
	if err != nil {
		return nil, err
	}
	return seqio.Names(seqs), nil
}

func scanOne(dst []scan.Hit, ctx *Context, regions map[int][]*bed.Region, m *motif.Motif, seqIndex int, data []byte) []scan.Hit {
	opts := scan.Options{Orientation: ctx.Opts.Orientation, Mask: ctx.Opts.Mask}
	rs := regions[seqIndex]
	if len(rs) == 0 {
		if regions != nil {
			// BED mode: a sequence with no region is not scanned.
			return dst
		}
		return scan.Sequence(dst, m, seqIndex, data, opts)
	}
	for _, r := range rs {
		opts.Orientation = ctx.Opts.Orientation
		switch {
		case r.Strand == '+' && opts.Orientation == scan.ReverseOnly,
			r.Strand == '-' && opts.Orientation == scan.ForwardOnly:
			continue
		case r.Strand == '+':
			opts.Orientation = scan.ForwardOnly
		case r.Strand == '-':
			opts.Orientation = scan.ReverseOnly
		}
		opts.Restricted = true
		opts.RegionStart = r.Start
		opts.RegionEnd = r.End
		dst = scan.Sequence(dst, m, seqIndex, data, opts)
	}
	return dst
}
