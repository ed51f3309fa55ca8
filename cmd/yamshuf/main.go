// Command yamshuf reads FASTA/FASTQ sequence input and writes a
// k-mer-preserving shuffled version of every sequence to FASTA.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/rng"
	"github.com/yamscan/yamscan/seqio"
	"github.com/yamscan/yamscan/shuffle"
)

const (
	defaultK   = 3
	minK       = 1
	maxK       = 9
	fastaWidth = 60
)

type cliOpts struct {
	inPath   string
	outPath  string
	k        int
	seed     int64
	markov   bool
	linear   bool
	reps     int
	reseed   bool
	nsites   int
	verbose  bool
	warn     bool
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: yamshuf -i <file> [options]\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	var o cliOpts
	flag.StringVar(&o.inPath, "i", "", "FASTA/FASTQ sequence file, gzip-ok, '-' for stdin")
	flag.StringVar(&o.outPath, "o", "", "output file (default stdout)")
	flag.IntVar(&o.k, "k", defaultK, "k-mer size, 1..9")
	flag.Int64Var(&o.seed, "s", 0, "PRNG seed")
	flag.BoolVar(&o.markov, "m", false, "Markov generation instead of Eulerian walk")
	flag.BoolVar(&o.linear, "l", false, "linear block shuffle instead of Eulerian walk")
	flag.IntVar(&o.reps, "r", 1, "number of shuffled repetitions per input sequence")
	flag.BoolVar(&o.reseed, "R", false, "reset the PRNG per sequence, independent of processing order")
	flag.IntVar(&o.nsites, "n", 0, "unused, accepted for command-surface parity with yamscan")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.BoolVar(&o.warn, "w", false, "emit non-fatal warnings")

	cleanup := grail.Init()
	defer cleanup()

	if o.inPath == "" {
		log.Fatalf("-i is required")
	}
	if o.k < minK || o.k > maxK {
		log.Fatalf("-k must be between %d and %d, got %d", minK, maxK, o.k)
	}
	if o.reps < 1 {
		log.Fatalf("-r must be at least 1, got %d", o.reps)
	}

	if err := run(o); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(o cliOpts) error {
	sequences, err := seqio.ReadAll(seqio.Open(o.inPath))
	if err != nil {
		return errors.Wrap(err, "reading sequence input")
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

	mode := shuffle.Eulerian
	switch {
	case o.markov:
		mode = shuffle.Markov
	case o.linear:
		mode = shuffle.LinearBlock
	}
	if o.k == 1 {
		mode = shuffle.FisherYates
	}

	var warned bool
	warnShort := func() {
		if !warned && (o.verbose || o.warn) {
			warned = true
			log.Error.Printf("Markov mode on a sequence shorter than 100 bases risks homopolymer runs")
		}
	}

	resetter := rng.NewPerSequenceResetter(o.seed)
	base := rng.New(o.seed)

	for seqIndex, s := range sequences {
		if len(s.Data) < o.k {
			return errors.Errorf("sequence %q (length %d) is shorter than k=%d", s.Name, len(s.Data), o.k)
		}
		src := base
		if o.reseed {
			src = resetter.For(seqIndex)
		}
		for rep := 0; rep < o.reps; rep++ {
			shuffled, err := shuffle.Shuffle(s.Data, shuffle.Options{
				Mode:            mode,
				K:               o.k,
				RNG:             src,
				WarnShortMarkov: warnShort,
			})
			if err != nil {
				return errors.Wrapf(err, "shuffling %q", s.Name)
			}
			name := s.Name
			if o.reps > 1 {
				name = fmt.Sprintf("%s repeat-%d", s.Name, rep+1)
			}
			if err := seqio.WriteFASTA(out, name, shuffled, fastaWidth); err != nil {
				return errors.Wrapf(err, "writing %q", name)
			}
		}
	}
	return nil
}
