// Package shuffle implements the four k-mer-preserving sequence
// shufflers: a classical Fisher-Yates permutation, a linear block
// shuffle, a Markov-chain generator, and an exact k-mer-composition
// preserving random Eulerian trail walk.
package shuffle

import (
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
	"github.com/yamscan/yamscan/rng"
)

// Mode selects which of the four shuffle algorithms to run.
type Mode int

const (
	// FisherYates is the classical unbiased single-character shuffle
	// (k=1).
	FisherYates Mode = iota
	// LinearBlock partitions the sequence into non-overlapping k-character
	// blocks and shuffles the blocks.
	LinearBlock
	// Markov draws a new sequence base-by-base from the input's k-mer
	// transition table.
	Markov
	// Eulerian exactly preserves every k-mer count via a random Eulerian
	// trail walk. It is the default mode for k>1.
	Eulerian
)

// minMarkovWarnSize is the sequence length below which Markov mode emits
// a one-shot warning about homopolymer-run risk, per spec 4.4.
const minMarkovWarnSize = 100

// baseLetters maps a canonical base index to its output byte; index 4
// (ambiguity) prints as 'N'.
var baseLetters = [alphabet.NumRows]byte{'A', 'C', 'G', 'T', 'N'}

// Options controls a single shuffle call.
type Options struct {
	Mode Mode
	K    int
	RNG  *rng.Source

	// WarnShortMarkov, if non-nil, is invoked every time Markov mode
	// shuffles a sequence shorter than minMarkovWarnSize.
	WarnShortMarkov func()
}

// Shuffle returns a new byte slice of the same length as data, shuffled
// according to opts.
func Shuffle(data []byte, opts Options) ([]byte, error) {
	if opts.RNG == nil {
		return nil, errors.New("shuffle: an RNG source is required")
	}
	switch opts.Mode {
	case FisherYates:
		return fisherYates(data, opts.RNG), nil
	case LinearBlock:
		return linearBlock(data, opts.K, opts.RNG)
	case Markov:
		return markov(data, opts.K, opts.RNG, opts.WarnShortMarkov)
	case Eulerian:
		return eulerian(data, opts.K, opts.RNG)
	default:
		return nil, errors.Errorf("shuffle: unknown mode %d", opts.Mode)
	}
}

// fisherYates performs the classical unbiased in-place character
// shuffle.
func fisherYates(data []byte, r *rng.Source) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
