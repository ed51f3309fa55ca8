package shuffle

import (
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
	"github.com/yamscan/yamscan/rng"
)

// markov builds a full k-mer count table from data and generates a new
// sequence of the same length by drawing each base from the row of the
// preceding (k-1)-mer's cumulative distribution. The first k-1
// characters are copied verbatim, after canonicalization through the
// alphabet codec.
func markov(data []byte, k int, r *rng.Source, warnShort func()) ([]byte, error) {
	n := len(data)
	if k < 1 {
		return nil, errors.Errorf("markov shuffle: k must be >= 1, got %d", k)
	}
	if n < k {
		return canonicalize(data), nil
	}
	if n < minMarkovWarnSize && warnShort != nil {
		warnShort()
	}

	numVerts := pow5(k - 1)
	counts := make([]int32, numVerts*alphabet.NumRows)
	for i := 0; i+k <= n; i++ {
		id := encodeKmer(data, i, k)
		counts[id]++
	}

	out := make([]byte, n)
	for i := 0; i < k-1 && i < n; i++ {
		b := alphabet.Index(data[i])
		out[i] = baseLetters[b]
	}
	// For k==1 there is no preceding context: vertex is always 0, and
	// every base is drawn from the same unconditional count row.
	vertex := encodeKmer(out, 0, k-1)
	for i := k - 1; i < n; i++ {
		b, err := pickWeighted(counts, vertex, r)
		if err != nil {
			return nil, errors.Wrapf(err, "markov shuffle: position %d", i)
		}
		out[i] = baseLetters[b]
		if k > 1 {
			vertex = (vertex*alphabet.NumRows + b) % numVerts
		}
	}
	return out, nil
}

// canonicalize rewrites data through the alphabet codec so the output
// only ever contains the canonical letters this package emits.
func canonicalize(data []byte) []byte {
	out := make([]byte, len(data))
	for i, c := range data {
		out[i] = baseLetters[alphabet.Index(c)]
	}
	return out
}

// pickWeighted draws a base index in [0, alphabet.NumRows) from vertex's
// count row, weighted by remaining counts. It errors if the row is
// entirely exhausted.
func pickWeighted(counts []int32, vertex int, r *rng.Source) (int, error) {
	base := vertex * alphabet.NumRows
	total := 0
	for b := 0; b < alphabet.NumRows; b++ {
		total += int(counts[base+b])
	}
	if total <= 0 {
		return 0, errors.New("no outgoing k-mers remain for this context")
	}
	draw := r.Intn(total)
	cum := 0
	for b := 0; b < alphabet.NumRows; b++ {
		cum += int(counts[base+b])
		if draw < cum {
			return b, nil
		}
	}
	return alphabet.NumRows - 1, nil
}
