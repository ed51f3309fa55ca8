package shuffle

import (
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/rng"
)

// linearBlock partitions data into non-overlapping blocks of k
// characters (a trailing short block, if any, is kept as its own unit)
// and Fisher-Yates shuffles the block order. K-mer counts are only
// approximately preserved, but the operation is O(n).
func linearBlock(data []byte, k int, r *rng.Source) ([]byte, error) {
	if k < 1 {
		return nil, errors.Errorf("linear block shuffle: k must be >= 1, got %d", k)
	}
	n := len(data)
	nBlocks := (n + k - 1) / k
	blocks := make([][]byte, nBlocks)
	for i := 0; i < nBlocks; i++ {
		start := i * k
		end := start + k
		if end > n {
			end = n
		}
		blocks[i] = data[start:end]
	}
	r.Shuffle(nBlocks, func(i, j int) { blocks[i], blocks[j] = blocks[j], blocks[i] })
	out := make([]byte, 0, n)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out, nil
}
