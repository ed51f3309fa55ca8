package shuffle

import (
	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/alphabet"
	"github.com/yamscan/yamscan/rng"
)

// eulerian preserves the exact k-mer composition of data via a random
// Eulerian trail walk over the de Bruijn graph whose vertices are
// (k-1)-mers and whose edges are k-mers, per spec 4.4's six-step
// algorithm (a terminal-rooted, Wilson's-algorithm style random
// arborescence construction followed by a greedy-with-reserved-exit
// trail walk).
func eulerian(data []byte, k int, r *rng.Source) ([]byte, error) {
	n := len(data)
	if k < 1 {
		return nil, errors.Errorf("eulerian shuffle: k must be >= 1, got %d", k)
	}
	if n < k {
		return canonicalize(data), nil
	}
	if n == k {
		return canonicalize(data), nil
	}

	numKmers := n - k + 1
	numVerts := pow5(k - 1)
	counts := make([]int32, numVerts*alphabet.NumRows)
	for i := 0; i < numKmers; i++ {
		id := encodeKmer(data, i, k)
		counts[id]++
	}

	// Step 2: fix the final edge of the output to be the input's last
	// k-mer, removing it from the general pool, and mark its prefix
	// vertex (where the trail over the remaining edges must end, right
	// before that fixed edge) as already routed.
	lastKmerID := encodeKmer(data, n-k, k)
	lastBase := lastKmerID % alphabet.NumRows
	counts[lastKmerID]--
	terminal := prefixVertex(lastKmerID)

	outDegree := make([]int32, numVerts)
	for v := 0; v < numVerts; v++ {
		base := v * alphabet.NumRows
		for b := 0; b < alphabet.NumRows; b++ {
			outDegree[v] += counts[base+b]
		}
	}

	routed := make([]bool, numVerts)
	routed[terminal] = true
	exitEdge := make([]int, numVerts)
	for v := range exitEdge {
		exitEdge[v] = -1
	}

	// Step 3 and 4: every vertex with outgoing edges that isn't yet
	// routed performs a loop-erased random walk toward the routed set,
	// recording the edge taken out of each vertex it passes through.
	// Overwriting exitEdge[cur] on every pass implements loop erasure:
	// only the last edge chosen before the walk finally lands in the
	// routed set survives.
	for v := 0; v < numVerts; v++ {
		if routed[v] || outDegree[v] == 0 {
			continue
		}
		var path []int
		cur := v
		for !routed[cur] {
			b, err := pickWeighted(counts, cur, r)
			if err != nil {
				return nil, errors.Wrapf(err, "eulerian shuffle: building arborescence at vertex %d", cur)
			}
			exitEdge[cur] = b
			path = append(path, cur)
			cur = (cur*alphabet.NumRows + b) % numVerts
		}
		for _, p := range path {
			routed[p] = true
		}
	}

	// Step 5: reserve each vertex's designated exit edge for last use.
	for v := 0; v < numVerts; v++ {
		if exitEdge[v] >= 0 {
			counts[v*alphabet.NumRows+exitEdge[v]]--
		}
	}

	// Step 6: walk the trail. The first k-1 characters are copied
	// verbatim (canonicalized); each subsequent step either draws from
	// the vertex's remaining general pool or, once that is exhausted,
	// takes its reserved exit edge. The very last step is the edge fixed
	// in step 2.
	out := make([]byte, n)
	for i := 0; i < k-1; i++ {
		out[i] = baseLetters[alphabet.Index(data[i])]
	}
	cur := encodeKmer(out, 0, k-1)
	steps := n - (k - 1)
	for step := 0; step < steps; step++ {
		var b int
		switch {
		case step == steps-1:
			b = lastBase
		case hasRemaining(counts, cur):
			var err error
			b, err = pickWeighted(counts, cur, r)
			if err != nil {
				return nil, errors.Wrapf(err, "eulerian shuffle: walking trail at step %d", step)
			}
			counts[cur*alphabet.NumRows+b]--
		case exitEdge[cur] >= 0:
			b = exitEdge[cur]
		default:
			return nil, errors.Errorf("eulerian shuffle: vertex %d has no edge to leave by at step %d", cur, step)
		}
		out[k-1+step] = baseLetters[b]
		cur = (cur*alphabet.NumRows + b) % numVerts
	}
	return out, nil
}

func hasRemaining(counts []int32, vertex int) bool {
	base := vertex * alphabet.NumRows
	for b := 0; b < alphabet.NumRows; b++ {
		if counts[base+b] > 0 {
			return true
		}
	}
	return false
}
