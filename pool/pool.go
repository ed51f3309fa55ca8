// Package pool partitions a motif list across a fixed number of worker
// goroutines and runs a scan over every sequence for each worker's
// share of motifs, aggregating output and errors behind a single mutex.
package pool

import (
	"sync"

	"github.com/grailbio/base/errors"
	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scan"
	"github.com/yamscan/yamscan/scoredist"
)

// Partition splits n motifs across workers workers using the formula
// floor(i/n_motifs * n_workers), so worker w owns motifs
// [Partition(w), Partition(w+1)).
func Partition(i, nMotifs, nWorkers int) int {
	return (i * nWorkers) / nMotifs
}

// Bounds returns the half-open [start, end) range of motif indices
// worker w owns, out of nMotifs motifs split across nWorkers workers.
func Bounds(w, nMotifs, nWorkers int) (start, end int) {
	start = boundaryIndex(w, nMotifs, nWorkers)
	end = boundaryIndex(w+1, nMotifs, nWorkers)
	return start, end
}

// boundaryIndex returns the smallest motif index i for which
// Partition(i, nMotifs, nWorkers) >= w.
func boundaryIndex(w, nMotifs, nWorkers int) int {
	if w <= 0 {
		return 0
	}
	if w >= nWorkers {
		return nMotifs
	}
	lo, hi := 0, nMotifs
	for lo < hi {
		mid := (lo + hi) / 2
		if Partition(mid, nMotifs, nWorkers) < w {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Sink receives scan output; Emit and Progress are called with the
// pool's single mutex held, so implementations need no locking of their
// own.
type Sink interface {
	Emit(workerID int, motifName string, hits []scan.Hit)
	Progress(motifsDone, motifsTotal int)
}

// WorkerFunc scans every sequence against a single motif using the
// worker's private CDF scratch, returning the hits found. Run delivers
// them to the sink itself, under its own mutex, once work returns.
type WorkerFunc func(scratch *scoredist.Scratch, m *motif.Motif) (hits []scan.Hit, err error)

// Run partitions motifs across nWorkers goroutines, calling work once
// per motif with a scratch buffer private to that worker, and routes
// every Emit/Progress call through a single mutex shared by all
// workers. It returns the first error reported by any worker, after all
// workers have finished.
func Run(motifs []*motif.Motif, nWorkers int, sink Sink, work WorkerFunc) error {
	if nWorkers < 1 {
		nWorkers = 1
	}
	if nWorkers > len(motifs) {
		nWorkers = len(motifs)
	}
	if len(motifs) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs errors.Once
		wg   sync.WaitGroup
		done int
	)
	total := len(motifs)

	for w := 0; w < nWorkers; w++ {
		start, end := Bounds(w, len(motifs), nWorkers)
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(workerID, start, end int) {
			defer wg.Done()
			scratch := scoredist.NewScratch()
			for i := start; i < end; i++ {
				m := motifs[i]
				hits, err := work(scratch, m)
				mu.Lock()
				if err != nil {
					errs.Set(err)
				} else {
					sink.Emit(workerID, m.Name, hits)
				}
				done++
				sink.Progress(done, total)
				mu.Unlock()
			}
		}(w, start, end)
	}
	wg.Wait()
	return errs.Err()
}
