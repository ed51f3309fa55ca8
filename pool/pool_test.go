package pool

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scan"
	"github.com/yamscan/yamscan/scoredist"
)

func TestBoundsCoverEveryMotifExactlyOnce(t *testing.T) {
	const nMotifs, nWorkers = 17, 4
	covered := make([]int, nMotifs)
	for w := 0; w < nWorkers; w++ {
		start, end := Bounds(w, nMotifs, nWorkers)
		for i := start; i < end; i++ {
			covered[i]++
		}
	}
	for i, c := range covered {
		if c != 1 {
			t.Errorf("motif %d covered %d times, want 1", i, c)
		}
	}
}

func TestBoundsMatchPartitionFormula(t *testing.T) {
	const nMotifs, nWorkers = 10, 3
	for i := 0; i < nMotifs; i++ {
		w := Partition(i, nMotifs, nWorkers)
		start, end := Bounds(w, nMotifs, nWorkers)
		if i < start || i >= end {
			t.Errorf("motif %d assigned to worker %d but Bounds gives [%d,%d)", i, w, start, end)
		}
	}
}

type fakeSink struct {
	mu   sync.Mutex
	hits map[string]int
}

func (f *fakeSink) Emit(workerID int, motifName string, hits []scan.Hit) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hits == nil {
		f.hits = make(map[string]int)
	}
	f.hits[motifName] = len(hits)
}

func (f *fakeSink) Progress(done, total int) {}

func buildMotifs(t *testing.T, n int) []*motif.Motif {
	t.Helper()
	var ms []*motif.Motif
	for i := 0; i < n; i++ {
		m, err := motif.BuildConsensus("ACGT", motif.UniformBackground, motif.DefaultPseudocount)
		if err != nil {
			t.Fatalf("BuildConsensus: %v", err)
		}
		m.Name = "m"
		ms = append(ms, m)
	}
	return ms
}

func TestRunCallsWorkForEveryMotif(t *testing.T) {
	motifs := buildMotifs(t, 9)
	sink := &fakeSink{}
	var calls int32Counter
	err := Run(motifs, 3, sink, func(scratch *scoredist.Scratch, m *motif.Motif) ([]scan.Hit, error) {
		calls.inc()
		return make([]scan.Hit, 1), nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls.get() != len(motifs) {
		t.Errorf("work called %d times, want %d", calls.get(), len(motifs))
	}
}

func TestRunAggregatesFirstError(t *testing.T) {
	motifs := buildMotifs(t, 5)
	sink := &fakeSink{}
	sentinel := errors.New("boom")
	err := Run(motifs, 2, sink, func(scratch *scoredist.Scratch, m *motif.Motif) ([]scan.Hit, error) {
		return nil, sentinel
	})
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
}

type int32Counter struct {
	mu sync.Mutex
	n  int
}

func (c *int32Counter) inc() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *int32Counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
