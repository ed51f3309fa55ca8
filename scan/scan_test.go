package scan

import (
	"testing"

	"github.com/yamscan/yamscan/motif"
	"github.com/yamscan/yamscan/scoredist"
)

func buildThresh0Motif(t *testing.T, consensus string) *motif.Motif {
	t.Helper()
	m, err := motif.BuildConsensus(consensus, motif.UniformBackground, motif.DefaultPseudocount)
	if err != nil {
		t.Fatalf("BuildConsensus: %v", err)
	}
	scratch := scoredist.NewScratch()
	if err := scoredist.Build(m, motif.UniformBackground, 0.5, scratch, scoredist.Options{Thresh0: true}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return m
}

func TestSequenceFindsExactMatch(t *testing.T) {
	m := buildThresh0Motif(t, "ACGT")
	hits := Sequence(nil, m, 0, []byte("TTACGTTT"), Options{Orientation: ForwardOnly})
	found := false
	for _, h := range hits {
		if h.Start == 2 && h.End == 6 && h.Strand == '+' {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a forward hit at [2,6), got %+v", hits)
	}
}

func TestSequenceDualReportsBothStrands(t *testing.T) {
	m := buildThresh0Motif(t, "ACGT")
	hits := Sequence(nil, m, 0, []byte("ACGT"), Options{Orientation: Dual})
	var plus, minus bool
	for _, h := range hits {
		if h.Strand == '+' {
			plus = true
		}
		if h.Strand == '-' {
			minus = true
		}
	}
	if !plus {
		t.Error("expected a forward-strand hit")
	}
	if !minus {
		t.Error("expected a reverse-strand hit: RC(ACGT) == ACGT, which scores the same as the forward strand")
	}
}

func TestSequenceRespectsRegionRestriction(t *testing.T) {
	m := buildThresh0Motif(t, "ACGT")
	data := []byte("ACGTACGTACGT")
	hits := Sequence(nil, m, 0, data, Options{
		Orientation: ForwardOnly,
		Restricted:  true,
		RegionStart: 8,
		RegionEnd:   12,
	})
	for _, h := range hits {
		if h.Start < 8 || h.End > 12 {
			t.Errorf("hit %+v escaped restricted region [8,12)", h)
		}
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit inside the restricted region")
	}
}

func TestSequenceSkipsTooShortRegion(t *testing.T) {
	m := buildThresh0Motif(t, "ACGT")
	hits := Sequence(nil, m, 0, []byte("AC"), Options{Orientation: ForwardOnly})
	if len(hits) != 0 {
		t.Errorf("expected no hits for a sequence shorter than the motif, got %+v", hits)
	}
}

func TestSequenceNonScoringMotifYieldsNoHits(t *testing.T) {
	m := buildThresh0Motif(t, "ACGT")
	m.NonScoring = true
	hits := Sequence(nil, m, 0, []byte("ACGTACGT"), Options{Orientation: Dual})
	if len(hits) != 0 {
		t.Errorf("expected no hits for a non-scoring motif, got %+v", hits)
	}
}

func TestSequenceMaskSkipsLowercase(t *testing.T) {
	m := buildThresh0Motif(t, "ACGT")
	hits := Sequence(nil, m, 0, []byte("acgt"), Options{Orientation: ForwardOnly, Mask: true})
	if len(hits) != 0 {
		t.Errorf("expected masking to suppress a lowercase-only match, got %+v", hits)
	}
}
