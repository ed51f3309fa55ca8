package bed

import (
	"strings"
	"testing"
)

const bedSample = `# comment
browser position chr1:1-100
track name=foo
chr1	10	20
chr2	0	15	region2	0	-
`

func TestParseSkipsCommentsAndHeaders(t *testing.T) {
	regions, err := Parse(strings.NewReader(bedSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("len(regions) = %d, want 2 (the three comment/header lines must be skipped)", len(regions))
	}
}

func TestParseRejectsStartGEEnd(t *testing.T) {
	_, err := Parse(strings.NewReader("chr1\t30\t25\n"))
	if err == nil {
		t.Fatal("expected error for start >= end")
	}
}

func TestParseStrandAndName(t *testing.T) {
	regions, err := Parse(strings.NewReader("chr2\t0\t15\tregion2\t0\t-\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(regions) != 1 {
		t.Fatalf("len(regions) = %d, want 1", len(regions))
	}
	r := regions[0]
	if r.Name != "region2" || r.Strand != '-' {
		t.Errorf("region = %+v, want Name=region2 Strand=-", r)
	}
}

func TestParseRejectsBadStrand(t *testing.T) {
	_, err := Parse(strings.NewReader("chr1\t0\t10\tname\t0\tX\n"))
	if err == nil {
		t.Fatal("expected error for invalid strand field")
	}
}

func TestResolveFatalOnUnknownSequence(t *testing.T) {
	regions, err := Parse(strings.NewReader("chrUnknown\t0\t10\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	idx := NewIndex([]string{"chr1", "chr2"})
	if err := Resolve(regions, idx); err == nil {
		t.Fatal("expected error for unresolved sequence name")
	}
}

func TestTrimClipsEndAndWarns(t *testing.T) {
	regions, err := Parse(strings.NewReader("chr1\t0\t100\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	idx := NewIndex([]string{"chr1"})
	if err := Resolve(regions, idx); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := Trim(regions, []int{50}, false); err != nil {
		t.Fatalf("Trim: %v", err)
	}
	if regions[0].End != 50 {
		t.Errorf("End = %d, want 50", regions[0].End)
	}
}

func TestTrimFatalWhenEmptyAfterClip(t *testing.T) {
	regions, err := Parse(strings.NewReader("chr1\t40\t100\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	idx := NewIndex([]string{"chr1"})
	if err := Resolve(regions, idx); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := Trim(regions, []int{40}, false); err == nil {
		t.Fatal("expected error: range is empty after trimming")
	}
}

func TestRequireUniqueSeqNames(t *testing.T) {
	if err := RequireUniqueSeqNames([]string{"a", "b", "c"}); err != nil {
		t.Errorf("unexpected error for unique names: %v", err)
	}
	if err := RequireUniqueSeqNames([]string{"a", "b", "a"}); err == nil {
		t.Fatal("expected error for duplicate name")
	}
}
