package dedup

import "testing"

func TestResolveAppendsSuffixOnCollision(t *testing.T) {
	c := NewChecker()
	first, err := c.Resolve("motifA")
	if err != nil || first != "motifA" {
		t.Fatalf("Resolve(first) = %q, %v", first, err)
	}
	second, err := c.Resolve("motifA")
	if err != nil {
		t.Fatalf("Resolve(second): %v", err)
	}
	if second != "motifA__N1" {
		t.Errorf("Resolve(second) = %q, want motifA__N1", second)
	}
	third, err := c.Resolve("motifA")
	if err != nil {
		t.Fatalf("Resolve(third): %v", err)
	}
	if third != "motifA__N2" {
		t.Errorf("Resolve(third) = %q, want motifA__N2", third)
	}
}

func TestResolveLeavesUniqueNamesUnchanged(t *testing.T) {
	c := NewChecker()
	for _, name := range []string{"a", "b", "c"} {
		got, err := c.Resolve(name)
		if err != nil || got != name {
			t.Errorf("Resolve(%q) = %q, %v", name, got, err)
		}
	}
}

func TestAbortDefersDuplicateErrorToFlush(t *testing.T) {
	c := NewChecker()
	if err := c.Abort("x"); err != nil {
		t.Fatalf("Abort(first): %v", err)
	}
	if err := c.Abort("x"); err != nil {
		// Below the reporting cap, Abort accumulates silently.
		t.Fatalf("Abort(second) returned early: %v", err)
	}
	if err := c.Flush(); err == nil {
		t.Fatal("expected Flush to report the accumulated duplicate")
	}
}

func TestAbortStopsAtOffenderCap(t *testing.T) {
	c := NewChecker()
	for i := 0; i < maxReportedOffenders-1; i++ {
		if err := c.Abort("dup"); err != nil {
			t.Fatalf("Abort(%d): %v", i, err)
		}
	}
	if err := c.Abort("dup"); err == nil {
		t.Fatal("expected Abort to return an error once the offender cap is reached")
	}
}
