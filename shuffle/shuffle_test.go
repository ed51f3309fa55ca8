package shuffle

import (
	"sort"
	"testing"

	"github.com/yamscan/yamscan/rng"
)

func kmerCounts(t *testing.T, data []byte, k int) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	for i := 0; i+k <= len(data); i++ {
		counts[string(data[i:i+k])]++
	}
	return counts
}

func sortedBytes(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestFisherYatesPreservesLengthAndComposition(t *testing.T) {
	data := []byte("ACGTACGTACGTACGT")
	out, err := Shuffle(data, Options{Mode: FisherYates, RNG: rng.New(1)})
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if len(out) != len(data) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(data))
	}
	a, b := sortedBytes(data), sortedBytes(out)
	if string(a) != string(b) {
		t.Errorf("composition changed: %q vs %q", a, b)
	}
}

func TestLinearBlockPreservesLength(t *testing.T) {
	data := []byte("ACGTACGTACGTACGTACG")
	out, err := Shuffle(data, Options{Mode: LinearBlock, K: 3, RNG: rng.New(2)})
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if len(out) != len(data) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(data))
	}
}

func TestMarkovPreservesLengthAndPrefix(t *testing.T) {
	data := []byte("ACGTACGTACGTACGTACGTACGT")
	out, err := Shuffle(data, Options{Mode: Markov, K: 2, RNG: rng.New(3)})
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if len(out) != len(data) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(data))
	}
	if string(out[:1]) != string(data[:1]) {
		t.Errorf("k-1 prefix not copied verbatim: got %q, want %q", out[:1], data[:1])
	}
}

func TestMarkovWarnsOnShortSequence(t *testing.T) {
	data := []byte("ACGTACGT")
	var warned bool
	_, err := Shuffle(data, Options{Mode: Markov, K: 2, RNG: rng.New(4), WarnShortMarkov: func() { warned = true }})
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if !warned {
		t.Error("expected a short-sequence warning for Markov mode")
	}
}

func TestEulerianPreservesExactKmerComposition(t *testing.T) {
	data := []byte("ACGTACGGTCAGTCAGTACGGATCGATCGATGCATGCTAGCTAGCATCG")
	for _, k := range []int{2, 3, 4} {
		out, err := Shuffle(data, Options{Mode: Eulerian, K: k, RNG: rng.New(int64(k))})
		if err != nil {
			t.Fatalf("Shuffle(k=%d): %v", k, err)
		}
		if len(out) != len(data) {
			t.Fatalf("k=%d: len(out) = %d, want %d", k, len(out), len(data))
		}
		want := kmerCounts(t, data, k)
		got := kmerCounts(t, out, k)
		if len(want) != len(got) {
			t.Fatalf("k=%d: distinct k-mer count differs: %d vs %d", k, len(want), len(got))
		}
		for kmer, n := range want {
			if got[kmer] != n {
				t.Errorf("k=%d: k-mer %q count = %d, want %d", k, kmer, got[kmer], n)
			}
		}
	}
}

func TestEulerianPreservesLastKmer(t *testing.T) {
	data := []byte("ACGTACGGTCAGTCAGTACGGATCGATCGATGCATGCTAGCTAGCATCG")
	const k = 3
	out, err := Shuffle(data, Options{Mode: Eulerian, K: k, RNG: rng.New(99)})
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	wantLast := string(data[len(data)-k:])
	gotLast := string(out[len(out)-k:])
	if wantLast != gotLast {
		t.Errorf("trailing k-mer = %q, want %q", gotLast, wantLast)
	}
}

func TestFingerprintMatchesForKmerPreservingShuffle(t *testing.T) {
	data := []byte("ACGTACGGTCAGTCAGTACGGATCGATCGATGCATGCTAGCTAGCATCG")
	const k = 3
	out, err := Shuffle(data, Options{Mode: Eulerian, K: k, RNG: rng.New(5)})
	if err != nil {
		t.Fatalf("Shuffle: %v", err)
	}
	if Fingerprint(data, k) != Fingerprint(out, k) {
		t.Error("expected fingerprints to match for a k-mer-preserving shuffle")
	}
}
