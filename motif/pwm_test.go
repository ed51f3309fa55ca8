package motif

import (
	"testing"

	"github.com/yamscan/yamscan/alphabet"
)

func TestBuildConsensusMaxScoreMatchesBestWindow(t *testing.T) {
	m, err := BuildConsensus("ACGT", UniformBackground, DefaultPseudocount)
	if err != nil {
		t.Fatalf("BuildConsensus: %v", err)
	}
	if m.Size != 4 {
		t.Fatalf("Size = %d, want 4", m.Size)
	}
	var sum int64
	for i, c := range "ACGT" {
		idx := alphabet.Index(byte(c))
		sum += int64(m.PWM[i][idx])
	}
	if sum != m.MaxScore {
		t.Errorf("sum of literal-base scores = %d, want MaxScore = %d", sum, m.MaxScore)
	}
}

func TestBuildReverseComplementIsInvolution(t *testing.T) {
	m, err := BuildConsensus("ACGTACGT", UniformBackground, DefaultPseudocount)
	if err != nil {
		t.Fatalf("BuildConsensus: %v", err)
	}
	// RC of RC should reproduce the original PWM.
	rc := &Motif{Size: m.Size, PWM: m.PWMRC, PWMRC: make([][5]int32, m.Size)}
	buildReverseComplement(rc)
	for i := range m.PWM {
		if rc.PWMRC[i] != m.PWM[i] {
			t.Errorf("position %d: RC(RC(PWM)) = %v, want %v", i, rc.PWMRC[i], m.PWM[i])
		}
	}
}

func TestAmbiguityRowPinned(t *testing.T) {
	m, err := BuildConsensus("ACGT", UniformBackground, DefaultPseudocount)
	if err != nil {
		t.Fatalf("BuildConsensus: %v", err)
	}
	for i := 0; i < m.Size; i++ {
		if m.PWM[i][alphabet.N] != AmbiguitySentinel {
			t.Errorf("position %d: ambiguity row = %d, want %d", i, m.PWM[i][alphabet.N], AmbiguitySentinel)
		}
		if m.PWMRC[i][alphabet.N] != AmbiguitySentinel {
			t.Errorf("RC position %d: ambiguity row = %d, want %d", i, m.PWMRC[i][alphabet.N], AmbiguitySentinel)
		}
	}
}

func TestNormalizeRowFatalOutOfRange(t *testing.T) {
	row := [alphabet.NumBases]float64{0.5, 0.5, 0.5, 0.5} // sums to 2.0
	if _, err := NormalizeRow(&row); err == nil {
		t.Error("expected error for row summing far from 1")
	}
}

func TestNormalizeRowWarnRescale(t *testing.T) {
	row := [alphabet.NumBases]float64{0.26, 0.26, 0.26, 0.26} // sums to 1.04
	rescaled, err := NormalizeRow(&row)
	if err != nil {
		t.Fatalf("NormalizeRow: %v", err)
	}
	if !rescaled {
		t.Error("expected rescale for row off by > 0.02")
	}
	sum := row[0] + row[1] + row[2] + row[3]
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("rescaled sum = %f, want ~1", sum)
	}
}
