package motif

import (
	"strings"
	"testing"
)

const memeSample = `MEME version 4

ALPHABET= ACGT
strands: + -

Background letter frequencies
A 0.3 C 0.2 G 0.2 T 0.3

MOTIF JUN
letter-probability matrix: alength= 4 w= 4 nsites= 20
0.8 0.1 0.05 0.05
0.05 0.8 0.1 0.05
0.05 0.05 0.8 0.1
0.1 0.05 0.05 0.8
`

func TestParseMEME(t *testing.T) {
	res, err := Parse(strings.NewReader(memeSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Format != FormatMEME {
		t.Fatalf("Format = %v, want MEME", res.Format)
	}
	if len(res.Motifs) != 1 || res.Motifs[0].Name != "JUN" {
		t.Fatalf("Motifs = %+v", res.Motifs)
	}
	if res.Motifs[0].NSites != 20 {
		t.Errorf("NSites = %v, want 20", res.Motifs[0].NSites)
	}
	if res.Background == nil {
		t.Fatal("expected background from MEME file")
	}
}

func TestParseMEMEProteinRejected(t *testing.T) {
	sample := "MEME version 4\n\nALPHABET= ACDEFGHIKLMNPQRSTVWY\n"
	_, err := Parse(strings.NewReader(sample))
	if err == nil {
		t.Fatal("expected error for protein alphabet")
	}
}

const homerSample = `>ACGTAC	JUN/Jaspar	6.5
0.8	0.1	0.05	0.05
0.05	0.8	0.1	0.05
0.05	0.05	0.8	0.1
0.1	0.05	0.05	0.8
`

func TestParseHOMER(t *testing.T) {
	res, err := Parse(strings.NewReader(homerSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Format != FormatHOMER {
		t.Fatalf("Format = %v, want HOMER", res.Format)
	}
	if len(res.Motifs) != 1 || len(res.Motifs[0].PPM) != 4 {
		t.Fatalf("Motifs = %+v", res.Motifs)
	}
}

const jasparSample = `>MA0099.1 JUN
A [ 3 1 0 5 ]
C [ 1 3 0 1 ]
G [ 1 1 9 1 ]
T [ 5 5 1 3 ]
`

func TestParseJASPAR(t *testing.T) {
	res, err := Parse(strings.NewReader(jasparSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Format != FormatJASPAR {
		t.Fatalf("Format = %v, want JASPAR", res.Format)
	}
	if len(res.Motifs) != 1 || len(res.Motifs[0].PPM) != 4 {
		t.Fatalf("Motifs = %+v", res.Motifs)
	}
	sum := 0.0
	for _, v := range res.Motifs[0].PPM[0] {
		sum += v
	}
	if sum < 0.99 || sum > 1.01 {
		t.Errorf("column 0 sum = %f, want ~1", sum)
	}
}

const hocomocoSample = `>JUN_HUMAN.H11MO.0.A
10 1 0 9
1 15 0 4
0 1 18 1
5 5 1 9
`

func TestParseHOCOMOCO(t *testing.T) {
	res, err := Parse(strings.NewReader(hocomocoSample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Format != FormatHOCOMOCO {
		t.Fatalf("Format = %v, want HOCOMOCO", res.Format)
	}
	if len(res.Motifs) != 1 || len(res.Motifs[0].PPM) != 4 {
		t.Fatalf("Motifs = %+v", res.Motifs)
	}
}

func TestParseUnrecognized(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not a motif file\n"))
	if err == nil {
		t.Fatal("expected error for unrecognized format")
	}
}
