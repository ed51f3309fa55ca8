package shuffle

import "github.com/yamscan/yamscan/alphabet"

// pow5 returns 5^n for the small non-negative exponents this package
// deals with (k rarely exceeds single digits).
func pow5(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= alphabet.NumRows
	}
	return p
}

// encodeKmer packs length symbols starting at data[start] into a single
// base-5 integer, most significant symbol first.
func encodeKmer(data []byte, start, length int) int {
	id := 0
	for i := 0; i < length; i++ {
		id = id*alphabet.NumRows + int(alphabet.Index(data[start+i]))
	}
	return id
}

// prefixVertex returns the (k-1)-length prefix vertex of a k-mer id.
func prefixVertex(kmerID int) int { return kmerID / alphabet.NumRows }

// suffixVertex returns the (k-1)-length suffix vertex of a k-mer id,
// given the number of vertices (5^(k-1)).
func suffixVertex(kmerID, numVerts int) int { return kmerID % numVerts }
