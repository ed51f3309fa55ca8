package shuffle

import (
	"encoding/binary"

	"github.com/minio/highwayhash"
)

// fingerprintKey is a fixed zero key: the fingerprint is used only for
// equality checks within a single process run, not as a cryptographic
// commitment, so a stable constant key is sufficient.
var fingerprintKey = make([]byte, highwayhash.Size)

// Fingerprint returns a keyed hash of data's k-mer count table, used to
// cheaply assert that a shuffled sequence preserves the original's
// k-mer composition without an O(n) table comparison on every call.
// Two sequences with the same fingerprint for a given k have, with
// overwhelming probability, identical k-mer counts.
func Fingerprint(data []byte, k int) [highwayhash.Size]byte {
	numVerts := pow5(k)
	counts := make([]int32, numVerts)
	for i := 0; i+k <= len(data); i++ {
		counts[encodeKmer(data, i, k)]++
	}
	buf := make([]byte, 4*len(counts))
	for i, c := range counts {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(c))
	}
	return highwayhash.Sum(buf, fingerprintKey)
}
