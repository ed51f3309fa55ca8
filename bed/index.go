// Package bed parses BED interval files and resolves the sequence names
// they reference against a name→index hash table built from the loaded
// sequence list.
package bed

import (
	farm "github.com/dgryski/go-farm"
)

// numShards mirrors the sharding scheme grailbio's kmer index uses for
// name-keyed lookup tables: the low bits of a fast string hash pick a
// shard, keeping each shard's map small.
const numShards = 256

// Index maps a sequence name to its position in the in-order sequence
// list. It is built once, after all sequences are read, and is read-only
// for the remainder of the run.
type Index struct {
	shards [numShards]map[string]int
}

// NewIndex builds a name→index lookup table from names in sequence order.
func NewIndex(names []string) *Index {
	idx := &Index{}
	for i := range idx.shards {
		idx.shards[i] = make(map[string]int)
	}
	for i, name := range names {
		idx.put(name, i)
	}
	return idx
}

func (x *Index) shardFor(name string) map[string]int {
	h := farm.Hash64([]byte(name))
	return x.shards[h%numShards]
}

func (x *Index) put(name string, i int) {
	x.shardFor(name)[name] = i
}

// Lookup returns the sequence index for name, and whether it was found.
func (x *Index) Lookup(name string) (int, bool) {
	i, ok := x.shardFor(name)[name]
	return i, ok
}

// Has reports whether name is present, without retrieving its index.
func (x *Index) Has(name string) bool {
	_, ok := x.Lookup(name)
	return ok
}
