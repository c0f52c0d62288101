// Package hash implements the extendible hash table container spec.md §4
// describes: a directory page of bucket pointers plus local depths, and a
// set of fixed-capacity bucket pages reached through the directory's slots,
// all resident through a buffer pool.
package hash

import (
	"github.com/hash-roar/15445/types"
	"github.com/spaolacci/murmur3"
)

// hashKey hashes a key's encoded bytes with 64-bit murmur3, the same
// non-cryptographic hash the teacher's linear-probe table uses, and keeps
// the low 32 bits of the result since the directory only ever needs the
// low MaxGlobalDepth bits.
func hashKey[K comparable](key K, codec types.Codec[K]) uint32 {
	buf := make([]byte, codec.Size())
	codec.Encode(buf, key)
	sum := murmur3.Sum64(buf)
	return uint32(sum)
}

// keyToDirectoryIndex applies the low-bits mask spec.md §4.5 specifies.
func keyToDirectoryIndex(h uint32, mask uint32) uint32 {
	return h & mask
}
