package types

// Codec fixes a type's on-disk width and its little-endian encoding.
// storage/page.BucketPage is generic over (K, V Codec) so that the
// extendible hash table can be monomorphized for integer keys as well as
// the fixed-width generic keys below (spec.md §9's "4, 8, 16, 32, 64-byte
// generic keys; integer keys"), without ever guessing host endianness when
// laying out a page.
type Codec[T any] interface {
	// Size is the fixed number of bytes T occupies on disk.
	Size() int
	// Encode writes v's encoding into dst, which is exactly Size() bytes.
	Encode(dst []byte, v T)
	// Decode reads a T back out of exactly Size() bytes.
	Decode(src []byte) T
}

// Comparator is a pure total order over K — never a latch (spec.md §9).
type Comparator[K any] func(a, b K) int

// HashFunc downcasts a key to the 32-bit hash the directory indexes with.
type HashFunc[K any] func(k K) uint32
