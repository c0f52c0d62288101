package page

import (
	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/types"
)

// BucketPage is a fixed-capacity (key, value) slot array plus the
// occupied/readable bitmaps spec.md §3/§4.4/§6 describe, laid directly
// over a frame's Data so that mutating it dirties exactly the bytes the
// buffer pool will write back — no separate serialize/deserialize pass.
//
// Bit ordering is big-endian within a byte (bit 7 = slot 0 of that byte),
// fixed for on-disk compatibility (spec.md §4.4).
type BucketPage[K comparable, V comparable] struct {
	data     *Data
	keyCodec types.Codec[K]
	valCodec types.Codec[V]
	cmp      types.Comparator[K]
	valCmp   types.Comparator[V]
	capacity int
	slotSize int
	occBytes int
}

// BucketCapacity returns the number of (key, value) slots that fit in one
// page given the two codecs' widths: the largest N such that
// N*(keySize+valSize) + 2*ceil(N/8) <= PageSize.
func BucketCapacity(keySize, valSize int) int {
	slot := keySize + valSize
	n := 0
	for {
		occBytes := (n + 1 + 7) / 8
		if (n+1)*slot+2*occBytes > common.PageSize {
			return n
		}
		n++
	}
}

// NewBucketPage wraps data as a BucketPage view using the given codecs and
// comparators. It does not initialize data — callers creating a fresh
// bucket must start from a zeroed frame (buffer pool's NewPage already
// zeroes it), which correctly reads as "no slot occupied".
func NewBucketPage[K comparable, V comparable](
	data *Data,
	keyCodec types.Codec[K],
	valCodec types.Codec[V],
	cmp types.Comparator[K],
	valCmp types.Comparator[V],
) *BucketPage[K, V] {
	capacity := BucketCapacity(keyCodec.Size(), valCodec.Size())
	return &BucketPage[K, V]{
		data:     data,
		keyCodec: keyCodec,
		valCodec: valCodec,
		cmp:      cmp,
		valCmp:   valCmp,
		capacity: capacity,
		slotSize: keyCodec.Size() + valCodec.Size(),
		occBytes: (capacity + 7) / 8,
	}
}

func (b *BucketPage[K, V]) Capacity() int { return b.capacity }

func bitMask(slot int) (byteIdx int, mask byte) {
	return slot / 8, 1 << (7 - uint(slot%8))
}

func (b *BucketPage[K, V]) getBit(base []byte, slot int) bool {
	idx, mask := bitMask(slot)
	return base[idx]&mask != 0
}

func (b *BucketPage[K, V]) setBit(base []byte, slot int) {
	idx, mask := bitMask(slot)
	base[idx] |= mask
}

func (b *BucketPage[K, V]) clearBit(base []byte, slot int) {
	idx, mask := bitMask(slot)
	base[idx] &^= mask
}

func (b *BucketPage[K, V]) occupiedBits() []byte { return b.data[0:b.occBytes] }
func (b *BucketPage[K, V]) readableBits() []byte { return b.data[b.occBytes : 2*b.occBytes] }

func (b *BucketPage[K, V]) slotOffset(slot int) int {
	return 2*b.occBytes + slot*b.slotSize
}

// IsOccupied reports whether slot has ever been written to since the page
// was created (a scan-stop hint; monotonic until re-initialization).
func (b *BucketPage[K, V]) IsOccupied(slot int) bool {
	return b.getBit(b.occupiedBits(), slot)
}

// IsReadable reports whether slot currently holds a live entry.
func (b *BucketPage[K, V]) IsReadable(slot int) bool {
	return b.getBit(b.readableBits(), slot)
}

func (b *BucketPage[K, V]) KeyAt(slot int) K {
	off := b.slotOffset(slot)
	return b.keyCodec.Decode(b.data[off : off+b.keyCodec.Size()])
}

func (b *BucketPage[K, V]) ValueAt(slot int) V {
	off := b.slotOffset(slot) + b.keyCodec.Size()
	return b.valCodec.Decode(b.data[off : off+b.valCodec.Size()])
}

func (b *BucketPage[K, V]) setAt(slot int, key K, value V) {
	off := b.slotOffset(slot)
	b.keyCodec.Encode(b.data[off:off+b.keyCodec.Size()], key)
	b.valCodec.Encode(b.data[off+b.keyCodec.Size():off+b.slotSize], value)
}

// GetValue appends every readable slot's value whose key compares equal to
// key, returning true iff it found at least one (spec.md §4.4).
func (b *BucketPage[K, V]) GetValue(key K, results *[]V) bool {
	found := false
	for i := 0; i < b.capacity; i++ {
		if b.IsReadable(i) && b.cmp(key, b.KeyAt(i)) == 0 {
			*results = append(*results, b.ValueAt(i))
			found = true
		}
	}
	return found
}

// Insert writes (key, value) into the first non-readable slot found during
// a single scan of the bucket. It rejects an exact (key, value) duplicate
// and reports bucket-full by returning false when no slot was free
// (spec.md §4.4).
func (b *BucketPage[K, V]) Insert(key K, value V) bool {
	insertAt := -1
	for i := 0; i < b.capacity; i++ {
		if !b.IsReadable(i) {
			if insertAt == -1 {
				insertAt = i
			}
			continue
		}
		if b.cmp(key, b.KeyAt(i)) == 0 && b.valCmp(value, b.ValueAt(i)) == 0 {
			return false
		}
	}
	if insertAt == -1 {
		return false
	}
	b.setBit(b.occupiedBits(), insertAt)
	b.setBit(b.readableBits(), insertAt)
	b.setAt(insertAt, key, value)
	return true
}

// Remove clears the readable bit of the first slot matching (key, value)
// exactly. occupied is left untouched — its monotonic semantics are
// preserved (spec.md §4.4).
func (b *BucketPage[K, V]) Remove(key K, value V) bool {
	for i := 0; i < b.capacity; i++ {
		if b.IsReadable(i) && b.cmp(key, b.KeyAt(i)) == 0 && b.valCmp(value, b.ValueAt(i)) == 0 {
			b.clearBit(b.readableBits(), i)
			return true
		}
	}
	return false
}

func (b *BucketPage[K, V]) IsFull() bool {
	for i := 0; i < b.capacity; i++ {
		if !b.IsReadable(i) {
			return false
		}
	}
	return true
}

func (b *BucketPage[K, V]) IsEmpty() bool {
	return b.NumReadable() == 0
}

func (b *BucketPage[K, V]) NumReadable() int {
	n := 0
	for i := 0; i < b.capacity; i++ {
		if b.IsReadable(i) {
			n++
		}
	}
	return n
}

// Entry is a materialized (key, value) pair, used when rehashing a bucket
// during a split.
type Entry[K comparable, V comparable] struct {
	Key   K
	Value V
}

// GetAll returns every currently readable entry.
func (b *BucketPage[K, V]) GetAll() []Entry[K, V] {
	var out []Entry[K, V]
	for i := 0; i < b.capacity; i++ {
		if b.IsReadable(i) {
			out = append(out, Entry[K, V]{Key: b.KeyAt(i), Value: b.ValueAt(i)})
		}
	}
	return out
}

// Clear zeroes both bitmaps and the slot array, as if the page were freshly
// allocated. Used by split to reinitialize the old bucket before
// redistributing its entries between the old and new bucket.
func (b *BucketPage[K, V]) Clear() {
	for i := range b.data {
		b.data[i] = 0
	}
}
