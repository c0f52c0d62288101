package hash

import (
	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/concurrency"
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
)

// BufferPoolManager is the subset of storage/buffer's instance and
// parallel managers the hash table needs. Both BufferPoolManagerInstance
// and ParallelBufferPoolManager satisfy it, so the table works unmodified
// over either (spec.md §4.5's collaborator boundary).
type BufferPoolManager interface {
	FetchPage(id types.PageID) *page.Page
	NewPage() (*page.Page, types.PageID)
	UnpinPage(id types.PageID, dirty bool) bool
	DeletePage(id types.PageID) bool
	FlushPage(id types.PageID) bool
}

// ExtendibleHashTable is a disk-backed hash index: one directory page
// fans out to a growable set of bucket pages, split and merged in place as
// entries are inserted and removed (spec.md §3, §4.5, §4.6). K and V must
// be fixed-width and have registered Codecs; duplicate keys are allowed as
// long as their values differ.
type ExtendibleHashTable[K comparable, V comparable] struct {
	latch common.ReaderWriterLatch

	bpm             BufferPoolManager
	directoryPageID types.PageID // types.InvalidPageID until the first Insert

	keyCodec types.Codec[K]
	valCodec types.Codec[V]
	cmp      types.Comparator[K]
	valCmp   types.Comparator[V]
}

// NewExtendibleHashTable builds an empty table. The directory page is
// created lazily on the first Insert, mirroring the source's
// on-first-use allocation so an index that is never written never
// consumes a page.
func NewExtendibleHashTable[K comparable, V comparable](
	bpm BufferPoolManager,
	keyCodec types.Codec[K],
	valCodec types.Codec[V],
	cmp types.Comparator[K],
	valCmp types.Comparator[V],
) *ExtendibleHashTable[K, V] {
	return &ExtendibleHashTable[K, V]{
		latch:           common.NewRWLatch(),
		bpm:             bpm,
		directoryPageID: types.InvalidPageID,
		keyCodec:        keyCodec,
		valCodec:        valCodec,
		cmp:             cmp,
		valCmp:          valCmp,
	}
}

func (h *ExtendibleHashTable[K, V]) hash(key K) uint32 {
	return hashKey(key, h.keyCodec)
}

// fetchDirectory pins and wraps the directory page. Caller must unpin.
func (h *ExtendibleHashTable[K, V]) fetchDirectory() (*page.Page, *page.DirectoryPage) {
	pg := h.bpm.FetchPage(h.directoryPageID)
	if pg == nil {
		common.Fatal("hash table: directory page %d could not be fetched", h.directoryPageID)
	}
	return pg, page.NewDirectoryPage(pg.Data())
}

// fetchBucket pins and wraps a bucket page. Caller must unpin.
func (h *ExtendibleHashTable[K, V]) fetchBucket(id types.PageID) (*page.Page, *page.BucketPage[K, V]) {
	pg := h.bpm.FetchPage(id)
	if pg == nil {
		common.Fatal("hash table: bucket page %d could not be fetched", id)
	}
	return pg, page.NewBucketPage[K, V](pg.Data(), h.keyCodec, h.valCodec, h.cmp, h.valCmp)
}

// keyBucketSlot locates the directory slot that key currently maps to. Must
// be called with the directory page fetched.
func (h *ExtendibleHashTable[K, V]) keyBucketSlot(dir *page.DirectoryPage, key K) uint32 {
	return keyToDirectoryIndex(h.hash(key), dir.GlobalDepthMask())
}

// ensureDirectory lazily allocates the directory page and its first bucket
// on the first write to an empty table. Caller holds the write latch.
func (h *ExtendibleHashTable[K, V]) ensureDirectory() {
	if h.directoryPageID.IsValid() {
		return
	}
	dirPg, dirID := h.bpm.NewPage()
	if dirPg == nil {
		common.Fatal("hash table: could not allocate directory page")
	}
	bucketPg, bucketID := h.bpm.NewPage()
	if bucketPg == nil {
		common.Fatal("hash table: could not allocate initial bucket page")
	}

	dir := page.NewDirectoryPage(dirPg.Data())
	dir.SetPageID(dirID)
	dir.SetLocalDepth(0, 0)
	dir.SetBucketPageID(0, bucketID)

	h.bpm.UnpinPage(bucketID, true)
	h.bpm.UnpinPage(dirID, true)
	h.directoryPageID = dirID
}

// GetValue returns every value stored under key (spec.md §4.6). txn is
// threaded through unchanged per spec.md §6 and never inspected here — the
// core treats it as opaque, leaving lock acquisition to the caller.
func (h *ExtendibleHashTable[K, V]) GetValue(key K, txn *concurrency.Transaction) []V {
	h.latch.RLock()
	defer h.latch.RUnlock()

	if !h.directoryPageID.IsValid() {
		return nil
	}

	dirPg, dir := h.fetchDirectory()
	slot := h.keyBucketSlot(dir, key)
	bucketID := dir.GetBucketPageID(slot)
	h.bpm.UnpinPage(h.directoryPageID, false)

	bucketPg, bucket := h.fetchBucket(bucketID)
	var results []V
	bucket.GetValue(key, &results)
	h.bpm.UnpinPage(bucketID, false)
	_ = dirPg
	_ = bucketPg
	return results
}

// Insert adds (key, value), splitting buckets as needed. Returns false if
// the exact pair already exists, or if the target bucket is already at
// MaxLocalDepth and cannot split further (spec.md §4.4, §4.6, §7
// IndexFull). txn is opaque, as in GetValue.
func (h *ExtendibleHashTable[K, V]) Insert(key K, value V, txn *concurrency.Transaction) bool {
	h.latch.Lock()
	defer h.latch.Unlock()

	h.ensureDirectory()

	for {
		dirPg, dir := h.fetchDirectory()
		slot := h.keyBucketSlot(dir, key)
		bucketID := dir.GetBucketPageID(slot)

		bucketPg, bucket := h.fetchBucket(bucketID)
		if !bucket.IsFull() {
			ok := bucket.Insert(key, value)
			h.bpm.UnpinPage(bucketID, ok)
			h.bpm.UnpinPage(h.directoryPageID, false)
			return ok
		}

		// Bucket full: split, then retry from the top since the split may
		// have redirected key to a different (new) bucket. If the bucket is
		// already at MaxLocalDepth it cannot split further — the index is
		// full for this key (spec.md §4.6 step 2, §7 IndexFull).
		h.bpm.UnpinPage(bucketID, false)
		h.bpm.UnpinPage(h.directoryPageID, false)
		_ = dirPg
		_ = bucketPg
		if !h.splitInsert(slot, bucketID) {
			return false
		}
	}
}

// splitInsert grows the local depth of the bucket at slot (doubling the
// directory first if its local depth already equals the global depth),
// allocates its split image, and redistributes every entry between the two
// (spec.md §4.6). It never itself performs the retried insert — the caller
// loops back to re-resolve the directory slot for the pending key. Returns
// false without modifying anything if the bucket is already at
// MaxLocalDepth (mirrors the original's own bounds check before growing
// the directory).
func (h *ExtendibleHashTable[K, V]) splitInsert(slot uint32, bucketID types.PageID) bool {
	dirPg, dir := h.fetchDirectory()
	_ = dirPg

	oldLocalDepth := dir.GetLocalDepth(slot)
	if oldLocalDepth >= common.MaxLocalDepth {
		h.bpm.UnpinPage(h.directoryPageID, false)
		return false
	}
	defer h.bpm.UnpinPage(h.directoryPageID, true)

	if uint32(oldLocalDepth) == dir.GetGlobalDepth() {
		dir.IncrGlobalDepth()
	}
	newLocalDepth := oldLocalDepth + 1

	newBucketPg, newBucketID := h.bpm.NewPage()
	if newBucketPg == nil {
		common.Fatal("hash table: could not allocate split image bucket")
	}
	newBucket := page.NewBucketPage[K, V](newBucketPg.Data(), h.keyCodec, h.valCodec, h.cmp, h.valCmp)

	// Every directory slot that currently points at bucketID and shares the
	// low oldLocalDepth bits with slot must be updated: half keep the old
	// bucket, half move to the new one, split along the newly significant
	// bit.
	size := dir.Size()
	splitBit := uint32(1) << oldLocalDepth
	for i := uint32(0); i < size; i++ {
		if dir.GetBucketPageID(i) != bucketID {
			continue
		}
		dir.SetLocalDepth(i, newLocalDepth)
		if i&splitBit != 0 {
			dir.SetBucketPageID(i, newBucketID)
		}
	}

	oldBucketPg, oldBucket := h.fetchBucket(bucketID)
	entries := oldBucket.GetAll()
	oldBucket.Clear()

	for _, e := range entries {
		if h.hash(e.Key)&splitBit != 0 {
			newBucket.Insert(e.Key, e.Value)
		} else {
			oldBucket.Insert(e.Key, e.Value)
		}
	}

	h.bpm.UnpinPage(bucketID, true)
	h.bpm.UnpinPage(newBucketID, true)
	_ = oldBucketPg
	return true
}

// Remove deletes (key, value) if present, merging the bucket with its
// split image when the removal leaves it empty and the merge is safe
// (spec.md §4.6's conservative merge condition). Returns whether an entry
// was removed. txn is opaque, as in GetValue.
func (h *ExtendibleHashTable[K, V]) Remove(key K, value V, txn *concurrency.Transaction) bool {
	h.latch.Lock()
	defer h.latch.Unlock()

	if !h.directoryPageID.IsValid() {
		return false
	}

	dirPg, dir := h.fetchDirectory()
	slot := h.keyBucketSlot(dir, key)
	bucketID := dir.GetBucketPageID(slot)
	_ = dirPg

	bucketPg, bucket := h.fetchBucket(bucketID)
	removed := bucket.Remove(key, value)
	becameEmpty := removed && bucket.IsEmpty()
	h.bpm.UnpinPage(bucketID, removed)
	_ = bucketPg

	if !becameEmpty || dir.GetLocalDepth(slot) == 0 {
		h.bpm.UnpinPage(h.directoryPageID, false)
		return removed
	}
	h.bpm.UnpinPage(h.directoryPageID, false)

	h.tryMerge(slot)
	return removed
}

// tryMerge implements spec.md §4.6's conservative merge: only when the
// emptied bucket and its split image currently share the same local depth
// does the pair collapse into one bucket, iterated while CanShrink allows
// shrinking the directory itself. Any looser condition (e.g. merging
// across unequal depths) is explicitly out of scope, matching the
// original algorithm's own restriction.
func (h *ExtendibleHashTable[K, V]) tryMerge(slot uint32) {
	for {
		dirPg, dir := h.fetchDirectory()
		_ = dirPg

		localDepth := dir.GetLocalDepth(slot)
		if localDepth == 0 {
			h.bpm.UnpinPage(h.directoryPageID, false)
			return
		}
		imageSlot := dir.GetSplitImageIndex(slot)
		if dir.GetLocalDepth(imageSlot) != localDepth {
			h.bpm.UnpinPage(h.directoryPageID, false)
			return
		}

		emptyBucketID := dir.GetBucketPageID(slot)
		imageBucketID := dir.GetBucketPageID(imageSlot)

		_, emptyBucket := h.fetchBucket(emptyBucketID)
		isEmpty := emptyBucket.IsEmpty()
		h.bpm.UnpinPage(emptyBucketID, false)
		if !isEmpty {
			h.bpm.UnpinPage(h.directoryPageID, false)
			return
		}

		// Repoint every slot that shares this pair's residue at the
		// surviving (image) bucket, one depth level shallower.
		newDepth := localDepth - 1
		size := dir.Size()
		for i := uint32(0); i < size; i++ {
			if dir.GetBucketPageID(i) == emptyBucketID || dir.GetBucketPageID(i) == imageBucketID {
				dir.SetBucketPageID(i, imageBucketID)
				dir.SetLocalDepth(i, newDepth)
			}
		}
		h.bpm.DeletePage(emptyBucketID)

		for dir.CanShrink() {
			dir.DecrGlobalDepth()
		}
		h.bpm.UnpinPage(h.directoryPageID, true)

		slot = imageSlot % dir.Size()
	}
}

// GlobalDepth returns the directory's current global depth, or 0 if the
// table has never been written to.
func (h *ExtendibleHashTable[K, V]) GlobalDepth() uint32 {
	h.latch.RLock()
	defer h.latch.RUnlock()
	if !h.directoryPageID.IsValid() {
		return 0
	}
	_, dir := h.fetchDirectory()
	depth := dir.GetGlobalDepth()
	h.bpm.UnpinPage(h.directoryPageID, false)
	return depth
}

// BucketDepth returns the local depth of the bucket key currently maps to,
// and false if the table has never been written to.
func (h *ExtendibleHashTable[K, V]) BucketDepth(key K) (uint32, bool) {
	h.latch.RLock()
	defer h.latch.RUnlock()
	if !h.directoryPageID.IsValid() {
		return 0, false
	}
	_, dir := h.fetchDirectory()
	slot := h.keyBucketSlot(dir, key)
	depth := dir.GetLocalDepth(slot)
	h.bpm.UnpinPage(h.directoryPageID, false)
	return uint32(depth), true
}

// Scan walks every distinct bucket page exactly once, calling fn for every
// readable (key, value) pair; it stops early if fn returns false. A
// debugging/test helper, not part of the exposed index contract.
func (h *ExtendibleHashTable[K, V]) Scan(fn func(k K, v V) bool) {
	h.latch.RLock()
	defer h.latch.RUnlock()
	if !h.directoryPageID.IsValid() {
		return
	}

	_, dir := h.fetchDirectory()
	size := dir.Size()
	visited := make(map[types.PageID]bool, size)
	stop := false
	for i := uint32(0); i < size && !stop; i++ {
		bucketID := dir.GetBucketPageID(i)
		if visited[bucketID] {
			continue
		}
		visited[bucketID] = true
		_, bucket := h.fetchBucket(bucketID)
		for _, e := range bucket.GetAll() {
			if !fn(e.Key, e.Value) {
				stop = true
				break
			}
		}
		h.bpm.UnpinPage(bucketID, false)
	}
	h.bpm.UnpinPage(h.directoryPageID, false)
}

// VerifyIntegrity checks the directory's invariants (spec.md §3). Intended
// for tests and diagnostics, not the hot path.
func (h *ExtendibleHashTable[K, V]) VerifyIntegrity() {
	h.latch.RLock()
	defer h.latch.RUnlock()
	if !h.directoryPageID.IsValid() {
		return
	}
	_, dir := h.fetchDirectory()
	dir.VerifyIntegrity()
	h.bpm.UnpinPage(h.directoryPageID, false)
}
