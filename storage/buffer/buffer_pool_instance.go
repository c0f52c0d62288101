package buffer

import (
	"sync"

	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/storage/disk"
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
)

// BufferPoolManagerInstance owns a fixed array of frames, mediating every
// access to a slice of a disk manager's page space. It takes its latch for
// the entirety of every public operation (spec.md §4.2, §5): the code
// paths are short and dominated by disk I/O, so finer-grained locking buys
// nothing.
type BufferPoolManagerInstance struct {
	mu sync.Mutex

	diskManager disk.Manager
	frames      []*page.Page // index is FrameID; nil until first resident
	replacer    *LRUReplacer
	freeList    []FrameID
	pageTable   map[types.PageID]FrameID

	numInstances  uint32
	instanceIndex uint32
	nextPageID    types.PageID
}

// NewBufferPoolManagerInstance builds a single instance of poolSize frames.
// numInstances/instanceIndex encode this instance's page-id shard: every
// id it allocates satisfies id % numInstances == instanceIndex, so a
// ParallelBufferPoolManager can route any page id to its owner in O(1)
// (spec.md §4.2). A standalone (non-sharded) pool passes numInstances=1,
// instanceIndex=0.
func NewBufferPoolManagerInstance(poolSize int, numInstances, instanceIndex uint32, dm disk.Manager) *BufferPoolManagerInstance {
	common.Assert(numInstances > 0, "buffer pool: numInstances must be positive")
	common.Assert(instanceIndex < numInstances, "buffer pool: instanceIndex must be < numInstances")

	freeList := make([]FrameID, poolSize)
	for i := range freeList {
		freeList[i] = FrameID(i)
	}
	return &BufferPoolManagerInstance{
		diskManager:   dm,
		frames:        make([]*page.Page, poolSize),
		replacer:      NewLRUReplacer(uint32(poolSize)),
		freeList:      freeList,
		pageTable:     make(map[types.PageID]FrameID, poolSize),
		numInstances:  numInstances,
		instanceIndex: instanceIndex,
		nextPageID:    types.PageID(instanceIndex),
	}
}

// PoolSize returns the number of frames this instance owns.
func (b *BufferPoolManagerInstance) PoolSize() int { return len(b.frames) }

// allocatePage implements the sharded counter scheme: the current counter
// value, then advance by numInstances. Must be called with mu held.
func (b *BufferPoolManagerInstance) allocatePage() types.PageID {
	id := b.nextPageID
	b.nextPageID += types.PageID(b.numInstances)
	return id
}

// pickVictim returns a frame to reuse: the free list first, then the
// replacer. Returns (0, false) if both are empty. Must be called with mu
// held.
func (b *BufferPoolManagerInstance) pickVictim() (FrameID, bool) {
	if n := len(b.freeList); n > 0 {
		f := b.freeList[n-1]
		b.freeList = b.freeList[:n-1]
		return f, true
	}
	return b.replacer.Victim()
}

// evict prepares frame for a new residency: if it currently holds a dirty
// page, write it back and clear dirty; remove its old page-table entry.
// Must be called with mu held.
func (b *BufferPoolManagerInstance) evict(frame FrameID) error {
	old := b.frames[frame]
	if old == nil {
		return nil
	}
	if old.IsDirty() {
		if err := b.diskManager.WritePage(old.ID(), old.Data()[:]); err != nil {
			return err
		}
		old.ClearDirty()
	}
	delete(b.pageTable, old.ID())
	return nil
}

// FetchPage returns a pinned frame holding pageID's contents, reading it
// from disk if it was not already resident. Returns nil if the pool has no
// free or evictable frame (spec.md §4.2 NoFreeFrame).
func (b *BufferPoolManagerInstance) FetchPage(pageID types.PageID) *page.Page {
	b.mu.Lock()
	defer b.mu.Unlock()

	if frame, ok := b.pageTable[pageID]; ok {
		pg := b.frames[frame]
		pg.IncPinCount()
		b.replacer.Pin(frame)
		return pg
	}

	victim, ok := b.pickVictim()
	if !ok {
		return nil
	}
	if err := b.evict(victim); err != nil {
		return nil
	}

	var data page.Data
	if err := b.diskManager.ReadPage(pageID, data[:]); err != nil {
		return nil
	}

	pg := page.New(pageID, &data)
	b.pageTable[pageID] = victim
	b.frames[victim] = pg
	return pg
}

// NewPage allocates a fresh page id and returns a pinned, zeroed frame for
// it, or nil if no frame is available.
func (b *BufferPoolManagerInstance) NewPage() (*page.Page, types.PageID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame, ok := b.pickVictim()
	if !ok {
		return nil, types.InvalidPageID
	}
	if err := b.evict(frame); err != nil {
		return nil, types.InvalidPageID
	}

	pageID := b.allocatePage()
	pg := page.NewEmpty(pageID)
	b.pageTable[pageID] = frame
	b.frames[frame] = pg
	return pg, pageID
}

// UnpinPage decrements pageID's pin count, marking it dirty if requested.
// Returns false if pageID is resident with a pin count already at zero
// (spec.md §4.2/§7 InvalidUnpin); returns true (no-op) if pageID is not
// resident at all.
func (b *BufferPoolManagerInstance) UnpinPage(pageID types.PageID, dirty bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame, ok := b.pageTable[pageID]
	if !ok {
		return true
	}
	pg := b.frames[frame]
	if pg.PinCount() == 0 {
		return false
	}
	pg.SetDirty(dirty)
	if pg.DecPinCount() == 0 {
		b.replacer.Unpin(frame)
	}
	return true
}

// FlushPage writes pageID's current frame contents to disk if resident.
// It does not clear the dirty flag — dirty is cleared only by eviction
// write-back (spec.md §4.2).
func (b *BufferPoolManagerInstance) FlushPage(pageID types.PageID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame, ok := b.pageTable[pageID]
	if !ok {
		return false
	}
	pg := b.frames[frame]
	if err := b.diskManager.WritePage(pageID, pg.Data()[:]); err != nil {
		return false
	}
	return true
}

// FlushAllPages writes every resident page to disk.
func (b *BufferPoolManagerInstance) FlushAllPages() {
	b.mu.Lock()
	ids := make([]types.PageID, 0, len(b.pageTable))
	for id := range b.pageTable {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	for _, id := range ids {
		b.FlushPage(id)
	}
}

// DeletePage frees pageID back to the disk manager and returns its frame
// to the front of the free list. Returns true if pageID was not resident
// or was successfully deleted; false only if it is still pinned
// (spec.md §4.2's documented contract — the source's inverted return is a
// bug per spec.md's Open Issue, not something this implementation repeats).
func (b *BufferPoolManagerInstance) DeletePage(pageID types.PageID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	frame, ok := b.pageTable[pageID]
	if !ok {
		return true
	}
	pg := b.frames[frame]
	if pg.PinCount() > 0 {
		return false
	}

	b.diskManager.DeallocatePage(pageID)
	delete(b.pageTable, pageID)
	b.replacer.Pin(frame) // remove from replacer; it was unpinned, hence present
	b.frames[frame] = nil
	b.freeList = append([]FrameID{frame}, b.freeList...)
	return true
}
