package disk

import (
	"io"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/types"
)

// MemoryManager is an in-memory disk manager backed by
// github.com/dsnet/golib/memfile, used for tests and ephemeral tables so
// that buffer pool and hash table tests never touch the filesystem — the
// same role the teacher's own virtual_disk_manager_impl.go fills, minus
// its WAL-reuse bookkeeping (out of scope per spec.md §1).
type MemoryManager struct {
	mu         sync.Mutex
	file       *memfile.File
	nextPageID types.PageID
	numWrites  uint64
	size       int64
}

// NewMemoryManager returns an empty in-memory backing store.
func NewMemoryManager() *MemoryManager {
	return &MemoryManager{file: memfile.New(nil)}
}

func (d *MemoryManager) ReadPage(id types.PageID, dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(id) * common.PageSize
	n, err := d.file.ReadAt(dst[:common.PageSize], offset)
	if err != nil && err != io.EOF {
		return err
	}
	for i := n; i < common.PageSize; i++ {
		dst[i] = 0
	}
	return nil
}

func (d *MemoryManager) WritePage(id types.PageID, src []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(id) * common.PageSize
	if _, err := d.file.WriteAt(src[:common.PageSize], offset); err != nil {
		return err
	}
	d.numWrites++
	if end := offset + common.PageSize; end > d.size {
		d.size = end
	}
	return nil
}

func (d *MemoryManager) AllocatePage() types.PageID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextPageID
	d.nextPageID++
	return id
}

func (d *MemoryManager) DeallocatePage(types.PageID) {}

func (d *MemoryManager) GetNumWrites() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.numWrites
}

func (d *MemoryManager) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size
}

func (d *MemoryManager) ShutDown() {}
