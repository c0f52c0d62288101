// Package disk is the external collaborator spec.md §6 calls the Disk
// Manager: it turns a page id into an offset in a backing store and reads
// or writes exactly PageSize bytes there. The buffer pool is the only
// caller; it assumes the disk manager serializes its own I/O (spec.md §5).
package disk

import (
	"errors"

	"github.com/hash-roar/15445/types"
)

// ErrShortRead names a read that yields fewer than common.PageSize bytes.
// FileManager and MemoryManager do not return it: both zero-fill the rest
// of the page when a read runs past the end of the backing store.
var ErrShortRead = errors.New("disk: short read")

// Manager is the interface the buffer pool consumes. Unlike the core
// (storage/buffer, container/hash, storage/page) it is explicitly allowed
// to log and to return errors describing I/O faults; spec.md §7 only
// forbids the core from swallowing or logging them.
type Manager interface {
	ReadPage(id types.PageID, dst []byte) error
	WritePage(id types.PageID, src []byte) error
	AllocatePage() types.PageID
	DeallocatePage(id types.PageID)
	GetNumWrites() uint64
	Size() int64
	ShutDown()
}
