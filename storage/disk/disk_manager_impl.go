package disk

import (
	"io"
	"os"
	"sync"

	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/types"
)

// FileManager is the file-backed disk manager: one page is one
// PageSize-byte slice at offset page_id*PageSize within a single
// database file. It mirrors the teacher's DiskManagerImpl, minus the
// WAL/log-file bookkeeping the spec (§1) scopes out of the core.
type FileManager struct {
	mu         sync.Mutex
	file       *os.File
	nextPageID types.PageID
	numWrites  uint64
}

// NewFileManager opens (creating if necessary) path as the backing file for
// a database.
func NewFileManager(path string) (*FileManager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	nPages := info.Size() / common.PageSize
	return &FileManager{file: f, nextPageID: types.PageID(nPages)}, nil
}

func (d *FileManager) ReadPage(id types.PageID, dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(id) * common.PageSize
	n, err := d.file.ReadAt(dst[:common.PageSize], offset)
	if err != nil && err != io.EOF {
		common.Log.Warnw("disk: read failed", "page_id", id, "err", err)
		return err
	}
	if n < common.PageSize {
		// Reading past the current end of file (a page allocated but
		// never written back) yields zeroed content, matching a freshly
		// zeroed frame.
		for i := n; i < common.PageSize; i++ {
			dst[i] = 0
		}
	}
	return nil
}

func (d *FileManager) WritePage(id types.PageID, src []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(id) * common.PageSize
	if _, err := d.file.WriteAt(src[:common.PageSize], offset); err != nil {
		common.Log.Warnw("disk: write failed", "page_id", id, "err", err)
		return err
	}
	d.numWrites++
	return nil
}

func (d *FileManager) AllocatePage() types.PageID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.nextPageID
	d.nextPageID++
	return id
}

func (d *FileManager) DeallocatePage(types.PageID) {
	// The core never reuses a deallocated page's on-disk space; that is a
	// free-space-map concern the spec (§1) scopes out.
}

func (d *FileManager) GetNumWrites() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.numWrites
}

func (d *FileManager) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, err := d.file.Stat()
	if err != nil {
		return 0
	}
	return info.Size()
}

func (d *FileManager) ShutDown() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.file.Close()
}
