// Package page defines the in-memory frame contents the buffer pool
// manages (Page) and the two typed views the extendible hash table lays
// out on top of a frame's bytes: BucketPage and DirectoryPage.
package page

import (
	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/types"
)

// Data is the raw byte contents of one page-sized frame.
type Data [common.PageSize]byte

// Page is a frame: the byte buffer plus the bookkeeping metadata the
// buffer pool needs (spec.md §3's Frame). PinCount and IsDirty are only
// ever mutated by the owning BufferPoolManagerInstance under its latch;
// everything else may freely read a pinned Page's Data.
type Page struct {
	id       types.PageID
	pinCount int32
	isDirty  bool
	data     *Data
}

// New wraps existing bytes as a page (used when reading a page back off
// disk).
func New(id types.PageID, data *Data) *Page {
	return &Page{id: id, pinCount: 1, data: data}
}

// NewEmpty returns a freshly zeroed page (used by NewPage).
func NewEmpty(id types.PageID) *Page {
	return &Page{id: id, pinCount: 1, data: &Data{}}
}

func (p *Page) ID() types.PageID { return p.id }

func (p *Page) Data() *Data { return p.data }

func (p *Page) PinCount() int32 { return p.pinCount }

func (p *Page) IncPinCount() { p.pinCount++ }

// DecPinCount decrements the pin count and reports the count after
// decrementing. Callers must check for a negative result themselves — the
// spec (§7 InvalidUnpin) treats an over-unpin as the caller's bug, not
// something this type silently clamps away.
func (p *Page) DecPinCount() int32 {
	p.pinCount--
	return p.pinCount
}

func (p *Page) IsDirty() bool { return p.isDirty }

// SetDirty implements the sticky-dirty rule (spec.md §3, §9): once true,
// dirty stays true until ClearDirty (called by eviction write-back) or
// Reset clears it.
func (p *Page) SetDirty(dirty bool) {
	if dirty {
		p.isDirty = true
	}
}

// Reset re-targets this frame at a different page id with fresh zeroed (or
// caller-supplied) data, clearing pin count and dirty flag. Used by the
// buffer pool when a frame changes residency.
func (p *Page) Reset(id types.PageID, data *Data) {
	p.id = id
	p.pinCount = 1
	p.isDirty = false
	if data != nil {
		p.data = data
	} else {
		p.data = &Data{}
	}
}

// ClearDirty is used only by eviction write-back, never by FlushPage or
// Unpin (spec.md §4.2: dirty is cleared only on eviction
// write-back, not by flush_page and not by an unpin(dirty=false)).
func (p *Page) ClearDirty() { p.isDirty = false }
