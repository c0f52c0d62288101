package execution

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
)

// TrackedBufferPoolManager is the subset of a buffer pool manager
// PinTracker wraps.
type TrackedBufferPoolManager interface {
	FetchPage(id types.PageID) *page.Page
	NewPage() (*page.Page, types.PageID)
	UnpinPage(id types.PageID, dirty bool) bool
}

// PinTracker wraps a buffer pool manager and records, in one set for the
// whole tracker, which page ids are currently pinned through it; pins are
// not grouped by caller. It never
// influences eviction or pin-count semantics — it purely observes
// FetchPage/NewPage/UnpinPage calls made through it, so tests can assert
// LeakedPages() is empty after an executor finishes (spec.md §7's "the
// core never logs" is preserved: this lives in execution, not
// storage/buffer, and adds no behavior the core depends on).
type PinTracker struct {
	bpm    TrackedBufferPoolManager
	pinned mapset.Set[types.PageID]
}

func NewPinTracker(bpm TrackedBufferPoolManager) *PinTracker {
	return &PinTracker{bpm: bpm, pinned: mapset.NewSet[types.PageID]()}
}

func (t *PinTracker) FetchPage(id types.PageID) *page.Page {
	pg := t.bpm.FetchPage(id)
	if pg != nil {
		t.pinned.Add(id)
	}
	return pg
}

func (t *PinTracker) NewPage() (*page.Page, types.PageID) {
	pg, id := t.bpm.NewPage()
	if pg != nil {
		t.pinned.Add(id)
	}
	return pg, id
}

func (t *PinTracker) UnpinPage(id types.PageID, dirty bool) bool {
	ok := t.bpm.UnpinPage(id, dirty)
	if ok {
		t.pinned.Remove(id)
	}
	return ok
}

// LeakedPages returns every page id this tracker believes is still pinned.
func (t *PinTracker) LeakedPages() []types.PageID {
	return t.pinned.ToSlice()
}
