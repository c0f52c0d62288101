package heap

import (
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
)

// BufferPoolManager is the same shape container/hash.BufferPoolManager
// declares; TableHeap itself calls only FetchPage, NewPage and UnpinPage to
// walk and grow its page chain.
type BufferPoolManager interface {
	FetchPage(id types.PageID) *page.Page
	NewPage() (*page.Page, types.PageID)
	UnpinPage(id types.PageID, dirty bool) bool
	DeletePage(id types.PageID) bool
	FlushPage(id types.PageID) bool
}

// TableHeap is an unordered, page-linked tuple heap (spec.md §6's "table
// heap" collaborator): a singly linked chain of TablePages, grown by
// appending a new page whenever the tail page runs out of room
// (grounded on the teacher's storage/table/table_heap.go).
type TableHeap struct {
	bpm         BufferPoolManager
	firstPageID types.PageID
}

func NewTableHeap(bpm BufferPoolManager) *TableHeap {
	pg, id := bpm.NewPage()
	tp := NewTablePage(pg.Data())
	tp.Init(id, types.InvalidPageID)
	bpm.UnpinPage(id, true)
	return &TableHeap{bpm: bpm, firstPageID: id}
}

// InsertTuple appends data to the first page in the chain with room,
// allocating a new tail page if every existing page is full.
func (t *TableHeap) InsertTuple(data []byte) (types.RID, error) {
	pageID := t.firstPageID
	pg := t.bpm.FetchPage(pageID)
	tp := NewTablePage(pg.Data())

	for {
		if slot, err := tp.InsertTuple(data); err == nil {
			rid := types.NewRID(pageID, slot)
			t.bpm.UnpinPage(pageID, true)
			return rid, nil
		}

		if next := tp.NextPageID(); next.IsValid() {
			t.bpm.UnpinPage(pageID, false)
			pageID = next
			pg = t.bpm.FetchPage(pageID)
			tp = NewTablePage(pg.Data())
			continue
		}

		newPg, newID := t.bpm.NewPage()
		newTp := NewTablePage(newPg.Data())
		newTp.Init(newID, pageID)
		tp.setNextPageID(newID)
		t.bpm.UnpinPage(pageID, true)

		pageID = newID
		tp = newTp
	}
}

func (t *TableHeap) GetTuple(rid types.RID) (*Tuple, error) {
	pg := t.bpm.FetchPage(rid.PageID)
	tp := NewTablePage(pg.Data())
	data, err := tp.GetTuple(rid.Slot)
	t.bpm.UnpinPage(rid.PageID, false)
	if err != nil {
		return nil, err
	}
	return &Tuple{RID: rid, Data: data}, nil
}

func (t *TableHeap) DeleteTuple(rid types.RID) error {
	pg := t.bpm.FetchPage(rid.PageID)
	tp := NewTablePage(pg.Data())
	err := tp.DeleteTuple(rid.Slot)
	t.bpm.UnpinPage(rid.PageID, err == nil)
	return err
}

// UpdateTuple deletes the old slot and inserts data fresh, since the
// slotted layout does not support in-place resize. The returned RID is
// wherever InsertTuple places the new bytes (the first page in the chain
// with room), so it can differ from rid even when the size is unchanged.
func (t *TableHeap) UpdateTuple(rid types.RID, data []byte) (types.RID, error) {
	if err := t.DeleteTuple(rid); err != nil {
		return types.RID{}, err
	}
	return t.InsertTuple(data)
}

// Begin returns an iterator positioned at the first live tuple in the
// heap, or an iterator that is immediately done if the heap is empty.
func (t *TableHeap) Begin() *TableIterator {
	pageID := t.firstPageID
	for pageID.IsValid() {
		pg := t.bpm.FetchPage(pageID)
		tp := NewTablePage(pg.Data())
		slot, ok := tp.FirstSlot()
		next := tp.NextPageID()
		t.bpm.UnpinPage(pageID, false)
		if ok {
			return &TableIterator{heap: t, rid: types.NewRID(pageID, slot)}
		}
		pageID = next
	}
	return &TableIterator{heap: t, done: true}
}
