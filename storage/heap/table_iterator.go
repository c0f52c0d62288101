package heap

import "github.com/hash-roar/15445/types"

// TableIterator walks a TableHeap's live tuples in page order, the
// iterator half of the teacher's TableIterator/table_heap_iterator.go
// pairing.
type TableIterator struct {
	heap *TableHeap
	rid  types.RID
	done bool
}

// Valid reports whether the iterator is positioned at a tuple.
func (it *TableIterator) Valid() bool { return !it.done }

// Current returns the tuple at the iterator's position.
func (it *TableIterator) Current() (*Tuple, error) {
	return it.heap.GetTuple(it.rid)
}

// Next advances to the next live tuple, following page links as needed,
// and returns false once the heap is exhausted.
func (it *TableIterator) Next() bool {
	if it.done {
		return false
	}

	pageID := it.rid.PageID
	pg := it.heap.bpm.FetchPage(pageID)
	tp := NewTablePage(pg.Data())
	slot, ok := tp.NextSlot(it.rid.Slot)
	next := tp.NextPageID()
	it.heap.bpm.UnpinPage(pageID, false)

	if ok {
		it.rid = types.NewRID(pageID, slot)
		return true
	}

	for next.IsValid() {
		pg := it.heap.bpm.FetchPage(next)
		tp := NewTablePage(pg.Data())
		firstSlot, found := tp.FirstSlot()
		following := tp.NextPageID()
		it.heap.bpm.UnpinPage(next, false)
		if found {
			it.rid = types.NewRID(next, firstSlot)
			return true
		}
		next = following
	}

	it.done = true
	return false
}
