package heap

import (
	"encoding/binary"
	"errors"

	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
)

// Slotted page format (grounded on the teacher's storage/table/table_page.go,
// generalized off its brunocalza/go-bustub ancestor's fixed layout):
//
//	page_id            4 bytes
//	prev_page_id       4 bytes
//	next_page_id       4 bytes
//	free_space_offset  4 bytes  (grows down from PageSize)
//	tuple_count        4 bytes
//	slot[i]: {offset uint32, size uint32}   (0 size marks a deleted tuple)
const (
	tpOffsetPageID     = 0
	tpOffsetPrevPageID = 4
	tpOffsetNextPageID = 8
	tpOffsetFreeSpace  = 12
	tpOffsetTupleCount = 16
	tpHeaderSize       = 20
	tpSlotSize         = 8
)

var (
	ErrEmptyTuple     = errors.New("heap: tuple cannot be empty")
	ErrNotEnoughSpace = errors.New("heap: not enough space in page")
	ErrTupleDeleted   = errors.New("heap: tuple already deleted")
)

// TablePage is a typed view over a frame, identical in spirit to
// storage/page.BucketPage/DirectoryPage: no separate serialize step, just
// byte-offset accessors directly on the frame's Data.
type TablePage struct {
	data *page.Data
}

func NewTablePage(data *page.Data) *TablePage {
	return &TablePage{data: data}
}

func (tp *TablePage) Init(pageID, prevPageID types.PageID) {
	tp.setPageID(pageID)
	tp.setPrevPageID(prevPageID)
	tp.setNextPageID(types.InvalidPageID)
	tp.setTupleCount(0)
	tp.setFreeSpaceOffset(common.PageSize)
}

func (tp *TablePage) setPageID(id types.PageID) {
	binary.LittleEndian.PutUint32(tp.data[tpOffsetPageID:], uint32(int32(id)))
}

func (tp *TablePage) PageID() types.PageID {
	return types.PageID(int32(binary.LittleEndian.Uint32(tp.data[tpOffsetPageID:])))
}

func (tp *TablePage) setPrevPageID(id types.PageID) {
	binary.LittleEndian.PutUint32(tp.data[tpOffsetPrevPageID:], uint32(int32(id)))
}

func (tp *TablePage) PrevPageID() types.PageID {
	return types.PageID(int32(binary.LittleEndian.Uint32(tp.data[tpOffsetPrevPageID:])))
}

func (tp *TablePage) setNextPageID(id types.PageID) {
	binary.LittleEndian.PutUint32(tp.data[tpOffsetNextPageID:], uint32(int32(id)))
}

func (tp *TablePage) NextPageID() types.PageID {
	return types.PageID(int32(binary.LittleEndian.Uint32(tp.data[tpOffsetNextPageID:])))
}

func (tp *TablePage) setFreeSpaceOffset(off uint32) {
	binary.LittleEndian.PutUint32(tp.data[tpOffsetFreeSpace:], off)
}

func (tp *TablePage) freeSpaceOffset() uint32 {
	return binary.LittleEndian.Uint32(tp.data[tpOffsetFreeSpace:])
}

func (tp *TablePage) setTupleCount(n uint32) {
	binary.LittleEndian.PutUint32(tp.data[tpOffsetTupleCount:], n)
}

func (tp *TablePage) TupleCount() uint32 {
	return binary.LittleEndian.Uint32(tp.data[tpOffsetTupleCount:])
}

func (tp *TablePage) slotOffset(slot uint32) uint32 {
	return tpHeaderSize + tpSlotSize*slot
}

func (tp *TablePage) setSlot(slot uint32, offset, size uint32) {
	off := tp.slotOffset(slot)
	binary.LittleEndian.PutUint32(tp.data[off:], offset)
	binary.LittleEndian.PutUint32(tp.data[off+4:], size)
}

func (tp *TablePage) slotAt(slot uint32) (offset, size uint32) {
	off := tp.slotOffset(slot)
	return binary.LittleEndian.Uint32(tp.data[off:]), binary.LittleEndian.Uint32(tp.data[off+4:])
}

func (tp *TablePage) freeSpaceRemaining() uint32 {
	used := tpHeaderSize + tpSlotSize*tp.TupleCount()
	return tp.freeSpaceOffset() - used
}

// InsertTuple appends data as a new tuple, reusing a deleted slot if one
// exists, and returns the slot it was written to.
func (tp *TablePage) InsertTuple(data []byte) (uint32, error) {
	if len(data) == 0 {
		return 0, ErrEmptyTuple
	}
	size := uint32(len(data))

	var freeSlot uint32 = tp.TupleCount()
	for i := uint32(0); i < tp.TupleCount(); i++ {
		if _, s := tp.slotAt(i); s == 0 {
			freeSlot = i
			break
		}
	}

	needsNewSlot := freeSlot == tp.TupleCount()
	extra := uint32(0)
	if needsNewSlot {
		extra = tpSlotSize
	}
	if size+extra > tp.freeSpaceRemaining() {
		return 0, ErrNotEnoughSpace
	}

	newOffset := tp.freeSpaceOffset() - size
	copy(tp.data[newOffset:newOffset+size], data)
	tp.setSlot(freeSlot, newOffset, size)
	tp.setFreeSpaceOffset(newOffset)
	if needsNewSlot {
		tp.setTupleCount(tp.TupleCount() + 1)
	}
	return freeSlot, nil
}

// GetTuple returns the bytes stored at slot, or ErrTupleDeleted if that
// slot's size has been zeroed by DeleteTuple.
func (tp *TablePage) GetTuple(slot uint32) ([]byte, error) {
	offset, size := tp.slotAt(slot)
	if size == 0 {
		return nil, ErrTupleDeleted
	}
	out := make([]byte, size)
	copy(out, tp.data[offset:offset+size])
	return out, nil
}

// DeleteTuple zeroes slot's size, marking it reusable by a future insert.
// The bytes themselves are left in place; only the slot directory forgets
// them, mirroring the bucket page's occupied/readable split.
func (tp *TablePage) DeleteTuple(slot uint32) error {
	offset, size := tp.slotAt(slot)
	if size == 0 {
		return ErrTupleDeleted
	}
	tp.setSlot(slot, offset, 0)
	return nil
}

// FirstSlot and NextSlot let TableIterator walk live tuples without
// knowing the slot layout, skipping deleted slots along the way.
func (tp *TablePage) FirstSlot() (uint32, bool) {
	return tp.NextLiveSlotFrom(0)
}

func (tp *TablePage) NextSlot(after uint32) (uint32, bool) {
	return tp.NextLiveSlotFrom(after + 1)
}

func (tp *TablePage) NextLiveSlotFrom(start uint32) (uint32, bool) {
	for i := start; i < tp.TupleCount(); i++ {
		if _, size := tp.slotAt(i); size > 0 {
			return i, true
		}
	}
	return 0, false
}
