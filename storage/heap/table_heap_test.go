package heap

import (
	"testing"

	"github.com/hash-roar/15445/storage/buffer"
	"github.com/hash-roar/15445/storage/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHeap(t *testing.T, poolSize int) *TableHeap {
	t.Helper()
	bpm := buffer.NewBufferPoolManagerInstance(poolSize, 1, 0, disk.NewMemoryManager())
	return NewTableHeap(bpm)
}

func TestTableHeap_InsertAndGet(t *testing.T) {
	h := newTestHeap(t, 20)

	rid, err := h.InsertTuple([]byte("row one"))
	require.NoError(t, err)

	tuple, err := h.GetTuple(rid)
	require.NoError(t, err)
	assert.Equal(t, "row one", string(tuple.Data))
}

func TestTableHeap_DeleteThenGetFails(t *testing.T) {
	h := newTestHeap(t, 20)
	rid, err := h.InsertTuple([]byte("temp"))
	require.NoError(t, err)

	require.NoError(t, h.DeleteTuple(rid))
	_, err = h.GetTuple(rid)
	assert.ErrorIs(t, err, ErrTupleDeleted)
}

func TestTableHeap_GrowsAcrossPages(t *testing.T) {
	h := newTestHeap(t, 20)
	big := make([]byte, 3000)
	for i := range big {
		big[i] = byte(i)
	}

	rid1, err := h.InsertTuple(big)
	require.NoError(t, err)
	rid2, err := h.InsertTuple(big)
	require.NoError(t, err)

	assert.NotEqual(t, rid1.PageID, rid2.PageID, "second oversized tuple must land on a new page")
}

func TestTableHeap_IteratorWalksAllLiveTuples(t *testing.T) {
	h := newTestHeap(t, 20)
	want := []string{"a", "b", "c"}
	for _, s := range want {
		_, err := h.InsertTuple([]byte(s))
		require.NoError(t, err)
	}

	var got []string
	for it := h.Begin(); it.Valid(); it.Next() {
		tuple, err := it.Current()
		require.NoError(t, err)
		got = append(got, string(tuple.Data))
	}
	assert.Equal(t, want, got)
}

func TestTableHeap_EmptyHeapIteratorIsDone(t *testing.T) {
	h := newTestHeap(t, 5)
	it := h.Begin()
	assert.False(t, it.Valid())
}
