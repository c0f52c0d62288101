package page

import (
	"testing"

	"github.com/hash-roar/15445/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBucket() *BucketPage[types.IntKey, types.RID] {
	data := &Data{}
	return NewBucketPage[types.IntKey, types.RID](data, types.IntKeyCodec{}, types.RIDCodec{}, types.CompareInt, types.CompareRID)
}

func TestBucketPage_InsertGetRemove(t *testing.T) {
	b := newTestBucket()

	require.True(t, b.Insert(1, types.NewRID(1, 0)))
	require.True(t, b.Insert(1, types.NewRID(2, 0))) // duplicate key, distinct value: allowed

	var results []types.RID
	found := b.GetValue(1, &results)
	assert.True(t, found)
	assert.Len(t, results, 2)

	assert.True(t, b.Remove(1, types.NewRID(1, 0)))
	results = nil
	b.GetValue(1, &results)
	assert.Len(t, results, 1)
}

func TestBucketPage_ExactDuplicateRejected(t *testing.T) {
	b := newTestBucket()
	rid := types.NewRID(5, 2)
	require.True(t, b.Insert(9, rid))
	assert.False(t, b.Insert(9, rid))
}

func TestBucketPage_FullBucketRejectsInsert(t *testing.T) {
	b := newTestBucket()
	for i := 0; i < b.Capacity(); i++ {
		require.True(t, b.Insert(types.IntKey(i), types.NewRID(types.PageID(i), 0)))
	}
	assert.True(t, b.IsFull())
	assert.False(t, b.Insert(types.IntKey(b.Capacity()), types.NewRID(999, 0)))
}

func TestBucketPage_RemoveDoesNotClearOccupied(t *testing.T) {
	b := newTestBucket()
	rid := types.NewRID(1, 0)
	require.True(t, b.Insert(3, rid))
	require.True(t, b.Remove(3, rid))

	assert.True(t, b.IsOccupied(0), "occupied bit is monotonic; only readable clears on remove")
	assert.False(t, b.IsReadable(0))
	assert.True(t, b.IsEmpty())
}

func TestBucketPage_GetAllAndClear(t *testing.T) {
	b := newTestBucket()
	require.True(t, b.Insert(1, types.NewRID(1, 0)))
	require.True(t, b.Insert(2, types.NewRID(2, 0)))

	entries := b.GetAll()
	assert.Len(t, entries, 2)

	b.Clear()
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsOccupied(0))
	assert.Empty(t, b.GetAll())
}

func TestBucketCapacity_FitsPageSize(t *testing.T) {
	n := BucketCapacity(4, 8)
	require.Greater(t, n, 0)
	occBytes := (n + 7) / 8
	assert.LessOrEqual(t, n*(4+8)+2*occBytes, 4096)
}
