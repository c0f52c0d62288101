package hash

import (
	"encoding/binary"
	"testing"

	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/storage/buffer"
	"github.com/hash-roar/15445/storage/disk"
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, poolSize int) *ExtendibleHashTable[types.IntKey, types.RID] {
	t.Helper()
	bpm := buffer.NewBufferPoolManagerInstance(poolSize, 1, 0, disk.NewMemoryManager())
	return NewExtendibleHashTable[types.IntKey, types.RID](
		bpm, types.IntKeyCodec{}, types.RIDCodec{}, types.CompareInt, types.CompareRID,
	)
}

func TestExtendibleHashTable_InsertAndGetValue(t *testing.T) {
	table := newTestTable(t, 50)

	for i := 0; i < 20; i++ {
		ok := table.Insert(types.IntKey(i), types.NewRID(types.PageID(i), 0), nil)
		require.True(t, ok)
	}

	for i := 0; i < 20; i++ {
		values := table.GetValue(types.IntKey(i), nil)
		require.Len(t, values, 1)
		assert.Equal(t, types.PageID(i), values[0].PageID)
	}
}

func TestExtendibleHashTable_DuplicatePairRejected(t *testing.T) {
	table := newTestTable(t, 50)
	rid := types.NewRID(1, 0)

	assert.True(t, table.Insert(types.IntKey(7), rid, nil))
	assert.False(t, table.Insert(types.IntKey(7), rid, nil), "exact (key, value) duplicate must be rejected")

	// A duplicate key with a different value is fine (spec.md allows
	// duplicate keys, only the exact pair is rejected).
	assert.True(t, table.Insert(types.IntKey(7), types.NewRID(2, 0), nil))
	assert.Len(t, table.GetValue(types.IntKey(7), nil), 2)
}

func TestExtendibleHashTable_SplitGrowsGlobalDepth(t *testing.T) {
	table := newTestTable(t, 200)
	capacity := page.BucketCapacity(types.IntKeyCodec{}.Size(), types.RIDCodec{}.Size())

	before := table.GlobalDepth()

	// Filling one bucket past capacity forces at least one split.
	for i := 0; i < capacity+1; i++ {
		ok := table.Insert(types.IntKey(i), types.NewRID(types.PageID(i), 0), nil)
		require.True(t, ok, "insert %d should not fail before the table is truly full", i)
	}

	after := table.GlobalDepth()
	assert.Greater(t, after, before, "inserting past one bucket's capacity must grow the directory")

	table.VerifyIntegrity()

	for i := 0; i < capacity+1; i++ {
		values := table.GetValue(types.IntKey(i), nil)
		assert.Len(t, values, 1, "key %d must survive the split", i)
	}
}

func TestExtendibleHashTable_RemoveAndMergeCollapsesDepth(t *testing.T) {
	table := newTestTable(t, 200)
	capacity := page.BucketCapacity(types.IntKeyCodec{}.Size(), types.RIDCodec{}.Size())

	keys := make([]types.IntKey, 0, capacity+1)
	for i := 0; i < capacity+1; i++ {
		k := types.IntKey(i)
		require.True(t, table.Insert(k, types.NewRID(types.PageID(i), 0), nil))
		keys = append(keys, k)
	}
	require.Greater(t, table.GlobalDepth(), uint32(0))

	for i, k := range keys {
		require.True(t, table.Remove(k, types.NewRID(types.PageID(i), 0), nil))
	}

	table.VerifyIntegrity()
	for _, k := range keys {
		assert.Empty(t, table.GetValue(k, nil))
	}
	assert.EqualValues(t, 0, table.GlobalDepth(), "removing everything must shrink the directory back down")
}

func TestExtendibleHashTable_RemoveMissingReturnsFalse(t *testing.T) {
	table := newTestTable(t, 50)
	assert.False(t, table.Remove(types.IntKey(1), types.NewRID(1, 0), nil))

	require.True(t, table.Insert(types.IntKey(1), types.NewRID(1, 0), nil))
	assert.False(t, table.Remove(types.IntKey(1), types.NewRID(2, 0), nil), "wrong value must not match")
}

func TestExtendibleHashTable_ScanVisitsEveryEntryOnce(t *testing.T) {
	table := newTestTable(t, 200)
	capacity := page.BucketCapacity(types.IntKeyCodec{}.Size(), types.RIDCodec{}.Size())

	for i := 0; i < capacity+5; i++ {
		require.True(t, table.Insert(types.IntKey(i), types.NewRID(types.PageID(i), 0), nil))
	}

	seen := map[types.IntKey]bool{}
	table.Scan(func(k types.IntKey, v types.RID) bool {
		assert.False(t, seen[k], "scan must not revisit a key")
		seen[k] = true
		return true
	})
	assert.Len(t, seen, capacity+5)
}

func key8From(n int) types.Key8 {
	var k types.Key8
	binary.LittleEndian.PutUint64(k[:], uint64(n))
	return k
}

// TestExtendibleHashTable_FixedWidthGenericKeyWorks exercises the table
// monomorphized over one of the fixed-width generic key types (spec.md §9)
// instead of IntKey, the way a varchar or composite index column would use
// it: any Key4/Key8/Key16/Key32/Key64 with its Codec and comparator plugs
// into ExtendibleHashTable exactly like IntKey does.
func TestExtendibleHashTable_FixedWidthGenericKeyWorks(t *testing.T) {
	bpm := buffer.NewBufferPoolManagerInstance(50, 1, 0, disk.NewMemoryManager())
	table := NewExtendibleHashTable[types.Key8, types.RID](
		bpm, types.Key8Codec{}, types.RIDCodec{}, types.CompareKey8, types.CompareRID,
	)

	for i := 0; i < 10; i++ {
		ok := table.Insert(key8From(i), types.NewRID(types.PageID(i), 0), nil)
		require.True(t, ok)
	}
	for i := 0; i < 10; i++ {
		values := table.GetValue(key8From(i), nil)
		require.Len(t, values, 1)
		assert.Equal(t, types.PageID(i), values[0].PageID)
	}
}

func TestExtendibleHashTable_SplitInsertRejectsAtMaxLocalDepth(t *testing.T) {
	table := newTestTable(t, 50)
	require.True(t, table.Insert(types.IntKey(0), types.NewRID(1, 0), nil))

	dirPg, dir := table.fetchDirectory()
	_ = dirPg
	bucketID := dir.GetBucketPageID(0)
	dir.SetLocalDepth(0, common.MaxLocalDepth)
	table.bpm.UnpinPage(table.directoryPageID, true)

	ok := table.splitInsert(0, bucketID)
	assert.False(t, ok, "a bucket already at MaxLocalDepth must not split further")
	assert.EqualValues(t, 0, table.GlobalDepth(), "a rejected split must not have touched the directory")
}

func TestExtendibleHashTable_EmptyTableReadsAreSafe(t *testing.T) {
	table := newTestTable(t, 10)
	assert.Empty(t, table.GetValue(types.IntKey(1), nil))
	assert.EqualValues(t, 0, table.GlobalDepth())
	_, ok := table.BucketDepth(types.IntKey(1))
	assert.False(t, ok)
	table.VerifyIntegrity() // must not panic on an untouched table
}
