package execution

import (
	"encoding/binary"
	"io"
	"testing"

	"github.com/hash-roar/15445/storage/buffer"
	"github.com/hash-roar/15445/storage/disk"
	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// intTuple encodes a single int32 id as a tuple payload, the minimal
// schema needed to exercise the join executors without a real catalog.
func intTuple(id int32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(id))
	return buf
}

func tupleID(t *heap.Tuple) int32 {
	return int32(binary.LittleEndian.Uint32(t.Data))
}

func TestHashJoinExecutor_MatchesOnKey(t *testing.T) {
	bpmLeft := buffer.NewBufferPoolManagerInstance(50, 1, 0, disk.NewMemoryManager())
	bpmRight := buffer.NewBufferPoolManagerInstance(50, 1, 0, disk.NewMemoryManager())
	bpmBuild := buffer.NewBufferPoolManagerInstance(50, 1, 0, disk.NewMemoryManager())

	leftHeap := heap.NewTableHeap(bpmLeft)
	rightHeap := heap.NewTableHeap(bpmRight)

	for _, id := range []int32{1, 2, 3} {
		_, err := leftHeap.InsertTuple(intTuple(id))
		require.NoError(t, err)
	}
	for _, id := range []int32{2, 3, 4} {
		_, err := rightHeap.InsertTuple(intTuple(id))
		require.NoError(t, err)
	}

	left := NewSeqScanExecutor(leftHeap, nil)
	right := NewSeqScanExecutor(rightHeap, nil)

	join := NewHashJoinExecutor[types.IntKey](
		left, right, bpmBuild,
		types.IntKeyCodec{}, types.CompareInt,
		func(t *heap.Tuple) types.IntKey { return types.IntKey(tupleID(t)) },
		func(t *heap.Tuple) types.IntKey { return types.IntKey(tupleID(t)) },
		func(l, r *heap.Tuple) []byte { return intTuple(tupleID(l)) },
	)
	require.NoError(t, join.Init())

	var matched []int32
	for {
		tuple, _, err := join.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		matched = append(matched, tupleID(tuple))
	}

	assert.ElementsMatch(t, []int32{2, 3}, matched)
}
