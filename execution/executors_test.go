package execution

import (
	"io"
	"testing"

	"github.com/hash-roar/15445/storage/buffer"
	"github.com/hash-roar/15445/storage/disk"
	"github.com/hash-roar/15445/storage/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, e Executor) [][]byte {
	t.Helper()
	require.NoError(t, e.Init())
	var out [][]byte
	for {
		tuple, _, err := e.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		out = append(out, tuple.Data)
	}
	return out
}

func newHeapWithRows(t *testing.T, rows ...int32) *heap.TableHeap {
	t.Helper()
	bpm := buffer.NewBufferPoolManagerInstance(20, 1, 0, disk.NewMemoryManager())
	h := heap.NewTableHeap(bpm)
	for _, r := range rows {
		_, err := h.InsertTuple(intTuple(r))
		require.NoError(t, err)
	}
	return h
}

func TestLimitExecutor_StopsEarly(t *testing.T) {
	h := newHeapWithRows(t, 1, 2, 3, 4, 5)
	scan := NewSeqScanExecutor(h, nil)
	limit := NewLimitExecutor(scan, 2)

	out := drain(t, limit)
	assert.Len(t, out, 2)
}

func TestDistinctExecutor_DropsRepeats(t *testing.T) {
	h := newHeapWithRows(t, 1, 1, 2, 2, 3)
	scan := NewSeqScanExecutor(h, nil)
	dedup := NewDistinctExecutor(scan, func(t *heap.Tuple) string { return string(t.Data) })

	out := drain(t, dedup)
	assert.Len(t, out, 3)
}

func TestSeqScanExecutor_AppliesPredicate(t *testing.T) {
	h := newHeapWithRows(t, 1, 2, 3, 4)
	scan := NewSeqScanExecutor(h, func(t *heap.Tuple) bool { return tupleID(t)%2 == 0 })

	out := drain(t, scan)
	assert.Len(t, out, 2)
}

func TestAggregationExecutor_CountsPerGroup(t *testing.T) {
	h := newHeapWithRows(t, 1, 1, 2, 2, 2)
	scan := NewSeqScanExecutor(h, nil)
	agg := NewAggregationExecutor(
		scan,
		func(t *heap.Tuple) string { return string(rune(tupleID(t))) },
		func(t *heap.Tuple) float64 { return 1 },
		AggCount,
		func(group string, result float64) []byte { return intTuple(int32(result)) },
	)

	out := drain(t, agg)
	assert.Len(t, out, 2) // two distinct groups: 1 and 2
}
