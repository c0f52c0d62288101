// Package execution provides small iterator-model (Volcano-style)
// executor stubs over storage/heap and container/hash (spec.md §6's
// "executor" collaborator, specified only at the interface). None of them
// do cost-based planning; they exist to exercise the storage core end to
// end, not to implement a query optimizer.
package execution

import (
	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// Executor is the iterator every operator implements:
// original_source/src/execution/*.cpp's Init/Next split, generalized to
// Go's (value, error) idiom. Next returns io.EOF once exhausted.
type Executor interface {
	Init() error
	Next() (*heap.Tuple, types.RID, error)
}
