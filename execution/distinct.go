package execution

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// DistinctExecutor drops tuples whose Key has already been seen, backed by
// a golang-set set of encoded keys — the same "seen" set shape
// original_source/src/execution/distinct_executor.cpp keeps as a
// std::unordered_set.
type DistinctExecutor struct {
	child Executor
	key   func(t *heap.Tuple) string
	seen  mapset.Set[string]
}

func NewDistinctExecutor(child Executor, key func(t *heap.Tuple) string) *DistinctExecutor {
	return &DistinctExecutor{child: child, key: key}
}

func (e *DistinctExecutor) Init() error {
	e.seen = mapset.NewSet[string]()
	return e.child.Init()
}

func (e *DistinctExecutor) Next() (*heap.Tuple, types.RID, error) {
	for {
		tuple, rid, err := e.child.Next()
		if err != nil {
			return nil, types.RID{}, err
		}
		k := e.key(tuple)
		if e.seen.Contains(k) {
			continue
		}
		e.seen.Add(k)
		return tuple, rid, nil
	}
}
