package execution

import (
	"io"

	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// LimitExecutor stops its child after n tuples.
type LimitExecutor struct {
	child   Executor
	limit   int
	emitted int
}

func NewLimitExecutor(child Executor, limit int) *LimitExecutor {
	return &LimitExecutor{child: child, limit: limit}
}

func (e *LimitExecutor) Init() error {
	e.emitted = 0
	return e.child.Init()
}

func (e *LimitExecutor) Next() (*heap.Tuple, types.RID, error) {
	if e.emitted >= e.limit {
		return nil, types.RID{}, io.EOF
	}
	tuple, rid, err := e.child.Next()
	if err != nil {
		return nil, types.RID{}, err
	}
	e.emitted++
	return tuple, rid, nil
}
