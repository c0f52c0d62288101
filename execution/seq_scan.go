package execution

import (
	"io"

	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// Predicate filters tuples during a scan; nil means accept everything.
type Predicate func(t *heap.Tuple) bool

// SeqScanExecutor walks every live tuple of one table heap in page order.
type SeqScanExecutor struct {
	tableHeap *heap.TableHeap
	predicate Predicate
	it        *heap.TableIterator
}

func NewSeqScanExecutor(tableHeap *heap.TableHeap, predicate Predicate) *SeqScanExecutor {
	return &SeqScanExecutor{tableHeap: tableHeap, predicate: predicate}
}

func (e *SeqScanExecutor) Init() error {
	e.it = e.tableHeap.Begin()
	return nil
}

func (e *SeqScanExecutor) Next() (*heap.Tuple, types.RID, error) {
	for e.it.Valid() {
		tuple, err := e.it.Current()
		if err != nil {
			return nil, types.RID{}, err
		}
		rid := tuple.RID
		e.it.Next()
		if e.predicate == nil || e.predicate(tuple) {
			return tuple, rid, nil
		}
	}
	return nil, types.RID{}, io.EOF
}
