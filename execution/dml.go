package execution

import (
	"io"

	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// InsertExecutor writes a fixed batch of rows into a table heap, one Next
// call at a time, mirroring the source's InsertExecutor consuming a
// values-list child.
type InsertExecutor struct {
	tableHeap *heap.TableHeap
	rows      [][]byte
	pos       int
}

func NewInsertExecutor(tableHeap *heap.TableHeap, rows [][]byte) *InsertExecutor {
	return &InsertExecutor{tableHeap: tableHeap, rows: rows}
}

func (e *InsertExecutor) Init() error { e.pos = 0; return nil }

func (e *InsertExecutor) Next() (*heap.Tuple, types.RID, error) {
	if e.pos >= len(e.rows) {
		return nil, types.RID{}, io.EOF
	}
	data := e.rows[e.pos]
	e.pos++
	rid, err := e.tableHeap.InsertTuple(data)
	if err != nil {
		return nil, types.RID{}, err
	}
	return &heap.Tuple{RID: rid, Data: data}, rid, nil
}

// DeleteExecutor deletes every tuple its child scan produces.
type DeleteExecutor struct {
	child     Executor
	tableHeap *heap.TableHeap
}

func NewDeleteExecutor(child Executor, tableHeap *heap.TableHeap) *DeleteExecutor {
	return &DeleteExecutor{child: child, tableHeap: tableHeap}
}

func (e *DeleteExecutor) Init() error { return e.child.Init() }

func (e *DeleteExecutor) Next() (*heap.Tuple, types.RID, error) {
	tuple, rid, err := e.child.Next()
	if err != nil {
		return nil, types.RID{}, err
	}
	if err := e.tableHeap.DeleteTuple(rid); err != nil {
		return nil, types.RID{}, err
	}
	return tuple, rid, nil
}

// UpdateFunc transforms a tuple's bytes into its replacement.
type UpdateFunc func(data []byte) []byte

// UpdateExecutor replaces every tuple its child scan produces.
type UpdateExecutor struct {
	child     Executor
	tableHeap *heap.TableHeap
	transform UpdateFunc
}

func NewUpdateExecutor(child Executor, tableHeap *heap.TableHeap, transform UpdateFunc) *UpdateExecutor {
	return &UpdateExecutor{child: child, tableHeap: tableHeap, transform: transform}
}

func (e *UpdateExecutor) Init() error { return e.child.Init() }

func (e *UpdateExecutor) Next() (*heap.Tuple, types.RID, error) {
	tuple, rid, err := e.child.Next()
	if err != nil {
		return nil, types.RID{}, err
	}
	newData := e.transform(tuple.Data)
	newRID, err := e.tableHeap.UpdateTuple(rid, newData)
	if err != nil {
		return nil, types.RID{}, err
	}
	return &heap.Tuple{RID: newRID, Data: newData}, newRID, nil
}
