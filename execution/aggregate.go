package execution

import (
	"io"

	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

// AggregateFunc is one of count/sum/min/max/avg, applied to the values a
// GroupKey/ValueOf pair extracts from every tuple in a group.
type AggregateFunc int

const (
	AggCount AggregateFunc = iota
	AggSum
	AggMin
	AggMax
	AggAvg
)

type aggState struct {
	count int64
	sum   float64
	min   float64
	max   float64
	seen  bool
}

func (s *aggState) add(v float64) {
	s.count++
	s.sum += v
	if !s.seen || v < s.min {
		s.min = v
	}
	if !s.seen || v > s.max {
		s.max = v
	}
	s.seen = true
}

func (s *aggState) result(fn AggregateFunc) float64 {
	switch fn {
	case AggCount:
		return float64(s.count)
	case AggSum:
		return s.sum
	case AggMin:
		return s.min
	case AggMax:
		return s.max
	case AggAvg:
		if s.count == 0 {
			return 0
		}
		return s.sum / float64(s.count)
	}
	return 0
}

// AggregationExecutor groups its child's output by GroupKey and computes
// Func over ValueOf(tuple) within each group, materializing the whole
// result set on Init the way a hash-based aggregate operator must
// (original_source/src/execution/aggregation_executor.cpp).
type AggregationExecutor struct {
	child    Executor
	groupKey func(t *heap.Tuple) string
	valueOf  func(t *heap.Tuple) float64
	fn       AggregateFunc
	encode   func(group string, result float64) []byte

	groups []string
	states map[string]*aggState
	pos    int
}

func NewAggregationExecutor(
	child Executor,
	groupKey func(t *heap.Tuple) string,
	valueOf func(t *heap.Tuple) float64,
	fn AggregateFunc,
	encode func(group string, result float64) []byte,
) *AggregationExecutor {
	return &AggregationExecutor{child: child, groupKey: groupKey, valueOf: valueOf, fn: fn, encode: encode}
}

func (e *AggregationExecutor) Init() error {
	if err := e.child.Init(); err != nil {
		return err
	}
	e.states = make(map[string]*aggState)
	e.groups = nil
	e.pos = 0

	for {
		tuple, _, err := e.child.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		key := e.groupKey(tuple)
		st, ok := e.states[key]
		if !ok {
			st = &aggState{}
			e.states[key] = st
			e.groups = append(e.groups, key)
		}
		st.add(e.valueOf(tuple))
	}
	return nil
}

func (e *AggregationExecutor) Next() (*heap.Tuple, types.RID, error) {
	if e.pos >= len(e.groups) {
		return nil, types.RID{}, io.EOF
	}
	group := e.groups[e.pos]
	e.pos++
	result := e.states[group].result(e.fn)
	return &heap.Tuple{Data: e.encode(group, result)}, types.RID{}, nil
}
