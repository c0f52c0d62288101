package heap

import "github.com/hash-roar/15445/types"

// Tuple is an opaque row: the heap and its callers agree on how to decode
// Data, the way the teacher's Tuple leaves the payload as raw bytes and
// lets the caller's schema interpret it.
type Tuple struct {
	RID  types.RID
	Data []byte
}

func NewTuple(data []byte) *Tuple {
	return &Tuple{Data: data}
}

func (t *Tuple) Size() uint32 { return uint32(len(t.Data)) }
