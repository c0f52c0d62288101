package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLRUReplacer_VictimOrder(t *testing.T) {
	r := NewLRUReplacer(7)

	r.Unpin(1)
	r.Unpin(2)
	r.Unpin(3)
	r.Unpin(4)
	r.Unpin(5)
	r.Unpin(6)
	assert.EqualValues(t, 6, r.Size())

	r.Pin(3) // pinning removes it from candidacy entirely

	victim, ok := r.Victim()
	assert.True(t, ok)
	assert.EqualValues(t, 1, victim, "1 was unpinned first, so it is the LRU victim")

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.EqualValues(t, 2, victim)

	r.Unpin(3)
	r.Unpin(4) // re-unpinning 4 does not move it since it's already tracked... but it never left

	victim, ok = r.Victim()
	assert.True(t, ok)
	assert.EqualValues(t, 4, victim)

	assert.EqualValues(t, 3, r.Size(), "3, 6, 5 remain tracked")
}

func TestLRUReplacer_EmptyReturnsFalse(t *testing.T) {
	r := NewLRUReplacer(1)
	_, ok := r.Victim()
	assert.False(t, ok)
}

func TestLRUReplacer_PinNoOpIfAbsent(t *testing.T) {
	r := NewLRUReplacer(1)
	r.Pin(42) // must not panic
	assert.EqualValues(t, 0, r.Size())
}
