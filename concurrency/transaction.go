// Package concurrency provides the transaction/lock-manager collaborator
// stubs spec.md §6 specifies at the interface only: real two-phase locking
// and deadlock detection are non-goals (spec.md §1), so LockManager here
// always grants and Transaction only tracks the state machine shape the
// original lock manager checks against.
package concurrency

import (
	"github.com/google/uuid"
)

// IsolationLevel mirrors the levels original_source/src/concurrency
// distinguishes, even though NoopLockManager does not enforce any of them.
type IsolationLevel int

const (
	ReadUncommitted IsolationLevel = iota
	ReadCommitted
	RepeatableRead
	Serializable
)

// State is the 2PL phase a transaction is in
// (original_source/src/concurrency/lock_manager.cpp's TransactionState).
type State int

const (
	Growing State = iota
	Shrinking
	Committed
	Aborted
)

// Transaction is the opaque handle spec.md §6 threads unchanged through
// every hash-table and executor operation. The core never inspects it; it
// exists so a caller-supplied Transaction can carry lock and abort state
// across the boundary between the storage core and its collaborators.
type Transaction struct {
	id        uuid.UUID
	isolation IsolationLevel
	state     State
}

// NewTransaction starts a fresh transaction in the Growing phase.
func NewTransaction(isolation IsolationLevel) *Transaction {
	return &Transaction{id: uuid.New(), isolation: isolation, state: Growing}
}

func (t *Transaction) ID() uuid.UUID { return t.id }

func (t *Transaction) IsolationLevel() IsolationLevel { return t.isolation }

func (t *Transaction) State() State { return t.state }

// SetState enforces the one-way phase transitions 2PL requires: Growing
// can only move to Shrinking, Committed, or Aborted; once Shrinking, only
// Committed or Aborted remain reachable.
func (t *Transaction) SetState(s State) {
	if t.state == Committed || t.state == Aborted {
		return
	}
	if t.state == Shrinking && s == Growing {
		return
	}
	t.state = s
}
