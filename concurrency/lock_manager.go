package concurrency

import "github.com/hash-roar/15445/types"

// LockManager grants row/table locks scoped to a Transaction's lifetime.
// spec.md §1 scopes deadlock detection and full 2PL out; this interface
// exists so executors and the table heap have somewhere to call into
// without depending on a concrete implementation.
type LockManager interface {
	LockShared(txn *Transaction, rid types.RID) bool
	LockExclusive(txn *Transaction, rid types.RID) bool
	Unlock(txn *Transaction, rid types.RID) bool
}

// NoopLockManager always grants and never blocks, tracking nothing. It is
// the default collaborator for tests and the demo CLI, matching
// spec.md's explicit scoping-out of real concurrency control.
type NoopLockManager struct{}

func NewNoopLockManager() *NoopLockManager { return &NoopLockManager{} }

func (NoopLockManager) LockShared(txn *Transaction, rid types.RID) bool    { return true }
func (NoopLockManager) LockExclusive(txn *Transaction, rid types.RID) bool { return true }
func (NoopLockManager) Unlock(txn *Transaction, rid types.RID) bool        { return true }
