// loomctl is a small demo binary that wires a buffer pool, an extendible
// hash index, and a table heap together against an in-memory disk
// manager, logging lifecycle events the way the storage core itself never
// does (spec.md §7).
package main

import (
	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/concurrency"
	"github.com/hash-roar/15445/container/hash"
	"github.com/hash-roar/15445/storage/buffer"
	"github.com/hash-roar/15445/storage/disk"
	"github.com/hash-roar/15445/storage/heap"
	"github.com/hash-roar/15445/types"
)

func main() {
	cfg := common.NewConfig(common.WithPoolSize(16), common.WithNumInstances(1))

	dm := disk.NewMemoryManager()
	defer dm.ShutDown()

	bpm := buffer.NewBufferPoolManagerInstance(cfg.PoolSize, 1, 0, dm)
	table := hash.NewExtendibleHashTable[types.IntKey, types.RID](
		bpm, types.IntKeyCodec{}, types.RIDCodec{}, types.CompareInt, types.CompareRID,
	)
	tableHeap := heap.NewTableHeap(bpm)
	txn := concurrency.NewTransaction(concurrency.ReadCommitted)

	common.Log.Infow("loomctl starting", "pool_size", cfg.PoolSize)

	rid, err := tableHeap.InsertTuple([]byte("hello, extendible hashing"))
	if err != nil {
		common.Log.Fatalw("insert failed", "err", err)
	}
	if !table.Insert(types.IntKey(1), rid, txn) {
		common.Log.Warnw("duplicate index entry", "key", 1)
	}

	matches := table.GetValue(types.IntKey(1), txn)
	common.Log.Infow("lookup", "key", 1, "matches", len(matches))

	bpm.FlushAllPages()
	common.Log.Infow("loomctl done")
}
