package buffer

import (
	"context"
	"sync"

	"github.com/hash-roar/15445/storage/disk"
	"github.com/hash-roar/15445/storage/page"
	"github.com/hash-roar/15445/types"
	"golang.org/x/sync/errgroup"
)

// ParallelBufferPoolManager fans a single logical buffer pool out across N
// independent BufferPoolManagerInstances, each owning a disjoint shard of
// the page-id space (id % N == its index). Routing a request to its owner
// is a single mod operation; no cross-instance locking is needed there, but
// the round-robin cursor and any whole-pool iteration are shared mutable
// state and go under mu (spec.md §4.2, §5: "parallel pool latch guards only
// start_index and aggregate iteration").
type ParallelBufferPoolManager struct {
	mu         sync.Mutex
	instances  []*BufferPoolManagerInstance
	startIndex uint32 // round-robin cursor for NewPage
}

// NewParallelBufferPoolManager builds numInstances shards of poolSize
// frames each, one disk manager per shard (mirroring the source's one
// log/db file pair per instance).
func NewParallelBufferPoolManager(numInstances uint32, poolSize int, dmFactory func(instanceIndex uint32) disk.Manager) *ParallelBufferPoolManager {
	instances := make([]*BufferPoolManagerInstance, numInstances)
	for i := uint32(0); i < numInstances; i++ {
		instances[i] = NewBufferPoolManagerInstance(poolSize, numInstances, i, dmFactory(i))
	}
	return &ParallelBufferPoolManager{instances: instances}
}

// PoolSize returns the total frame count across every instance.
func (p *ParallelBufferPoolManager) PoolSize() int {
	p.mu.Lock()
	instances := p.instances
	p.mu.Unlock()
	total := 0
	for _, inst := range instances {
		total += inst.PoolSize()
	}
	return total
}

func (p *ParallelBufferPoolManager) instanceFor(pageID types.PageID) *BufferPoolManagerInstance {
	idx := uint32(pageID) % uint32(len(p.instances))
	return p.instances[idx]
}

func (p *ParallelBufferPoolManager) FetchPage(pageID types.PageID) *page.Page {
	return p.instanceFor(pageID).FetchPage(pageID)
}

func (p *ParallelBufferPoolManager) UnpinPage(pageID types.PageID, dirty bool) bool {
	return p.instanceFor(pageID).UnpinPage(pageID, dirty)
}

func (p *ParallelBufferPoolManager) FlushPage(pageID types.PageID) bool {
	return p.instanceFor(pageID).FlushPage(pageID)
}

func (p *ParallelBufferPoolManager) DeletePage(pageID types.PageID) bool {
	return p.instanceFor(pageID).DeletePage(pageID)
}

// NewPage asks each instance in turn, starting from startIndex, until one
// has a free frame, then advances startIndex so the next call starts
// somewhere else — the round-robin scheme spec.md §4.2 requires to avoid
// always hammering instance 0 when the pool is mostly empty.
func (p *ParallelBufferPoolManager) NewPage() (*page.Page, types.PageID) {
	n := uint32(len(p.instances))
	p.mu.Lock()
	start := p.startIndex
	p.startIndex = (p.startIndex + 1) % n
	p.mu.Unlock()
	for i := uint32(0); i < n; i++ {
		idx := (start + i) % n
		if pg, id := p.instances[idx].NewPage(); pg != nil {
			return pg, id
		}
	}
	return nil, types.InvalidPageID
}

// FlushAllPages flushes every instance concurrently, since each instance's
// latch is independent and I/O-bound work parallelizes cleanly.
func (p *ParallelBufferPoolManager) FlushAllPages() error {
	p.mu.Lock()
	instances := p.instances
	p.mu.Unlock()

	g, _ := errgroup.WithContext(context.Background())
	for _, inst := range instances {
		inst := inst
		g.Go(func() error {
			inst.FlushAllPages()
			return nil
		})
	}
	return g.Wait()
}
