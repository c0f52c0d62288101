// Package catalog resolves table and index names for the executor stubs
// (spec.md §6's "catalog" collaborator, specified at the interface only).
package catalog

import (
	"fmt"
	"sync"

	"github.com/hash-roar/15445/storage/heap"
)

// TableInfo bundles a name with the heap that stores its rows.
type TableInfo struct {
	Name string
	Heap *heap.TableHeap
}

// IndexInfo bundles a name with the table it indexes; the concrete index
// object is left as `any` since it is a monomorphized
// ExtendibleHashTable[K, V] whose K/V the catalog itself has no reason to
// know about.
type IndexInfo struct {
	Name      string
	TableName string
	Index     any
}

// Catalog is a name-keyed registry of tables and indexes, backed by
// sync.Map the way the teacher's own catalog guards concurrent DDL/DML
// against lookups from multiple executor goroutines.
type Catalog struct {
	tables  sync.Map // string -> *TableInfo
	indexes sync.Map // string -> *IndexInfo
}

func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) CreateTable(name string, h *heap.TableHeap) *TableInfo {
	info := &TableInfo{Name: name, Heap: h}
	c.tables.Store(name, info)
	return info
}

func (c *Catalog) GetTable(name string) (*TableInfo, error) {
	v, ok := c.tables.Load(name)
	if !ok {
		return nil, fmt.Errorf("catalog: no table named %q", name)
	}
	return v.(*TableInfo), nil
}

func (c *Catalog) CreateIndex(name, tableName string, index any) *IndexInfo {
	info := &IndexInfo{Name: name, TableName: tableName, Index: index}
	c.indexes.Store(name, info)
	return info
}

func (c *Catalog) GetIndex(name string) (*IndexInfo, error) {
	v, ok := c.indexes.Load(name)
	if !ok {
		return nil, fmt.Errorf("catalog: no index named %q", name)
	}
	return v.(*IndexInfo), nil
}
