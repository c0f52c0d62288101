// Package types holds the small value types shared across the storage and
// indexing packages: page identifiers, record identifiers, comparators,
// and the fixed-width generic key family the extendible hash table is
// monomorphized over.
package types

import "github.com/hash-roar/15445/common"

// PageID identifies a page. INVALID_PAGE_ID (spec.md §3) is -1.
type PageID int32

// InvalidPageID is the sentinel for "no page".
const InvalidPageID PageID = common.InvalidPageID

// IsValid reports whether id names an actual page.
func (id PageID) IsValid() bool {
	return id != InvalidPageID
}
