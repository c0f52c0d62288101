// Package common holds constants and small cross-cutting helpers shared by
// the storage and indexing packages: page-size configuration, invariant
// assertions, and the reader-writer latch used to serialize hash table
// access.
package common

// PageSize is the fixed size, in bytes, of a page on disk and of every
// buffer pool frame. It is a build-wide constant rather than a per-Config
// field because on-disk page layouts (storage/page, storage/heap) are sized
// against it: page.Data is a [PageSize]byte array type.
const PageSize = 4096

// InvalidPageID marks the absence of a page.
const InvalidPageID = -1

// MaxGlobalDepth bounds how many bits of a key's hash the directory may
// use. DirectoryArraySize follows directly from it (spec: 1 << MaxGlobalDepth).
const MaxGlobalDepth = 9

// DirectoryArraySize is the fixed capacity of the directory's local-depth
// and bucket-page-id arrays.
const DirectoryArraySize = 1 << MaxGlobalDepth

// MaxLocalDepth bounds how deep any single bucket may split. In this
// implementation it is the same ceiling as MaxGlobalDepth: a bucket can
// never need more bits of resolution than the directory can address.
const MaxLocalDepth = MaxGlobalDepth

// Config carries the tunables that in the original C++ source are
// compile-time constants (pool size, instance count); the page size stays
// the PageSize constant above. Go code
// that stands up a buffer pool takes a Config instead, built with
// functional options, so tests can run tiny pools without touching global
// state. No configuration library appears anywhere in the retrieved
// corpus for this domain, so this stays a plain struct — see DESIGN.md.
type Config struct {
	PoolSize     int
	NumInstances int
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithPoolSize sets the number of frames per buffer pool instance.
func WithPoolSize(n int) Option {
	return func(c *Config) { c.PoolSize = n }
}

// WithNumInstances sets the number of sharded buffer pool instances backing
// a ParallelBufferPoolManager. Ignored by a single BufferPoolManagerInstance.
func WithNumInstances(n int) Option {
	return func(c *Config) { c.NumInstances = n }
}

// NewConfig builds a Config with sane single-instance defaults, then
// applies opts in order.
func NewConfig(opts ...Option) Config {
	c := Config{PoolSize: 64, NumInstances: 1}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
