package page

import (
	"encoding/binary"

	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/types"
	"github.com/golang-collections/collections/stack"
)

// Directory page byte layout (spec.md §6), little-endian throughout:
//
//	page_id            4 bytes
//	global_depth       4 bytes
//	local_depths       DirectoryArraySize bytes (1 per slot)
//	bucket_page_ids     4*DirectoryArraySize bytes
const (
	offsetPageID       = 0
	offsetGlobalDepth  = 4
	offsetLocalDepths  = 8
	offsetBucketPageID = offsetLocalDepths + common.DirectoryArraySize
)

// DirectoryPage is a typed view over a frame holding
// {page_id, global_depth, local_depths[], bucket_page_ids[]} (spec.md §3,
// §4.5), laid out directly on the frame's bytes the same way BucketPage is.
type DirectoryPage struct {
	data *Data
}

// NewDirectoryPage wraps data as a directory page view. Freshly allocated
// (zeroed) data reads as page_id=0, global_depth=0, all slots pointing at
// bucket page id 0 with local depth 0 — callers must call SetPageID and
// populate slot 0 after allocating a brand-new directory.
func NewDirectoryPage(data *Data) *DirectoryPage {
	return &DirectoryPage{data: data}
}

func (d *DirectoryPage) GetPageID() types.PageID {
	return types.PageID(int32(binary.LittleEndian.Uint32(d.data[offsetPageID : offsetPageID+4])))
}

func (d *DirectoryPage) SetPageID(id types.PageID) {
	binary.LittleEndian.PutUint32(d.data[offsetPageID:offsetPageID+4], uint32(int32(id)))
}

func (d *DirectoryPage) GetGlobalDepth() uint32 {
	return binary.LittleEndian.Uint32(d.data[offsetGlobalDepth : offsetGlobalDepth+4])
}

func (d *DirectoryPage) setGlobalDepth(depth uint32) {
	binary.LittleEndian.PutUint32(d.data[offsetGlobalDepth:offsetGlobalDepth+4], depth)
}

// GlobalDepthMask is (1 << global_depth) - 1.
func (d *DirectoryPage) GlobalDepthMask() uint32 {
	return (1 << d.GetGlobalDepth()) - 1
}

// Size is the used directory size, 1 << global_depth.
func (d *DirectoryPage) Size() uint32 {
	return 1 << d.GetGlobalDepth()
}

func (d *DirectoryPage) GetLocalDepth(slot uint32) uint8 {
	return d.data[offsetLocalDepths+slot]
}

func (d *DirectoryPage) SetLocalDepth(slot uint32, depth uint8) {
	d.data[offsetLocalDepths+slot] = depth
}

// LocalDepthMask is (1 << local_depths[slot]) - 1.
func (d *DirectoryPage) LocalDepthMask(slot uint32) uint32 {
	return (1 << d.GetLocalDepth(slot)) - 1
}

func (d *DirectoryPage) GetBucketPageID(slot uint32) types.PageID {
	off := offsetBucketPageID + int(slot)*4
	return types.PageID(int32(binary.LittleEndian.Uint32(d.data[off : off+4])))
}

func (d *DirectoryPage) SetBucketPageID(slot uint32, id types.PageID) {
	off := offsetBucketPageID + int(slot)*4
	binary.LittleEndian.PutUint32(d.data[off:off+4], uint32(int32(id)))
}

// IncrGlobalDepth grows the directory by one bit. Precondition:
// global_depth < MaxGlobalDepth. Slots [2^(g-1), 2^g) mirror
// [0, 2^(g-1)) so every slot keeps pointing at a valid bucket
// (spec.md §4.5).
func (d *DirectoryPage) IncrGlobalDepth() {
	common.Assert(d.GetGlobalDepth() < common.MaxGlobalDepth, "directory: global depth already at max")
	oldSize := d.Size()
	d.setGlobalDepth(d.GetGlobalDepth() + 1)
	for i := uint32(0); i < oldSize; i++ {
		d.SetBucketPageID(oldSize+i, d.GetBucketPageID(i))
		d.SetLocalDepth(oldSize+i, d.GetLocalDepth(i))
	}
}

// DecrGlobalDepth shrinks the directory by one bit. Precondition:
// CanShrink().
func (d *DirectoryPage) DecrGlobalDepth() {
	common.Assert(d.CanShrink(), "directory: cannot shrink, a slot still needs the full depth")
	d.setGlobalDepth(d.GetGlobalDepth() - 1)
}

// CanShrink reports whether every used slot's local depth is strictly less
// than the global depth, i.e. halving the directory would not orphan any
// slot's resolution.
func (d *DirectoryPage) CanShrink() bool {
	depth := d.GetGlobalDepth()
	if depth == 0 {
		return false
	}
	size := d.Size()
	for i := uint32(0); i < size; i++ {
		if uint32(d.GetLocalDepth(i)) >= depth {
			return false
		}
	}
	return true
}

// GetSplitImageIndex returns the slot that pairs with slot after its
// bucket's local depth has already been incremented to the new depth d:
// slot XOR (1 << (d-1)).
func (d *DirectoryPage) GetSplitImageIndex(slot uint32) uint32 {
	depth := d.GetLocalDepth(slot)
	common.Assert(depth > 0, "directory: split image undefined at local depth 0")
	return slot ^ (1 << (depth - 1))
}

// VerifyIntegrity checks every extendible-hashing invariant from spec.md
// §3, panicking (via common.Assert) on the first violation found. The first
// pass groups slots by the bucket page id they point at; the second pass
// pops each distinct bucket off a stack and checks that every slot sharing
// it agrees on local depth and residue class, so the pair-consistency
// invariant is actually driven by the stack rather than a flat nested loop.
func (d *DirectoryPage) VerifyIntegrity() {
	depth := d.GetGlobalDepth()
	common.Assert(depth <= common.MaxGlobalDepth, "directory: global depth %d exceeds max %d", depth, common.MaxGlobalDepth)

	size := d.Size()
	seen := stack.New()
	visited := map[types.PageID]bool{}
	slotsFor := map[types.PageID][]uint32{}
	for i := uint32(0); i < size; i++ {
		ld := d.GetLocalDepth(i)
		common.Assert(uint32(ld) <= depth, "directory: slot %d local depth %d exceeds global depth %d", i, ld, depth)

		bpid := d.GetBucketPageID(i)
		if !visited[bpid] {
			visited[bpid] = true
			seen.Push(bpid)
		}
		slotsFor[bpid] = append(slotsFor[bpid], i)
	}

	for seen.Len() > 0 {
		bpid := seen.Pop().(types.PageID)
		slots := slotsFor[bpid]
		ld := d.GetLocalDepth(slots[0])
		mod := uint32(1) << ld
		peer := slots[0] % mod
		for _, j := range slots[1:] {
			common.Assert(d.GetLocalDepth(j) == ld,
				"directory: bucket %d is referenced by slots with differing local depth", bpid)
			common.Assert(j%mod == peer,
				"directory: bucket %d is referenced by slots outside its residue class", bpid)
		}
	}
}
