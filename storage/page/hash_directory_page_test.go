package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory() *DirectoryPage {
	return NewDirectoryPage(&Data{})
}

func TestDirectoryPage_IncrGrowsMirrored(t *testing.T) {
	d := newTestDirectory()
	d.SetPageID(1)
	d.SetBucketPageID(0, 10)
	d.SetLocalDepth(0, 0)

	d.IncrGlobalDepth()
	assert.EqualValues(t, 1, d.GetGlobalDepth())
	assert.EqualValues(t, 10, d.GetBucketPageID(1), "slot 1 mirrors slot 0 after doubling")
}

func TestDirectoryPage_CanShrinkRequiresAllSlotsBelowDepth(t *testing.T) {
	d := newTestDirectory()
	d.SetBucketPageID(0, 10)
	d.SetLocalDepth(0, 0)
	d.IncrGlobalDepth()
	d.SetLocalDepth(0, 1)
	d.SetLocalDepth(1, 1)

	assert.False(t, d.CanShrink(), "both slots at full depth: cannot shrink")

	d.SetLocalDepth(0, 0)
	d.SetLocalDepth(1, 0)
	assert.True(t, d.CanShrink())
	d.DecrGlobalDepth()
	assert.EqualValues(t, 0, d.GetGlobalDepth())
}

func TestDirectoryPage_GetSplitImageIndex(t *testing.T) {
	d := newTestDirectory()
	d.SetLocalDepth(3, 2)
	assert.EqualValues(t, 3^(1<<1), d.GetSplitImageIndex(3))
}

func TestDirectoryPage_VerifyIntegrityAcceptsDistinctBucketsPerResidue(t *testing.T) {
	d := newTestDirectory()
	d.SetBucketPageID(0, 10)
	d.SetLocalDepth(0, 0)
	d.IncrGlobalDepth()
	d.SetLocalDepth(0, 1)
	d.SetLocalDepth(1, 1)
	d.SetBucketPageID(1, 20) // slot 1 shares residue 1 mod 2 alone, so this is actually fine

	assert.NotPanics(t, func() { d.VerifyIntegrity() })
}

func TestDirectoryPage_IncrAssertsBelowMax(t *testing.T) {
	d := newTestDirectory()
	require.NotPanics(t, func() {
		for i := 0; i < 3; i++ {
			d.IncrGlobalDepth()
		}
	})
}
