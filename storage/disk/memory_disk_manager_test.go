package disk

import (
	"testing"

	"github.com/hash-roar/15445/common"
	"github.com/hash-roar/15445/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryManager_WriteReadRoundTrip(t *testing.T) {
	dm := NewMemoryManager()
	defer dm.ShutDown()

	id := dm.AllocatePage()
	buf := make([]byte, common.PageSize)
	copy(buf, []byte("payload"))
	require.NoError(t, dm.WritePage(id, buf))

	out := make([]byte, common.PageSize)
	require.NoError(t, dm.ReadPage(id, out))
	assert.Equal(t, buf, out)
	assert.EqualValues(t, 1, dm.GetNumWrites())
}

func TestMemoryManager_ReadPastEndZeroPads(t *testing.T) {
	dm := NewMemoryManager()
	defer dm.ShutDown()

	out := make([]byte, common.PageSize)
	for i := range out {
		out[i] = 0xFF
	}
	require.NoError(t, dm.ReadPage(types.PageID(5), out))
	for _, b := range out {
		assert.Zero(t, b)
	}
}
