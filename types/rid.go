package types

import "encoding/binary"

// RID is a record identifier: the page a tuple lives on plus its slot
// within that page. It is the default ValueType the extendible hash index
// and the table heap traffic in, mirroring the teacher's storage/page/rid.go.
type RID struct {
	PageID PageID
	Slot   uint32
}

// NewRID builds an RID.
func NewRID(pageID PageID, slot uint32) RID {
	return RID{PageID: pageID, Slot: slot}
}

// SizeOfRID is RID's fixed on-disk encoding size in bytes.
const SizeOfRID = 8

// Encode writes the little-endian encoding of r into dst, which must be at
// least SizeOfRID bytes.
func (r RID) Encode(dst []byte) {
	binary.LittleEndian.PutUint32(dst[0:4], uint32(r.PageID))
	binary.LittleEndian.PutUint32(dst[4:8], r.Slot)
}

// DecodeRID reads an RID from its little-endian encoding.
func DecodeRID(src []byte) RID {
	return RID{
		PageID: PageID(binary.LittleEndian.Uint32(src[0:4])),
		Slot:   binary.LittleEndian.Uint32(src[4:8]),
	}
}
