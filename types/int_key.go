package types

import "encoding/binary"

// IntKey is the integer key type, mirroring the teacher's/original's
// IntComparator / GenericKey specialization for plain int32 keys.
type IntKey int32

// IntKeyCodec encodes IntKey as 4 little-endian bytes.
type IntKeyCodec struct{}

func (IntKeyCodec) Size() int { return 4 }

func (IntKeyCodec) Encode(dst []byte, v IntKey) {
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

func (IntKeyCodec) Decode(src []byte) IntKey {
	return IntKey(binary.LittleEndian.Uint32(src))
}

// CompareInt is the total order over IntKey.
func CompareInt(a, b IntKey) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// RIDCodec encodes types.RID as its 8-byte little-endian form.
type RIDCodec struct{}

func (RIDCodec) Size() int { return SizeOfRID }

func (RIDCodec) Encode(dst []byte, v RID) { v.Encode(dst) }

func (RIDCodec) Decode(src []byte) RID { return DecodeRID(src) }

// CompareRID orders RIDs by (PageID, Slot); used only for value-equality
// checks in bucket inserts and removes, never as a key ordering.
func CompareRID(a, b RID) int {
	switch {
	case a.PageID != b.PageID:
		if a.PageID < b.PageID {
			return -1
		}
		return 1
	case a.Slot < b.Slot:
		return -1
	case a.Slot > b.Slot:
		return 1
	default:
		return 0
	}
}
