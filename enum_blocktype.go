package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// BlockType indicates the type of a DEFLATE block, as given by its BTYPE
// header bits.
type BlockType byte

const (
	// ReservedBlock is BTYPE 11, which no valid stream contains.
	ReservedBlock BlockType = iota

	// StoredBlock is BTYPE 00: LEN bytes copied verbatim.
	StoredBlock

	// FixedBlock is BTYPE 01: Huffman codes fixed by RFC 1951 §3.2.6.
	FixedBlock

	// DynamicBlock is BTYPE 10: Huffman codes transmitted in the block
	// header.
	DynamicBlock
)

var blockTypeData = []enumhelper.EnumData{
	{GoName: "ReservedBlock", Name: "reserved"},
	{GoName: "StoredBlock", Name: "stored"},
	{GoName: "FixedBlock", Name: "fixed"},
	{GoName: "DynamicBlock", Name: "dynamic"},
}

// blockTypeFromBTYPE maps the 2-bit BTYPE field onto BlockType: 00 → 1,
// 01 → 2, 10 → 3, and 11 wraps around to 0.
func blockTypeFromBTYPE(btype uint32) BlockType {
	return BlockType(1+byte(btype)) & 0x03
}

// GoString returns the Go string representation of this BlockType constant.
func (b BlockType) GoString() string {
	return enumhelper.DereferenceEnumData("BlockType", blockTypeData, uint(b)).GoName
}

// String returns the string representation of this BlockType constant.
func (b BlockType) String() string {
	return enumhelper.DereferenceEnumData("BlockType", blockTypeData, uint(b)).Name
}

// MarshalJSON returns the JSON representation of this BlockType constant.
func (b BlockType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("BlockType", blockTypeData, uint(b))
}

var _ fmt.GoStringer = BlockType(0)
var _ fmt.Stringer = BlockType(0)
