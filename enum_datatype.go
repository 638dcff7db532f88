package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// DataType reports what the compressor claimed about the content: the gzip
// FTEXT flag marks probable text, its absence probable binary.  Other formats
// carry no such claim.
type DataType byte

const (
	// UnknownData means the stream made no claim.
	UnknownData DataType = iota

	// BinaryData means FTEXT was clear.
	BinaryData

	// TextData means FTEXT was set.
	TextData
)

var dataTypeData = []enumhelper.EnumData{
	{GoName: "UnknownData", Name: "unknown"},
	{GoName: "BinaryData", Name: "binary"},
	{GoName: "TextData", Name: "text"},
}

// GoString returns the Go string representation of this DataType constant.
func (d DataType) GoString() string {
	return enumhelper.DereferenceEnumData("DataType", dataTypeData, uint(d)).GoName
}

// String returns the string representation of this DataType constant.
func (d DataType) String() string {
	return enumhelper.DereferenceEnumData("DataType", dataTypeData, uint(d)).Name
}

// MarshalJSON returns the JSON representation of this DataType constant.
func (d DataType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("DataType", dataTypeData, uint(d))
}

var _ fmt.GoStringer = DataType(0)
var _ fmt.Stringer = DataType(0)
