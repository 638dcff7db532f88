package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// ErrorKind classifies the ways in which a compressed stream can be rejected.
//
// Every ErrorKind is itself an error, so that callers can test for a class of
// failure with errors.Is:
//
//	if errors.Is(err, inflate.ChecksumMismatch) {
//		...
//	}
//
type ErrorKind byte

const (
	// UnknownError is a dummy value that never appears in a returned error.
	UnknownError ErrorKind = iota

	// InvalidMagic indicates that the stream does not begin with the gzip
	// identification bytes 0x1f 0x8b.
	InvalidMagic

	// UnsupportedMethod indicates a compression method other than DEFLATE.
	UnsupportedMethod

	// InvalidHeader indicates a malformed container header, such as
	// reserved flag bits being set or a failed header checksum.
	InvalidHeader

	// CorruptBlock indicates a malformed DEFLATE block: a bad stored
	// length pair, an over-subscribed Huffman code, an invalid symbol, and
	// so on.
	CorruptBlock

	// WindowUnderflow indicates a back-reference that reaches further back
	// than the data decoded so far.
	WindowUnderflow

	// ChecksumMismatch indicates that the checksum stored in the trailer
	// does not match the decompressed data.
	ChecksumMismatch

	// LengthMismatch indicates that the length stored in the gzip trailer
	// does not match the decompressed data.
	LengthMismatch

	// UnexpectedEndOfInput indicates that the input ended in the middle of
	// the stream.
	UnexpectedEndOfInput

	// CorruptStream wraps any failure of the DEFLATE payload itself.
	CorruptStream
)

var errorKindData = []enumhelper.EnumData{
	{GoName: "UnknownError", Name: "unknown error"},
	{GoName: "InvalidMagic", Name: "invalid magic"},
	{GoName: "UnsupportedMethod", Name: "unsupported method"},
	{GoName: "InvalidHeader", Name: "invalid header"},
	{GoName: "CorruptBlock", Name: "corrupt block"},
	{GoName: "WindowUnderflow", Name: "window underflow"},
	{GoName: "ChecksumMismatch", Name: "checksum mismatch"},
	{GoName: "LengthMismatch", Name: "length mismatch"},
	{GoName: "UnexpectedEndOfInput", Name: "unexpected end of input"},
	{GoName: "CorruptStream", Name: "corrupt stream"},
}

// IsValid returns true if k is a valid ErrorKind constant.
func (k ErrorKind) IsValid() bool {
	return k > UnknownError && k <= CorruptStream
}

// GoString returns the Go string representation of this ErrorKind constant.
func (k ErrorKind) GoString() string {
	return enumhelper.DereferenceEnumData("ErrorKind", errorKindData, uint(k)).GoName
}

// String returns the string representation of this ErrorKind constant.
func (k ErrorKind) String() string {
	return enumhelper.DereferenceEnumData("ErrorKind", errorKindData, uint(k)).Name
}

// MarshalJSON returns the JSON representation of this ErrorKind constant.
func (k ErrorKind) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("ErrorKind", errorKindData, uint(k))
}

// Error fulfills the error interface.
func (k ErrorKind) Error() string {
	return "inflate: " + k.String()
}

var _ fmt.GoStringer = ErrorKind(0)
var _ fmt.Stringer = ErrorKind(0)
var _ error = ErrorKind(0)
