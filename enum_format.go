package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// Format indicates the envelope expected around the DEFLATE payload.
type Format byte

const (
	// AutoFormat requests that Reader detect the envelope from the first
	// two bytes of each stream: gzip magic, a valid zlib header, or
	// otherwise raw DEFLATE.
	AutoFormat Format = iota

	// RawFormat indicates a raw DEFLATE stream (RFC 1951) with no header
	// or trailer.
	RawFormat

	// ZlibFormat indicates a zlib stream (RFC 1950).
	ZlibFormat

	// GZIPFormat indicates a gzip stream (RFC 1952).
	GZIPFormat

	// DefaultFormat is the Format used when none is specified.
	DefaultFormat = GZIPFormat
)

var formatData = []enumhelper.EnumData{
	{GoName: "AutoFormat", Name: "auto"},
	{GoName: "RawFormat", Name: "raw"},
	{GoName: "ZlibFormat", Name: "zlib"},
	{GoName: "GZIPFormat", Name: "gzip", Aliases: []string{strDefault, "gz"}},
}

// IsValid returns true if f is a valid Format constant.
func (f Format) IsValid() bool {
	return f >= AutoFormat && f <= GZIPFormat
}

// GoString returns the Go string representation of this Format constant.
func (f Format) GoString() string {
	return enumhelper.DereferenceEnumData("Format", formatData, uint(f)).GoName
}

// String returns the string representation of this Format constant.
func (f Format) String() string {
	return enumhelper.DereferenceEnumData("Format", formatData, uint(f)).Name
}

// MarshalJSON returns the JSON representation of this Format constant.
func (f Format) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("Format", formatData, uint(f))
}

// Parse parses a string representation of a Format constant.
func (f *Format) Parse(str string) error {
	value, err := enumhelper.ParseEnum("Format", formatData, str)
	*f = Format(value)
	return err
}

var _ fmt.GoStringer = Format(0)
var _ fmt.Stringer = Format(0)
