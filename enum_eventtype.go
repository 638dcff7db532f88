package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// EventType indicates the type of an Event.
type EventType byte

const (
	// StreamBeginEvent fires before the header of each stream (gzip
	// member) is parsed.
	StreamBeginEvent EventType = iota

	// StreamHeaderEvent fires once the stream header has been parsed.
	// Event.Header is set.
	StreamHeaderEvent

	// BlockBeginEvent fires after a DEFLATE block header (BFINAL, BTYPE)
	// has been read.  Event.Block is set.
	BlockBeginEvent

	// BlockTreesEvent fires once the Huffman codes for a fixed or dynamic
	// block are known.  Event.Block and Event.Trees are set.
	BlockTreesEvent

	// BlockEndEvent fires after the end of a block.  Event.Block is set.
	BlockEndEvent

	// StreamEndEvent fires after the final block, before the trailer is
	// checked.  Event.Footer holds the computed values.
	StreamEndEvent

	// StreamCloseEvent fires once the trailer has been verified.
	StreamCloseEvent
)

var eventTypeData = []enumhelper.EnumData{
	{GoName: "StreamBeginEvent", Name: "stream-begin"},
	{GoName: "StreamHeaderEvent", Name: "stream-header"},
	{GoName: "BlockBeginEvent", Name: "block-begin"},
	{GoName: "BlockTreesEvent", Name: "block-trees"},
	{GoName: "BlockEndEvent", Name: "block-end"},
	{GoName: "StreamEndEvent", Name: "stream-end"},
	{GoName: "StreamCloseEvent", Name: "stream-close"},
}

// GoString returns the Go string representation of this EventType constant.
func (e EventType) GoString() string {
	return enumhelper.DereferenceEnumData("EventType", eventTypeData, uint(e)).GoName
}

// String returns the string representation of this EventType constant.
func (e EventType) String() string {
	return enumhelper.DereferenceEnumData("EventType", eventTypeData, uint(e)).Name
}

// MarshalJSON returns the JSON representation of this EventType constant.
func (e EventType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("EventType", eventTypeData, uint(e))
}

var _ fmt.GoStringer = EventType(0)
var _ fmt.Stringer = EventType(0)
