package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

type inflateState byte

const (
	// awaitingHeaderInflateState: the next bits are BFINAL and BTYPE, or,
	// if the previous block was final, the payload is complete.
	awaitingHeaderInflateState inflateState = iota

	// storedInflateState: copying the remaining bytes of a stored block.
	storedInflateState

	// huffmanInflateState: decoding literal/length symbols of a fixed or
	// dynamic block.
	huffmanInflateState

	// copyInflateState: part way through a back-reference copy.
	copyInflateState

	// doneInflateState: the final block has ended.
	doneInflateState

	// errorInflateState: a fatal error was reported; only reset is valid.
	errorInflateState
)

var inflateStateData = []enumhelper.EnumData{
	{GoName: "awaitingHeaderInflateState", Name: "awaitingHeader"},
	{GoName: "storedInflateState", Name: "stored"},
	{GoName: "huffmanInflateState", Name: "huffman"},
	{GoName: "copyInflateState", Name: "copy"},
	{GoName: "doneInflateState", Name: "done"},
	{GoName: "errorInflateState", Name: "error"},
}

func (s inflateState) GoString() string {
	return enumhelper.DereferenceEnumData("inflateState", inflateStateData, uint(s)).GoName
}

func (s inflateState) String() string {
	return enumhelper.DereferenceEnumData("inflateState", inflateStateData, uint(s)).Name
}

func (s inflateState) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("inflateState", inflateStateData, uint(s))
}

var _ fmt.GoStringer = inflateState(0)
var _ fmt.Stringer = inflateState(0)
