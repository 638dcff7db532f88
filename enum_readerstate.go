package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

type readerState byte

const (
	// headerReaderState: the next input byte starts a stream header, or
	// (after at least one stream) the input may legitimately end here.
	headerReaderState readerState = iota

	// blocksReaderState: inside the DEFLATE payload of a stream.
	blocksReaderState

	// footerReaderState: the final block has ended and the trailer is
	// next.
	footerReaderState

	// doneReaderState: all streams are verified; Read returns io.EOF.
	doneReaderState
)

var readerStateData = []enumhelper.EnumData{
	{GoName: "headerReaderState", Name: "header"},
	{GoName: "blocksReaderState", Name: "blocks"},
	{GoName: "footerReaderState", Name: "footer"},
	{GoName: "doneReaderState", Name: "done"},
}

func (s readerState) GoString() string {
	return enumhelper.DereferenceEnumData("readerState", readerStateData, uint(s)).GoName
}

func (s readerState) String() string {
	return enumhelper.DereferenceEnumData("readerState", readerStateData, uint(s)).Name
}

func (s readerState) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("readerState", readerStateData, uint(s))
}

var _ fmt.GoStringer = readerState(0)
var _ fmt.Stringer = readerState(0)
