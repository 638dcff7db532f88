package inflate

import (
	"github.com/chronos-tachyon/assert"
	"github.com/rs/zerolog"
)

// Tracer is an interface which callers can implement in order to receive
// Events.  Events provide feedback on the progress of decompression.
type Tracer interface {
	OnEvent(Event)
}

// Event is a collection of fields that provide feedback on the progress of
// decompression.  Events are provided to Tracers registered with a Reader.
//
// Pointers inside an Event are only valid for the duration of the OnEvent
// call; copy anything that must be retained.
type Event struct {
	Type              EventType
	InputBytesTotal   uint64
	InputBytesStream  uint64
	OutputBytesTotal  uint64
	OutputBytesStream uint64
	NumStreams        uint
	Format            Format
	Header            *Header
	Block             *BlockEvent
	Trees             *TreesEvent
	Footer            *FooterEvent
}

// BlockEvent is a sub-struct that is only present for BlockBeginEvent,
// BlockTreesEvent, and BlockEndEvent.
type BlockEvent struct {
	Type    BlockType
	IsFinal bool
}

// TreesEvent is a sub-struct that is only present for BlockTreesEvent.
type TreesEvent struct {
	CodeCount          uint16
	LiteralLengthCount uint16
	DistanceCount      uint16

	CodeSizes          SizeList
	LiteralLengthSizes SizeList
	DistanceSizes      SizeList
}

// FooterEvent is a sub-struct that is only present for StreamEndEvent.  Only
// the fields carried by the stream's Format are set.
type FooterEvent struct {
	Adler32 Checksum32
	CRC32   Checksum32
	Length  uint32
}

// type NoOpTracer {{{

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// OnEvent fulfills Tracer.
func (NoOpTracer) OnEvent(event Event) {}

var _ Tracer = NoOpTracer{}

// }}}

// type TracerFunc {{{

// TracerFunc is an implementation of Tracer that calls a function.
type TracerFunc func(Event)

// OnEvent fulfills Tracer.
func (tr TracerFunc) OnEvent(event Event) {
	tr(event)
}

var _ Tracer = TracerFunc(nil)

// }}}

// type captureHeaderTracer {{{

// CaptureHeader returns a Tracer implementation which will fill the pointed-to
// Header object when StreamHeaderEvent is encountered.  With multi-member
// input, the last member's header wins.
func CaptureHeader(ptr *Header) Tracer {
	assert.NotNil(&ptr)
	return captureHeaderTracer{ptr: ptr}
}

type captureHeaderTracer struct {
	ptr *Header
}

// OnEvent fulfills Tracer.
func (tr captureHeaderTracer) OnEvent(event Event) {
	if event.Type == StreamHeaderEvent && event.Header != nil {
		*tr.ptr = *event.Header
		tr.ptr.ExtraData.Records = cloneExtraRecords(event.Header.ExtraData.Records)
	}
}

var _ Tracer = captureHeaderTracer{}

func cloneExtraRecords(in []ExtraDataRecord) []ExtraDataRecord {
	if in == nil {
		return nil
	}
	out := make([]ExtraDataRecord, len(in))
	for i, rec := range in {
		out[i].ID = rec.ID
		out[i].Bytes = append([]byte(nil), rec.Bytes...)
	}
	return out
}

// }}}

// type logTracer {{{

// Log returns a Tracer implementation which will log each Event at Trace
// priority.
func Log(logger zerolog.Logger) Tracer {
	return logTracer{logger: logger}
}

type logTracer struct {
	logger zerolog.Logger
}

// OnEvent fulfills Tracer.
func (tr logTracer) OnEvent(event Event) {
	tr.logger.Trace().
		Str("type", event.Type.String()).
		Uint64("inputBytesTotal", event.InputBytesTotal).
		Uint64("outputBytesTotal", event.OutputBytesTotal).
		Uint("numStreams", event.NumStreams).
		Interface("event", event).
		Msg("OnEvent")
}

var _ Tracer = logTracer{}

// }}}
