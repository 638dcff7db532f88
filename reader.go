package inflate

import (
	"hash"
	"io"
	"io/fs"
	"sync"

	"github.com/chronos-tachyon/assert"
	buffer "github.com/chronos-tachyon/buffer/v3"
	"github.com/rs/zerolog"

	"github.com/chronos-tachyon/inflate/internal/adler32"
	"github.com/chronos-tachyon/inflate/internal/crc32"
)

// Reader wraps an io.Reader and decompresses the data which flows through it.
//
// Decompression is driven entirely by calls to Read or WriteTo; a Reader
// starts no goroutines.  Output already returned by Read stays returned even
// if a later part of the stream turns out to be corrupt.
type Reader struct {
	mu sync.Mutex

	format      Format
	mlevel      MemoryLevel
	multistream bool
	strictHCRC  bool
	dict        []byte
	tracers     []Tracer
	logger      zerolog.Logger

	r      io.Reader
	br     bitReader
	inf    inflater
	output buffer.Buffer
	err    error
	state  readerState
	closed bool

	outputAdler32     hash.Hash32
	outputCRC32       hash.Hash32
	outputBytesTotal  uint64
	outputBytesStream uint64
	pending           [256]byte
	numPending        uint
	numStreams        uint

	header       Header
	actualFormat Format
}

// NewReader constructs and returns a new Reader with the given io.Reader and
// options.
func NewReader(r io.Reader, opts ...Option) *Reader {
	assert.NotNil(&r)

	var o options
	o.reset()
	o.apply(opts)
	o.populateDefaults()

	fr := &Reader{}
	fr.setOptions(&o)
	fr.br.init(fr.mlevel.numBits())
	fr.output.Init(fr.mlevel.numBits())
	fr.inf.init(&fr.br)
	fr.resetLocked(r)
	return fr
}

func (fr *Reader) setOptions(o *options) {
	fr.format = o.format
	fr.mlevel = o.mlevel
	fr.multistream = o.multistream
	fr.strictHCRC = o.strictHCRC
	fr.dict = o.dict
	fr.tracers = o.tracers
	fr.logger = o.logger
}

func (fr *Reader) resetLocked(r io.Reader) {
	fr.r = r
	fr.br.reset(r)
	fr.inf.reset(nil)
	fr.output.Clear()
	fr.err = nil
	fr.state = headerReaderState
	fr.closed = false
	fr.outputAdler32 = dummyHash32{}
	fr.outputCRC32 = dummyHash32{}
	fr.outputBytesTotal = 0
	fr.outputBytesStream = 0
	fr.numPending = 0
	fr.numStreams = 0
	fr.header = Header{}
	fr.actualFormat = fr.format
}

// Format returns the Format which this Reader expects.
func (fr *Reader) Format() Format {
	fr.mu.Lock()
	format := fr.format
	fr.mu.Unlock()
	return format
}

// ActualFormat returns the Format of the stream currently being decoded,
// which differs from Format only for AutoFormat.
func (fr *Reader) ActualFormat() Format {
	fr.mu.Lock()
	format := fr.actualFormat
	fr.mu.Unlock()
	return format
}

// MemoryLevel returns the MemoryLevel which this Reader uses.
func (fr *Reader) MemoryLevel() MemoryLevel {
	fr.mu.Lock()
	mlevel := fr.mlevel
	fr.mu.Unlock()
	return mlevel
}

// Tracers returns the Tracers which this Reader uses.
func (fr *Reader) Tracers() []Tracer {
	var tracers []Tracer
	fr.mu.Lock()
	if len(fr.tracers) != 0 {
		tracers = make([]Tracer, len(fr.tracers))
		copy(tracers, fr.tracers)
	}
	fr.mu.Unlock()
	return tracers
}

// Header returns the header of the most recently started stream.  For raw
// DEFLATE and zlib streams, and before the first header has been read, it
// is the zero Header.
func (fr *Reader) Header() Header {
	fr.mu.Lock()
	header := fr.header
	fr.mu.Unlock()
	return header
}

// NumStreams returns the number of streams started so far.
func (fr *Reader) NumStreams() uint {
	fr.mu.Lock()
	n := fr.numStreams
	fr.mu.Unlock()
	return n
}

// UnderlyingReader returns the io.Reader which this Reader uses.
func (fr *Reader) UnderlyingReader() io.Reader {
	fr.mu.Lock()
	r := fr.r
	fr.mu.Unlock()
	return r
}

// Reset re-initializes this Reader with the given io.Reader and options.  Any
// options given here are merged with all previous options.
func (fr *Reader) Reset(r io.Reader, opts ...Option) {
	assert.NotNil(&r)
	for _, opt := range opts {
		assert.NotNil(&opt)
	}

	fr.mu.Lock()
	defer fr.mu.Unlock()

	if len(opts) != 0 {
		var o options
		o.reset()
		o.format = fr.format
		o.mlevel = fr.mlevel
		o.multistream = fr.multistream
		o.strictHCRC = fr.strictHCRC
		o.dict = fr.dict
		o.tracers = fr.tracers
		o.logger = fr.logger
		o.apply(opts)
		o.populateDefaults()
		fr.setOptions(&o)

		if numBits := fr.mlevel.numBits(); fr.output.NumBits() != numBits {
			fr.output.Init(numBits)
			fr.br.init(numBits)
		}
	}

	fr.resetLocked(r)
}

// Read reads decompressed bytes into p.  Conforms to the io.Reader
// interface.
//
// Once an error other than io.EOF has been returned, every later call
// returns the same error.
func (fr *Reader) Read(p []byte) (int, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return 0, fs.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	for {
		if !fr.output.IsEmpty() {
			nn, _ := fr.output.Read(p)
			return nn, nil
		}
		if fr.err != nil {
			return 0, fr.err
		}
		fr.advance()
	}
}

// WriteTo writes all remaining decompressed bytes to w.  Conforms to the
// io.WriterTo interface.
func (fr *Reader) WriteTo(w io.Writer) (int64, error) {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return 0, fs.ErrClosed
	}

	var total int64
	for {
		for !fr.output.IsEmpty() {
			size := fr.output.Size()
			p := fr.output.PrepareBulkRead(size)
			nn, err := w.Write(p)
			fr.output.CommitBulkRead(uint(nn))
			total += int64(nn)
			if err != nil {
				return total, err
			}
			if nn < len(p) {
				return total, io.ErrShortWrite
			}
		}

		if fr.err == io.EOF {
			return total, nil
		}
		if fr.err != nil {
			return total, fr.err
		}
		fr.advance()
	}
}

// Close terminates decompression and closes this Reader.
//
// The underlying io.Reader is *not* closed, even if it supports io.Closer.
//
// The only method which is guaranteed to be safe to call on a Reader after
// Close is Reset, which will return the Reader to a non-closed state.
//
func (fr *Reader) Close() error {
	fr.mu.Lock()
	defer fr.mu.Unlock()

	if fr.closed {
		return fs.ErrClosed
	}
	fr.closed = true
	fr.output.Clear()
	return nil
}

// advance runs the stream state machine until the output stage is full or
// an error (possibly io.EOF) has been recorded.
func (fr *Reader) advance() {
	for fr.err == nil && !fr.output.IsFull() {
		switch fr.state {
		case headerReaderState:
			fr.readHeader()

		case blocksReaderState:
			done, err := fr.inf.advance(fr)
			if err != nil {
				fr.fail(fr.wrapInflateError(err))
				return
			}
			if done {
				fr.state = footerReaderState
			}

		case footerReaderState:
			fr.readFooter()

		case doneReaderState:
			fr.err = io.EOF

		default:
			assert.Raisef("readerState %#v not implemented", fr.state)
		}
	}
}

func (fr *Reader) fail(err error) {
	assert.NotNil(&err)
	fr.err = err
}

// wrapInflateError reports a failure of the DEFLATE payload as
// CorruptStream.  Errors from the underlying io.Reader pass through
// unchanged.
func (fr *Reader) wrapInflateError(err error) error {
	inner, ok := err.(CorruptInputError)
	if !ok {
		return err
	}
	return CorruptInputError{
		Kind:         CorruptStream,
		OffsetTotal:  inner.OffsetTotal,
		OffsetStream: inner.OffsetStream,
		Problem:      "corrupt DEFLATE data: " + inner.Problem,
		Err:          inner,
	}
}

func (fr *Reader) readHeader() {
	br := &fr.br

	if fr.numStreams != 0 {
		if !fr.multistream || fr.actualFormat != GZIPFormat {
			fr.state = doneReaderState
			return
		}
		if br.atEOF() {
			fr.state = doneReaderState
			return
		}
		if err := br.ioError(); err != nil {
			fr.fail(err)
			return
		}
	} else if br.atEOF() {
		fr.fail(br.errorf(UnexpectedEndOfInput, io.ErrUnexpectedEOF, "empty input"))
		return
	}

	fr.numStreams++
	br.beginStream()
	fr.outputBytesStream = 0
	fr.outputAdler32 = adler32.New()
	fr.outputCRC32 = crc32.New()
	fr.header = Header{}
	fr.actualFormat = fr.format

	fr.sendEvent(Event{
		Type: StreamBeginEvent,
	})

	var err error
	switch fr.format {
	case AutoFormat:
		err = fr.readHeaderAuto()
	case RawFormat:
		err = fr.readHeaderRaw()
	case ZlibFormat:
		err = fr.readHeaderZlib()
	case GZIPFormat:
		err = fr.readHeaderGZIP()
	default:
		assert.Raisef("Format %#v not implemented", fr.format)
	}
	if err != nil {
		fr.fail(err)
		return
	}

	dict := fr.dict
	if fr.actualFormat == GZIPFormat {
		dict = nil
	}
	fr.inf.reset(dict)

	h := new(Header)
	*h = fr.header
	fr.sendEvent(Event{
		Type:   StreamHeaderEvent,
		Header: h,
	})

	fr.state = blocksReaderState
}

func (fr *Reader) readFooter() {
	fr.flushPending()
	fr.br.alignToByte()

	footer, err := fr.readFooterFormat()

	fr.outputAdler32 = dummyHash32{}
	fr.outputCRC32 = dummyHash32{}

	if err != nil {
		fr.fail(err)
		return
	}

	fr.sendEvent(Event{
		Type:   StreamEndEvent,
		Footer: footer,
	})

	fr.sendEvent(Event{
		Type: StreamCloseEvent,
	})

	fr.state = headerReaderState
}

// isFull fulfills blockSink.
func (fr *Reader) isFull() bool {
	return fr.output.IsFull()
}

// emitByte fulfills blockSink.
func (fr *Reader) emitByte(ch byte) {
	err := fr.output.WriteByte(ch)
	assert.Assertf(err == nil, "WriteByte failed on a non-full buffer: %v", err)

	fr.outputBytesTotal++
	fr.outputBytesStream++

	fr.pending[fr.numPending] = ch
	fr.numPending++
	if fr.numPending >= uint(len(fr.pending)) {
		fr.flushPending()
	}
}

func (fr *Reader) flushPending() {
	p := fr.pending[:fr.numPending]
	_, _ = fr.outputAdler32.Write(p)
	_, _ = fr.outputCRC32.Write(p)
	fr.numPending = 0
}

// sendEvent fulfills blockSink.
func (fr *Reader) sendEvent(event Event) {
	event.InputBytesTotal = fr.br.offsetTotal()
	event.InputBytesStream = fr.br.offsetStream()
	event.OutputBytesTotal = fr.outputBytesTotal
	event.OutputBytesStream = fr.outputBytesStream
	event.NumStreams = fr.numStreams
	event.Format = fr.actualFormat
	for _, tr := range fr.tracers {
		tr.OnEvent(event)
	}
}

var _ io.ReadCloser = (*Reader)(nil)
var _ io.WriterTo = (*Reader)(nil)
var _ blockSink = (*Reader)(nil)
