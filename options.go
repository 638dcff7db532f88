package inflate

import (
	"github.com/chronos-tachyon/assert"
	"github.com/rs/zerolog"
)

// Option represents a configuration option for Reader and Decode.
type Option func(*options)

type options struct {
	format      Format
	mlevel      MemoryLevel
	multistream bool
	strictHCRC  bool
	dict        []byte
	tracers     []Tracer
	logger      zerolog.Logger
}

func (o *options) reset() {
	*o = options{
		format:      DefaultFormat,
		mlevel:      DefaultMemory,
		multistream: true,
		strictHCRC:  false,
		dict:        nil,
		tracers:     nil,
		logger:      zerolog.Nop(),
	}
}

func (o *options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *options) populateDefaults() {
	if o.mlevel == DefaultMemory {
		o.mlevel = FastestMemory
	}
}

// WithFormat specifies the Format expected to be read.  The default is
// GZIPFormat; AutoFormat detects the envelope of each stream.
func WithFormat(format Format) Option {
	assert.Assertf(format.IsValid(), "invalid Format %d", uint(format))
	return func(o *options) { o.format = format }
}

// WithMemoryLevel specifies the MemoryLevel to use.
func WithMemoryLevel(mlevel MemoryLevel) Option {
	assert.Assertf(mlevel.IsValid(), "invalid MemoryLevel %d", uint(mlevel))
	return func(o *options) { o.mlevel = mlevel }
}

// WithMultistream specifies whether gzip members that follow the first one
// are decoded and appended to the output (true, the default) or the Reader
// stops after the first member (false).  Only gzip input may contain more
// than one stream.
func WithMultistream(multistream bool) Option {
	return func(o *options) { o.multistream = multistream }
}

// WithStrictHeaderCRC specifies whether a gzip header CRC-16 mismatch is a
// fatal InvalidHeader error (true) or a logged warning (false, the
// default).
func WithStrictHeaderCRC(strict bool) Option {
	return func(o *options) { o.strictHCRC = strict }
}

// WithDictionary specifies a pre-shared LZ77 dictionary to assume as the
// history preceding each raw or zlib stream.  A zlib stream that declares a
// dictionary (FDICT) is only accepted if the Adler-32 of dict matches.  May
// specify nil to abandon a previously used dictionary.
func WithDictionary(dict []byte) Option {
	assert.Assert(dict == nil || len(dict) > 0, "invalid zero-length dictionary; specify nil to omit the dictionary entirely")
	if dict != nil {
		if len(dict) > (1 << windowNumBits) {
			dict = dict[len(dict)-(1<<windowNumBits):]
		}
		tmp := make([]byte, len(dict))
		copy(tmp, dict)
		dict = tmp
	}
	return func(o *options) { o.dict = dict }
}

// WithTracers specifies the list of Tracer instances which will receive
// Events as decompression proceeds.  Completely replaces any previous list.
func WithTracers(tracers ...Tracer) Option {
	for _, tr := range tracers {
		assert.NotNil(&tr)
	}
	if len(tracers) == 0 {
		tracers = nil
	} else {
		tmp := make([]Tracer, len(tracers))
		copy(tmp, tracers)
		tracers = tmp
	}
	return func(o *options) { o.tracers = tracers }
}

// WithLogger specifies the logger which receives non-fatal warnings, such as
// a gzip header CRC-16 mismatch.  The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
