package inflate

import (
	"encoding/binary"

	buffer "github.com/chronos-tachyon/buffer/v3"
	"github.com/chronos-tachyon/huffman"
)

// windowNumBits is log2 of the DEFLATE history window, 32 KiB.
const windowNumBits = 15

// blockSink receives the bytes and Events produced by an inflater.
type blockSink interface {
	// isFull reports that the sink cannot accept another byte right now.
	isFull() bool

	// emitByte accepts one decompressed byte.  It is only called when
	// isFull is false.
	emitByte(ch byte)

	// sendEvent forwards block-level progress to any Tracers.
	sendEvent(event Event)
}

// inflater decodes one DEFLATE payload (RFC 1951) from a bitReader.
//
// It is pull driven: advance runs only until the sink reports that it is
// full, and the next call resumes from the exact same place, which may be
// in the middle of a stored block or of a back-reference copy.  Running out
// of input is never a resumable condition, because the bitReader blocks on
// its io.Reader until data arrives or the source ends.
type inflater struct {
	br     *bitReader
	window buffer.Window
	state  inflateState
	err    error

	isFinal   bool
	blockType BlockType
	preset    uint64
	produced  uint64

	storedLeft   uint
	copyLength   uint
	copyDistance uint

	hLL *huffman.Decoder
	hD  *huffman.Decoder

	hdX  huffman.Decoder
	hdLL huffman.Decoder
	hdD  huffman.Decoder

	lengths     [physicalNumLLCodes + physicalNumDCodes]byte
	codeLengths [physicalNumXCodes]byte
}

func (inf *inflater) init(br *bitReader) {
	inf.br = br
	inf.window.Init(windowNumBits)
	inf.reset(nil)
}

// reset prepares the inflater for a new, independent payload.  If dict is
// non-empty, it becomes the history that back-references may reach into.
func (inf *inflater) reset(dict []byte) {
	inf.window.Clear()
	if len(dict) != 0 {
		_, _ = inf.window.Write(dict)
	}
	inf.preset = uint64(len(dict))
	inf.state = awaitingHeaderInflateState
	inf.err = nil
	inf.isFinal = false
	inf.blockType = ReservedBlock
	inf.produced = 0
	inf.storedLeft = 0
	inf.copyLength = 0
	inf.copyDistance = 0
	inf.hLL = nil
	inf.hD = nil
}

// advance decodes until the sink is full, the final block has ended, or an
// error occurs.  done is true once the final block has ended.  Errors are
// sticky.
func (inf *inflater) advance(sink blockSink) (done bool, err error) {
	for {
		switch inf.state {
		case doneInflateState:
			return true, nil
		case errorInflateState:
			return false, inf.err
		}

		if sink.isFull() {
			return false, nil
		}

		switch inf.state {
		case awaitingHeaderInflateState:
			err = inf.readBlockHeader(sink)
		case storedInflateState:
			err = inf.copyStored(sink)
		case huffmanInflateState:
			err = inf.decodeSymbols(sink)
		case copyInflateState:
			err = inf.copyMatch(sink)
		}

		if err != nil {
			inf.state = errorInflateState
			inf.err = err
			return false, err
		}
	}
}

func (inf *inflater) emit(sink blockSink, ch byte) {
	sink.emitByte(ch)
	_ = inf.window.WriteByte(ch)
	inf.produced++
}

func (inf *inflater) blockEvent() *BlockEvent {
	return &BlockEvent{Type: inf.blockType, IsFinal: inf.isFinal}
}

func (inf *inflater) readBlockHeader(sink blockSink) error {
	br := inf.br

	out, err := br.readBits(3)
	if err != nil {
		return err
	}

	inf.isFinal = (out & 0x01) != 0
	inf.blockType = blockTypeFromBTYPE(out >> 1)

	sink.sendEvent(Event{
		Type:  BlockBeginEvent,
		Block: inf.blockEvent(),
	})

	switch inf.blockType {
	case StoredBlock:
		return inf.readStoredHeader()

	case FixedBlock:
		inf.hLL, inf.hD = getFixedHuffDecoders()
		sink.sendEvent(Event{
			Type:  BlockTreesEvent,
			Block: inf.blockEvent(),
			Trees: &TreesEvent{
				LiteralLengthSizes: inf.hLL.SizeBySymbol(),
				DistanceSizes:      inf.hD.SizeBySymbol(),
			},
		})
		inf.state = huffmanInflateState
		return nil

	case DynamicBlock:
		if err := inf.readDynamicTrees(sink); err != nil {
			return err
		}
		inf.state = huffmanInflateState
		return nil

	default:
		return br.errorf(CorruptBlock, nil, "BTYPE 11 is reserved")
	}
}

func (inf *inflater) readStoredHeader() error {
	br := inf.br
	br.alignToByte()

	len0, err := br.readU16(binary.LittleEndian)
	if err != nil {
		return err
	}

	len1, err := br.readU16(binary.LittleEndian)
	if err != nil {
		return err
	}

	if len1 != ^len0 {
		return br.errorf(CorruptBlock, nil, "got LEN %#04x NLEN %#04x, expected NLEN %#04x", len0, len1, ^len0)
	}

	inf.storedLeft = uint(len0)
	inf.state = storedInflateState
	return nil
}

func (inf *inflater) endBlock(sink blockSink) {
	sink.sendEvent(Event{
		Type:  BlockEndEvent,
		Block: inf.blockEvent(),
	})
	if inf.isFinal {
		inf.state = doneInflateState
	} else {
		inf.state = awaitingHeaderInflateState
	}
}

func (inf *inflater) copyStored(sink blockSink) error {
	for inf.storedLeft != 0 {
		if sink.isFull() {
			return nil
		}
		ch, err := inf.br.readByte()
		if err != nil {
			return err
		}
		inf.emit(sink, ch)
		inf.storedLeft--
	}
	inf.endBlock(sink)
	return nil
}

func (inf *inflater) copyMatch(sink blockSink) error {
	for inf.copyLength != 0 {
		if sink.isFull() {
			return nil
		}
		ch, err := inf.window.LookupByte(inf.copyDistance)
		if err != nil {
			return inf.br.errorf(WindowUnderflow, err, "distance %d > window size %d", inf.copyDistance, inf.window.Size())
		}
		inf.emit(sink, ch)
		inf.copyLength--
	}
	inf.state = huffmanInflateState
	return nil
}

func (inf *inflater) decodeSymbols(sink blockSink) error {
	br := inf.br
	for !sink.isFull() {
		sym, err := readSymbol(br, inf.hLL)
		if err != nil {
			return err
		}
		symbol := uint16(sym)

		if symbol < 256 {
			inf.emit(sink, byte(symbol))
			continue
		}

		if symbol == endOfBlockSymbol {
			inf.endBlock(sink)
			return nil
		}

		length, err := inf.decodeLength(symbol)
		if err != nil {
			return err
		}

		sym, err = readSymbol(br, inf.hD)
		if err != nil {
			return err
		}
		symbol = uint16(sym)

		distance, err := inf.decodeDistance(symbol)
		if err != nil {
			return err
		}

		if history := inf.preset + inf.produced; uint64(distance) > history {
			return br.errorf(WindowUnderflow, nil, "distance %d > %d bytes of history", distance, history)
		}

		inf.copyLength = length
		inf.copyDistance = distance
		inf.state = copyInflateState
		return nil
	}
	return nil
}

// decodeLength maps a literal/length symbol in [257, 285] plus its extra
// bits to a match length in [3, 258].
func (inf *inflater) decodeLength(symbol uint16) (uint, error) {
	var length uint
	var additionalBits byte
	switch {
	case symbol < 265:
		length = uint(symbol) - 254
		additionalBits = 0

	case symbol < 269:
		length = 2*uint(symbol) - 519
		additionalBits = 1

	case symbol < 273:
		length = 4*uint(symbol) - 1057
		additionalBits = 2

	case symbol < 277:
		length = 8*uint(symbol) - 2149
		additionalBits = 3

	case symbol < 281:
		length = 16*uint(symbol) - 4365
		additionalBits = 4

	case symbol < 285:
		length = 32*uint(symbol) - 8861
		additionalBits = 5

	case symbol == 285:
		length = 258
		additionalBits = 0

	default:
		return 0, inf.br.errorf(CorruptBlock, nil, "invalid literal/length symbol %d", symbol)
	}

	if additionalBits != 0 {
		out, err := inf.br.readBits(additionalBits)
		if err != nil {
			return 0, err
		}
		length += uint(out)
	}
	return length, nil
}

// decodeDistance maps a distance symbol in [0, 29] plus its extra bits to a
// distance in [1, 32768].
func (inf *inflater) decodeDistance(symbol uint16) (uint, error) {
	var distance uint
	var additionalBits byte
	switch {
	case symbol < 4:
		distance = uint(symbol) + 1
		additionalBits = 0

	case symbol < logicalNumDCodes:
		x0 := byte(symbol-2) >> 1
		x1 := uint(1) << (x0 + 1)
		x2 := uint(0)
		if (symbol & 0x01) != 0 {
			x2 = uint(1) << x0
		}
		distance = x1 + x2 + 1
		additionalBits = x0

	default:
		return 0, inf.br.errorf(CorruptBlock, nil, "invalid distance symbol %d", symbol)
	}

	if additionalBits != 0 {
		out, err := inf.br.readBits(additionalBits)
		if err != nil {
			return 0, err
		}
		distance += uint(out)
	}
	return distance, nil
}

func (inf *inflater) readDynamicTrees(sink blockSink) error {
	// https://www.rfc-editor.org/rfc/rfc1951.html - Section 3.2.7
	br := inf.br

	out, err := br.readBits(14)
	if err != nil {
		return err
	}

	numLL := 257 + uint(out&0x1f)
	numD := 1 + uint((out>>5)&0x1f)
	numX := 4 + uint((out>>10)&0x0f)

	if numLL > logicalNumLLCodes {
		return br.errorf(CorruptBlock, nil, "HLIT %d > %d", numLL, logicalNumLLCodes)
	}
	if numD > logicalNumDCodes {
		return br.errorf(CorruptBlock, nil, "HDIST %d > %d", numD, logicalNumDCodes)
	}

	inf.codeLengths = [physicalNumXCodes]byte{}
	for i := uint(0); i < numX; i++ {
		out, err = br.readBits(3)
		if err != nil {
			return err
		}
		inf.codeLengths[codeLengthOrder[i]] = byte(out)
	}

	if err := initDecoder(&inf.hdX, inf.codeLengths[:]); err != nil {
		return br.errorf(CorruptBlock, err, "invalid code length code: %v", err)
	}

	total := numLL + numD
	combined := inf.lengths[:total]
	i := uint(0)
	for i < total {
		sym, err := readSymbol(br, &inf.hdX)
		if err != nil {
			return err
		}

		i, err = inf.decodeCodeLength(uint16(sym), combined, i)
		if err != nil {
			return err
		}
	}

	if combined[endOfBlockSymbol] == 0 {
		return br.errorf(CorruptBlock, nil, "literal/length code has no end-of-block code")
	}

	if err := initDecoder(&inf.hdLL, combined[:numLL]); err != nil {
		return br.errorf(CorruptBlock, err, "invalid literal/length code: %v", err)
	}

	if err := initDecoder(&inf.hdD, combined[numLL:]); err != nil {
		return br.errorf(CorruptBlock, err, "invalid distance code: %v", err)
	}

	sink.sendEvent(Event{
		Type:  BlockTreesEvent,
		Block: inf.blockEvent(),
		Trees: &TreesEvent{
			CodeCount:          uint16(numX),
			LiteralLengthCount: uint16(numLL),
			DistanceCount:      uint16(numD),
			CodeSizes:          inf.hdX.SizeBySymbol(),
			LiteralLengthSizes: inf.hdLL.SizeBySymbol(),
			DistanceSizes:      inf.hdD.SizeBySymbol(),
		},
	})

	inf.hLL = &inf.hdLL
	inf.hD = &inf.hdD
	return nil
}

// decodeCodeLength applies one symbol of the code length alphabet to
// combined[i:], returning the index of the next length to fill.
func (inf *inflater) decodeCodeLength(symbol uint16, combined []byte, i uint) (uint, error) {
	br := inf.br
	total := uint(len(combined))

	var fill byte
	var count uint
	switch {
	case symbol < 16:
		combined[i] = byte(symbol)
		return i + 1, nil

	case symbol == 16:
		// repeat the previous length 3 .. 6 times
		if i == 0 {
			return i, br.errorf(CorruptBlock, nil, "attempt to repeat a previous length when there is none")
		}
		out, err := br.readBits(2)
		if err != nil {
			return i, err
		}
		fill = combined[i-1]
		count = 3 + uint(out)

	case symbol == 17:
		// 3 .. 10 zero lengths
		out, err := br.readBits(3)
		if err != nil {
			return i, err
		}
		count = 3 + uint(out)

	default:
		// 11 .. 138 zero lengths
		out, err := br.readBits(7)
		if err != nil {
			return i, err
		}
		count = 11 + uint(out)
	}

	if count > (total - i) {
		return i, br.errorf(CorruptBlock, nil, "attempt to repeat %d times but only %d code lengths remain", count, total-i)
	}
	for count != 0 {
		combined[i] = fill
		i++
		count--
	}
	return i, nil
}
