package inflate

import (
	"encoding/binary"
	"fmt"
	"hash"
	"io"

	"github.com/chronos-tachyon/assert"
	buffer "github.com/chronos-tachyon/buffer/v3"
)

// bitReader presents a byte source as a stream of bits, least significant
// bit of each byte first.  Bytes are staged through a ring buffer and then
// shifted into a bit accumulator on demand.
//
// The byte-oriented methods (readByte, readFull, readU16, readU32,
// readStringZ) require the reader to be byte aligned.  Whole bytes that are
// still sitting in the accumulator are returned before any new input is
// pulled, so switching between bit and byte access never loses data.
type bitReader struct {
	r     io.Reader
	err   error
	input buffer.Buffer
	tap   hash.Hash32
	bits  block
	nbits byte
	eof   bool

	pulledTotal uint64
	streamStart uint64
}

func (br *bitReader) init(numBits uint) {
	br.input.Init(numBits)
	br.tap = dummyHash32{}
}

func (br *bitReader) reset(r io.Reader) {
	if numBits := br.input.NumBits(); numBits == 0 {
		br.input.Init(FastestMemory.numBits())
	}
	br.r = r
	br.err = nil
	br.input.Clear()
	br.tap = dummyHash32{}
	br.bits = 0
	br.nbits = 0
	br.eof = false
	br.pulledTotal = 0
	br.streamStart = 0
}

// beginStream marks the current position as offset 0 of a new stream.
func (br *bitReader) beginStream() {
	br.streamStart = br.offsetTotal()
}

func (br *bitReader) offsetTotal() uint64 {
	return br.pulledTotal - uint64(br.nbits/bitsPerByte)
}

func (br *bitReader) offsetStream() uint64 {
	return br.offsetTotal() - br.streamStart
}

// setTap mirrors every byte consumed through the byte-aligned methods into
// h.  A nil h stops mirroring.
func (br *bitReader) setTap(h hash.Hash32) {
	if h == nil {
		h = dummyHash32{}
	}
	br.tap = h
}

// fillBuffer refills the staging buffer if it is empty, and reports whether
// any bytes are now available.
func (br *bitReader) fillBuffer() bool {
	if !br.input.IsEmpty() {
		return true
	}
	if br.eof || br.err != nil {
		return false
	}

	_, err := br.input.ReadFrom(br.r)
	if err != nil && err != io.EOF {
		br.err = err
	}
	if br.input.IsEmpty() {
		br.eof = true
		return false
	}
	return true
}

func (br *bitReader) pullByte() bool {
	if !br.fillBuffer() {
		return false
	}
	ch, err := br.input.ReadByte()
	assert.Assertf(err == nil, "ReadByte failed on a non-empty buffer: %v", err)
	br.bits |= block(ch) << br.nbits
	br.nbits += bitsPerByte
	br.pulledTotal++
	return true
}

// fill ensures that at least atLeast bits are in the accumulator.
func (br *bitReader) fill(atLeast byte) error {
	assert.Assertf(atLeast <= maxFillBits, "atLeast %d > maxFillBits %d", atLeast, maxFillBits)
	for br.nbits < atLeast {
		if !br.pullByte() {
			return br.exhausted()
		}
	}
	return nil
}

// fillUpTo tries to have at least want bits in the accumulator, but stops
// quietly at end of input.  Returns the number of bits available, capped at
// want.
func (br *bitReader) fillUpTo(want byte) byte {
	assert.Assertf(want <= maxFillBits, "want %d > maxFillBits %d", want, maxFillBits)
	for br.nbits < want {
		if !br.pullByte() {
			return br.nbits
		}
	}
	return want
}

func (br *bitReader) peek(n byte) block {
	assert.Assertf(n <= br.nbits, "n %d > nbits %d", n, br.nbits)
	return br.bits & makeMask(n)
}

func (br *bitReader) commit(n byte) {
	assert.Assertf(n <= br.nbits, "n %d > nbits %d", n, br.nbits)
	br.bits >>= n
	br.nbits -= n
}

// readBits returns the next n bits, n <= 32, with the first bit read in the
// least significant position.
func (br *bitReader) readBits(n byte) (uint32, error) {
	assert.Assertf(n <= 32, "n %d > 32", n)
	if n > 16 {
		lo, err := br.readBits(16)
		if err != nil {
			return 0, err
		}
		hi, err := br.readBits(n - 16)
		if err != nil {
			return 0, err
		}
		return lo | (hi << 16), nil
	}

	if err := br.fill(n); err != nil {
		return 0, err
	}
	out := uint32(br.peek(n))
	br.commit(n)
	return out, nil
}

// alignToByte discards the remainder of a partially consumed byte.
func (br *bitReader) alignToByte() {
	br.commit(br.nbits % bitsPerByte)
}

func (br *bitReader) isAligned() bool {
	return (br.nbits % bitsPerByte) == 0
}

func (br *bitReader) readByte() (byte, error) {
	assert.Assertf(br.isAligned(), "readByte called with %d stray bits", br.nbits%bitsPerByte)

	var tmp [1]byte
	if br.nbits != 0 {
		tmp[0] = byte(br.bits)
		br.commit(bitsPerByte)
	} else {
		if !br.fillBuffer() {
			return 0, br.exhausted()
		}
		ch, err := br.input.ReadByte()
		assert.Assertf(err == nil, "ReadByte failed on a non-empty buffer: %v", err)
		br.pulledTotal++
		tmp[0] = ch
	}
	_, _ = br.tap.Write(tmp[:])
	return tmp[0], nil
}

// readFull fills p completely or fails.
func (br *bitReader) readFull(p []byte) error {
	assert.Assertf(br.isAligned(), "readFull called with %d stray bits", br.nbits%bitsPerByte)

	pLen := uint(len(p))
	pIndex := uint(0)
	for pIndex < pLen && br.nbits != 0 {
		p[pIndex] = byte(br.bits)
		br.commit(bitsPerByte)
		pIndex++
	}
	for pIndex < pLen {
		if !br.fillBuffer() {
			_, _ = br.tap.Write(p[:pIndex])
			return br.exhausted()
		}
		nn, _ := br.input.Read(p[pIndex:])
		br.pulledTotal += uint64(nn)
		pIndex += uint(nn)
	}
	_, _ = br.tap.Write(p)
	return nil
}

func (br *bitReader) readU16(bo binary.ByteOrder) (uint16, error) {
	var tmp [2]byte
	if err := br.readFull(tmp[:]); err != nil {
		return 0, err
	}
	return bo.Uint16(tmp[:]), nil
}

func (br *bitReader) readU32(bo binary.ByteOrder) (uint32, error) {
	var tmp [4]byte
	if err := br.readFull(tmp[:]); err != nil {
		return 0, err
	}
	return bo.Uint32(tmp[:]), nil
}

// readStringZ reads a zero-terminated string, consuming the terminator.
func (br *bitReader) readStringZ() (string, error) {
	sb := takeStringsBuilder()
	defer giveStringsBuilder(sb)

	for {
		ch, err := br.readByte()
		if err != nil {
			return "", err
		}
		if ch == 0 {
			return sb.String(), nil
		}
		sb.WriteByte(ch)
	}
}

// atEOF reports whether the input has been consumed to the last whole byte.
// Any non-EOF error from the source leaves atEOF false; see ioError.
func (br *bitReader) atEOF() bool {
	if br.nbits >= bitsPerByte {
		return false
	}
	return !br.fillBuffer() && br.err == nil
}

// ioError returns the error reported by the underlying io.Reader, if any.
func (br *bitReader) ioError() error {
	return br.err
}

// exhausted returns the error for a request that ran off the end of the
// available input.  Source errors other than io.EOF are passed through.
func (br *bitReader) exhausted() error {
	if br.err != nil {
		return br.err
	}
	return br.errorf(UnexpectedEndOfInput, io.ErrUnexpectedEOF, "unexpected end of input")
}

func (br *bitReader) errorf(kind ErrorKind, cause error, format string, v ...interface{}) error {
	return CorruptInputError{
		Kind:         kind,
		OffsetTotal:  br.offsetTotal(),
		OffsetStream: br.offsetStream(),
		Problem:      fmt.Sprintf(format, v...),
		Err:          cause,
	}
}
