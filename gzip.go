package inflate

import (
	"encoding/binary"
	"time"

	"github.com/chronos-tachyon/assert"

	"github.com/chronos-tachyon/inflate/internal/adler32"
	"github.com/chronos-tachyon/inflate/internal/crc32"
)

const (
	gzipID1           = 0x1f
	gzipID2           = 0x8b
	gzipMethodDeflate = 0x08

	gzipFlagText     = 0x01
	gzipFlagHCRC     = 0x02
	gzipFlagExtra    = 0x04
	gzipFlagName     = 0x08
	gzipFlagComment  = 0x10
	gzipFlagReserved = 0xe0
)

func (fr *Reader) readHeaderAuto() error {
	br := &fr.br
	if n := br.fillUpTo(2 * bitsPerByte); n < 2*bitsPerByte {
		return fr.readHeaderRaw()
	}

	var p [2]byte
	out := uint16(br.peek(2 * bitsPerByte))
	p[0] = byte(out)
	p[1] = byte(out >> 8)

	if p[0] == gzipID1 && p[1] == gzipID2 {
		return fr.readHeaderGZIP()
	}

	u16 := binary.BigEndian.Uint16(p[:])
	if (p[0]&0x0f) == gzipMethodDeflate && (u16%31) == 0 {
		return fr.readHeaderZlib()
	}

	return fr.readHeaderRaw()
}

func (fr *Reader) readHeaderRaw() error {
	fr.actualFormat = RawFormat
	return nil
}

func (fr *Reader) readFooterRaw() (*FooterEvent, error) {
	return &FooterEvent{}, nil
}

func (fr *Reader) readHeaderZlib() error {
	br := &fr.br

	var p [2]byte
	if err := br.readFull(p[:]); err != nil {
		return err
	}

	u16 := binary.BigEndian.Uint16(p[:])
	if mod := (u16 % 31); mod != 0 {
		return br.errorf(InvalidHeader, nil, "invalid zlib header checksum -- expected %#04x mod 31 == 0, got %d", u16, mod)
	}

	method := (p[0] & 0x0f)
	if method != gzipMethodDeflate {
		return br.errorf(UnsupportedMethod, nil, "invalid zlib compression method -- expected 0x8 (DEFLATE), got %#x", method)
	}

	if wbits := 8 + uint(p[0]>>4); wbits > windowNumBits {
		return br.errorf(InvalidHeader, nil, "zlib window size is too big -- data uses 2**%d, but the maximum is 2**%d", wbits, windowNumBits)
	}

	bitFDICT := (p[1] & 0x20) != 0
	if bitFDICT {
		expectedAdler32, err := br.readU32(binary.BigEndian)
		if err != nil {
			return err
		}

		if fr.dict == nil {
			return br.errorf(InvalidHeader, nil, "zlib stream was compressed with a pre-set dictionary -- Adler-32 checksum of the dictionary required to decompress this stream is %#08x", expectedAdler32)
		}

		computedAdler32 := adler32.Checksum(fr.dict)
		if expectedAdler32 != computedAdler32 {
			return br.errorf(InvalidHeader, nil, "zlib stream was compressed with a different pre-set dictionary -- Adler-32 checksum of the required dictionary is %#08x, checksum of the provided dictionary is %#08x", expectedAdler32, computedAdler32)
		}
	} else if fr.dict != nil {
		return br.errorf(InvalidHeader, nil, "zlib stream was not compressed with a pre-set dictionary -- Adler-32 checksum of the supplied dictionary is %#08x", adler32.Checksum(fr.dict))
	}

	fr.actualFormat = ZlibFormat
	return nil
}

func (fr *Reader) readFooterZlib() (*FooterEvent, error) {
	br := &fr.br
	computedAdler32 := fr.outputAdler32.Sum32()

	expectedAdler32, err := br.readU32(binary.BigEndian)
	if err != nil {
		return nil, err
	}

	if expectedAdler32 != computedAdler32 {
		return nil, br.errorf(ChecksumMismatch, nil, "invalid zlib Adler-32 checksum -- footer value %#08x, computed value %#08x", expectedAdler32, computedAdler32)
	}

	return &FooterEvent{Adler32: Checksum32(computedAdler32)}, nil
}

func (fr *Reader) readHeaderGZIP() error {
	br := &fr.br
	hcrc := crc32.New()
	br.setTap(hcrc)
	defer br.setTap(nil)

	var p [10]byte

	// The identification bytes are judged before the rest of the fixed
	// header is required, so that a short non-gzip input reports
	// InvalidMagic rather than UnexpectedEndOfInput.
	if err := br.readFull(p[0:2]); err != nil {
		return err
	}
	if p[0] != gzipID1 || p[1] != gzipID2 {
		return br.errorf(InvalidMagic, nil, "invalid gzip header identification bytes %02x %02x -- expected 1f 8b", p[0], p[1])
	}

	if err := br.readFull(p[2:10]); err != nil {
		return err
	}

	if p[2] != gzipMethodDeflate {
		return br.errorf(UnsupportedMethod, nil, "invalid gzip compression method %#02x -- expected 0x08 (DEFLATE)", p[2])
	}

	flags := p[3]
	if (flags & gzipFlagReserved) != 0 {
		return br.errorf(InvalidHeader, nil, "invalid gzip flag bits %#02x", flags&gzipFlagReserved)
	}

	header := &fr.header

	mtime := binary.LittleEndian.Uint32(p[4:8])
	if mtime != 0 {
		header.LastModified = time.Unix(int64(mtime), 0)
	}

	header.ExtraFlags = p[8]
	header.OSType = osTypeFromGzip(p[9])

	header.DataType = BinaryData
	if (flags & gzipFlagText) != 0 {
		header.DataType = TextData
	}

	if (flags & gzipFlagExtra) != 0 {
		xlen, err := br.readU16(binary.LittleEndian)
		if err != nil {
			return err
		}

		raw := make([]byte, xlen)
		if err := br.readFull(raw); err != nil {
			return err
		}

		if err := header.ExtraData.Parse(raw); err != nil {
			return br.errorf(InvalidHeader, err, "invalid gzip extra field: %v", err)
		}
	}

	if (flags & gzipFlagName) != 0 {
		str, err := br.readStringZ()
		if err != nil {
			return err
		}
		header.FileName = str
	}

	if (flags & gzipFlagComment) != 0 {
		str, err := br.readStringZ()
		if err != nil {
			return err
		}
		header.Comment = str
	}

	if (flags & gzipFlagHCRC) != 0 {
		computed := Checksum16(hcrc.Sum32())
		br.setTap(nil)

		expected, err := br.readU16(binary.LittleEndian)
		if err != nil {
			return err
		}

		header.HeaderCRC = Checksum16(expected)
		header.HasHeaderCRC = true

		if header.HeaderCRC != computed {
			if fr.strictHCRC {
				return br.errorf(InvalidHeader, nil, "invalid gzip header CRC-16 checksum -- header value %v, computed value %v", header.HeaderCRC, computed)
			}
			fr.logger.Warn().
				Uint64("offset", br.offsetTotal()).
				Str("expected", header.HeaderCRC.String()).
				Str("computed", computed.String()).
				Msg("gzip header CRC-16 mismatch")
		}
	}

	fr.actualFormat = GZIPFormat
	return nil
}

func (fr *Reader) readFooterGZIP() (*FooterEvent, error) {
	br := &fr.br
	computedCRC32 := fr.outputCRC32.Sum32()
	computedLength := uint32(fr.outputBytesStream)

	expectedCRC32, err := br.readU32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	expectedLength, err := br.readU32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}

	if expectedCRC32 != computedCRC32 {
		return nil, br.errorf(ChecksumMismatch, nil, "invalid gzip CRC-32 checksum -- footer value %#08x, computed value %#08x", expectedCRC32, computedCRC32)
	}

	if expectedLength != computedLength {
		return nil, br.errorf(LengthMismatch, nil, "invalid gzip decompressed length (mod 2**32) -- footer value %d, computed value %d", expectedLength, computedLength)
	}

	return &FooterEvent{CRC32: Checksum32(computedCRC32), Length: computedLength}, nil
}

func (fr *Reader) readFooterFormat() (*FooterEvent, error) {
	switch fr.actualFormat {
	case RawFormat:
		return fr.readFooterRaw()
	case ZlibFormat:
		return fr.readFooterZlib()
	case GZIPFormat:
		return fr.readFooterGZIP()
	default:
		assert.Raisef("Format %#v not implemented", fr.actualFormat)
		return nil, nil
	}
}
