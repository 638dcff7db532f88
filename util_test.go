package inflate

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/chronos-tachyon/huffman"

	"github.com/chronos-tachyon/inflate/internal/crc32"
)

func mustDecodeHex(str string) []byte {
	raw, err := hex.DecodeString(str)
	if err != nil {
		panic(err)
	}
	return raw
}

// gzipWrap surrounds a raw DEFLATE payload with a minimal gzip header and a
// trailer computed from content.
func gzipWrap(payload []byte, content []byte) []byte {
	out := make([]byte, 0, 18+len(payload))
	out = append(out, 0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff)
	out = append(out, payload...)
	var tmp [8]byte
	binary.LittleEndian.PutUint32(tmp[0:4], crc32.Checksum(content))
	binary.LittleEndian.PutUint32(tmp[4:8], uint32(len(content)))
	return append(out, tmp[:]...)
}

func expectKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Errorf("expected %#v error, got nil", kind)
		return
	}
	if !errors.Is(err, kind) {
		t.Errorf("expected %#v error, got %v", kind, err)
	}
}

// type bitWriter {{{

// bitWriter packs fields LSB-first, the way a DEFLATE encoder does.
type bitWriter struct {
	out   []byte
	bits  uint64
	nbits byte
}

func (bw *bitWriter) writeBits(size byte, bits uint64) {
	bw.bits |= (bits & ((uint64(1) << size) - 1)) << bw.nbits
	bw.nbits += size
	for bw.nbits >= 8 {
		bw.out = append(bw.out, byte(bw.bits))
		bw.bits >>= 8
		bw.nbits -= 8
	}
}

func (bw *bitWriter) writeCode(hc huffman.Code) {
	bw.writeBits(hc.Size, uint64(hc.Bits))
}

func (bw *bitWriter) writeBytes(p []byte) {
	bw.flush()
	bw.out = append(bw.out, p...)
}

func (bw *bitWriter) flush() {
	if bw.nbits != 0 {
		bw.out = append(bw.out, byte(bw.bits))
		bw.bits = 0
		bw.nbits = 0
	}
}

func (bw *bitWriter) bytes() []byte {
	bw.flush()
	return bw.out
}

func fixedEncoders(t *testing.T) (*huffman.Encoder, *huffman.Encoder) {
	t.Helper()
	decLL, decD := getFixedHuffDecoders()
	var hLL, hD huffman.Encoder
	if err := hLL.InitFromSizes(decLL.SizeBySymbol()); err != nil {
		t.Fatalf("InitFromSizes(LL) failed: %v", err)
	}
	if err := hD.InitFromSizes(decD.SizeBySymbol()); err != nil {
		t.Fatalf("InitFromSizes(D) failed: %v", err)
	}
	return &hLL, &hD
}

// }}}

func hexDump(p []byte) []string {
	length := uint(len(p))
	lines := make([]string, 0, (length+15)>>4)
	var offset uint
	var buf strings.Builder
	for (offset + 16) <= length {
		buf.Reset()
		fmt.Fprintf(&buf, "%08x|", offset)
		for i := uint(0); i < 16; i++ {
			index := offset + i
			ch := p[index]
			fmt.Fprintf(&buf, " %02x", ch)
			if i == 7 {
				buf.WriteByte(' ')
			}
		}
		lines = append(lines, buf.String())
		offset += 16
	}
	if offset < length || offset == 0 {
		buf.Reset()
		fmt.Fprintf(&buf, "%08x|", offset)
		for i := uint(0); i < 16; i++ {
			index := offset + i
			if index < length {
				ch := p[index]
				fmt.Fprintf(&buf, " %02x", ch)
			} else {
				buf.WriteString(" --")
			}
			if i == 7 {
				buf.WriteByte(' ')
			}
		}
		lines = append(lines, buf.String())
	}
	return lines
}

func hexDiff(a, b []byte) []string {
	aLines := hexDump(a)
	bLines := hexDump(b)

	aLen := uint(len(aLines))
	bLen := uint(len(bLines))
	minLen := aLen
	if minLen > bLen {
		minLen = bLen
	}

	diffLines := make([]string, 0, aLen+bLen)
	for i := uint(0); i < minLen; i++ {
		aLine := aLines[i]
		bLine := bLines[i]
		if aLine == bLine {
			continue
		}
		diffLines = append(diffLines, "-"+aLine)
		diffLines = append(diffLines, "+"+bLine)
	}
	for i := minLen; i < aLen; i++ {
		aLine := aLines[i]
		diffLines = append(diffLines, "-"+aLine)
	}
	for i := minLen; i < bLen; i++ {
		bLine := bLines[i]
		diffLines = append(diffLines, "+"+bLine)
	}
	return diffLines
}

func tabify(lines []string) string {
	var buf strings.Builder
	for _, line := range lines {
		buf.WriteByte('\n')
		buf.WriteByte('\t')
		buf.WriteString(line)
	}
	return buf.String()
}

func hexOf(p []byte) string {
	return hex.EncodeToString(p)
}
