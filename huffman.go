package inflate

import (
	"encoding/json"
	"fmt"

	"github.com/chronos-tachyon/huffman"
)

const (
	maxCodeSize        = 15
	logicalNumLLCodes  = 286
	logicalNumDCodes   = 30
	physicalNumLLCodes = 288
	physicalNumDCodes  = 32
	physicalNumXCodes  = 19
	endOfBlockSymbol   = 256
)

// codeLengthOrder is the order in which a dynamic block header lists the
// code lengths of the code length alphabet.
var codeLengthOrder = [physicalNumXCodes]byte{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// initDecoder builds hdec from per-symbol code lengths, as described by
// https://www.rfc-editor.org/rfc/rfc1951.html - Section 3.2.2.  A length of
// 0 means the symbol is unused.  A code with no symbols at all leaves hdec
// empty, and any attempt to decode with it fails.
func initDecoder(hdec *huffman.Decoder, sizes []byte) error {
	used := false
	for symbol, size := range sizes {
		if size > maxCodeSize {
			return fmt.Errorf("symbol %d has code length %d > maximum %d", symbol, size, maxCodeSize)
		}
		if size != 0 {
			used = true
		}
	}
	if !used {
		*hdec = huffman.Decoder{}
		return nil
	}
	return hdec.Init(sizes)
}

// readSymbol decodes one symbol, trying successively longer codes until
// hdec recognizes one.
func readSymbol(br *bitReader, hdec *huffman.Decoder) (huffman.Symbol, error) {
	min := hdec.MinSize()
	max := hdec.MaxSize()
	if max == 0 {
		return huffman.InvalidSymbol, br.errorf(CorruptBlock, nil, "attempt to decode with an empty Huffman code")
	}

	numBits := min
	for numBits <= max {
		if br.fillUpTo(numBits) < numBits {
			return huffman.InvalidSymbol, br.exhausted()
		}

		out := br.peek(numBits)
		hc := huffman.MakeCode(numBits, uint32(out))

		symbol, newMin, newMax := hdec.Decode(hc)
		if symbol >= 0 {
			br.commit(numBits)
			return symbol, nil
		}
		if newMax == 0 {
			break
		}
		numBits = newMin
	}
	return huffman.InvalidSymbol, br.errorf(CorruptBlock, nil, "invalid Huffman code")
}

var (
	gFixedHuffmanDecoderLL huffman.Decoder
	gFixedHuffmanDecoderD  huffman.Decoder
)

func init() {
	// https://www.rfc-editor.org/rfc/rfc1951.html - Section 3.2.6
	sizes := make([]byte, physicalNumLLCodes)
	for i := 0; i < 144; i++ {
		sizes[i] = 8
	}
	for i := 144; i < 256; i++ {
		sizes[i] = 9
	}
	for i := 256; i < 280; i++ {
		sizes[i] = 7
	}
	for i := 280; i < 288; i++ {
		sizes[i] = 8
	}
	if err := gFixedHuffmanDecoderLL.Init(sizes); err != nil {
		panic(fmt.Errorf("failed to initialize gFixedHuffmanDecoderLL: %w", err))
	}

	sizes = sizes[:physicalNumDCodes]
	for i := 0; i < physicalNumDCodes; i++ {
		sizes[i] = 5
	}
	if err := gFixedHuffmanDecoderD.Init(sizes); err != nil {
		panic(fmt.Errorf("failed to initialize gFixedHuffmanDecoderD: %w", err))
	}
}

func getFixedHuffDecoders() (*huffman.Decoder, *huffman.Decoder) {
	return &gFixedHuffmanDecoderLL, &gFixedHuffmanDecoderD
}

// SizeList represents a list of symbol sizes in a Canonical Huffman Code.
type SizeList []byte

// MarshalJSON returns the JSON representation of this SizeList, as a JSON
// Array of JSON Numbers.
func (sizelist SizeList) MarshalJSON() ([]byte, error) {
	var arr []uint
	if sizelist != nil {
		arr = make([]uint, len(sizelist))
		for index, size := range sizelist {
			arr[index] = uint(size)
		}
	}
	return json.Marshal(arr)
}
