package inflate

import (
	"io"

	"github.com/chronos-tachyon/assert"
)

// Decode decompresses everything readable from r and writes the result to w.
// It returns the number of decompressed bytes written.
//
// Bytes are written to w as they are produced, so on error w has already
// received every byte decoded before the problem was found.
func Decode(w io.Writer, r io.Reader, opts ...Option) (int64, error) {
	assert.NotNil(&w)
	assert.NotNil(&r)

	fr := NewReader(r, opts...)
	n, err := fr.WriteTo(w)
	if cerr := fr.Close(); err == nil {
		err = cerr
	}
	return n, err
}
