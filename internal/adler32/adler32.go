// Package adler32 implements the Adler-32 checksum that trails a zlib stream.
package adler32

import (
	"encoding/binary"
	"hash"
)

// Size is the size of an Adler-32 checksum in bytes.
const Size = 4

const modulus = 65521

// nmax is the largest n such that 255n(n+1)/2 + (n+1)(modulus-1) fits in
// 32 bits; the sums are reduced at least this often.
const nmax = 5552

// Update returns the result of adding the bytes in p to sum.  A sum of 1
// is the checksum of the empty string.
func Update(sum uint32, p []byte) uint32 {
	s1, s2 := (sum & 0xffff), (sum >> 16)
	for len(p) > 0 {
		var q []byte
		if len(p) > nmax {
			p, q = p[:nmax], p[nmax:]
		}
		for len(p) >= 4 {
			s1 += uint32(p[0])
			s2 += s1
			s1 += uint32(p[1])
			s2 += s1
			s1 += uint32(p[2])
			s2 += s1
			s1 += uint32(p[3])
			s2 += s1
			p = p[4:]
		}
		for _, ch := range p {
			s1 += uint32(ch)
			s2 += s1
		}
		s1 %= modulus
		s2 %= modulus
		p = q
	}
	return (s2 << 16) | s1
}

// Checksum returns the Adler-32 of p.
func Checksum(p []byte) uint32 {
	return Update(1, p)
}

// Hash is a running Adler-32 that implements hash.Hash32.
type Hash struct {
	sum uint32
}

// New returns a new Hash holding the checksum of the empty string.
func New() *Hash {
	return &Hash{sum: 1}
}

func (h *Hash) Size() int      { return Size }
func (h *Hash) BlockSize() int { return 1 }

func (h *Hash) Reset() {
	h.sum = 1
}

func (h *Hash) Write(p []byte) (int, error) {
	h.sum = Update(h.sum, p)
	return len(p), nil
}

func (h *Hash) Sum(slice []byte) []byte {
	var tmp [Size]byte
	binary.BigEndian.PutUint32(tmp[:], h.Sum32())
	return append(slice, tmp[:]...)
}

func (h *Hash) Sum32() uint32 {
	return h.sum
}

var _ hash.Hash32 = (*Hash)(nil)
