//go:build 386 || arm || mips || mipsle
// +build 386 arm mips mipsle

package inflate

const bytesPerBlock = 4

// block is the bit accumulator word.  32-bit hosts keep it register-sized.
type block uint32
