//go:build !386 && !arm && !mips && !mipsle
// +build !386,!arm,!mips,!mipsle

package inflate

const bytesPerBlock = 8

// block is the bit accumulator word.
type block uint64
