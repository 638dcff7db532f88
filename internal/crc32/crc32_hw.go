//go:build amd64 || arm64
// +build amd64 arm64

package crc32

import (
	stdcrc32 "hash/crc32"

	"golang.org/x/sys/cpu"
)

// archAvailable reports whether the CPU has the instructions that the
// runtime's hash/crc32 kernels need.  Without them, Update stays on the
// slicing-by-8 kernel in this package.
func archAvailable() bool {
	return (cpu.X86.HasPCLMULQDQ && cpu.X86.HasSSE41) || cpu.ARM64.HasCRC32
}

// archUpdate hands inputs of 64 bytes or more to the runtime's carry-less
// multiply or CRC32 instruction kernels.  Shorter inputs stay on the
// slicing-by-8 kernel.
func archUpdate(sum uint32, p []byte) uint32 {
	if len(p) < 64 {
		return genericUpdate(sum, p)
	}
	return stdcrc32.Update(sum, stdcrc32.IEEETable, p)
}
