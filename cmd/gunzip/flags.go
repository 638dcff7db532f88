package main

import (
	"github.com/chronos-tachyon/inflate"
	getopt "github.com/pborman/getopt/v2"
)

// type FormatFlag {{{

// FormatFlag implements getopt.Value for inflate.Format.
type FormatFlag struct {
	Value inflate.Format
}

// Set fulfills getopt.Value.
func (flag *FormatFlag) Set(str string, opt getopt.Option) error {
	return flag.Value.Parse(str)
}

// String fulfills getopt.Value.
func (flag FormatFlag) String() string {
	return flag.Value.String()
}

var _ getopt.Value = (*FormatFlag)(nil)

// }}}

// type MemoryLevelFlag {{{

// MemoryLevelFlag implements getopt.Value for inflate.MemoryLevel.
type MemoryLevelFlag struct {
	Value inflate.MemoryLevel
}

// Set fulfills getopt.Value.
func (flag *MemoryLevelFlag) Set(str string, opt getopt.Option) error {
	return flag.Value.Parse(str)
}

// String fulfills getopt.Value.
func (flag MemoryLevelFlag) String() string {
	return flag.Value.String()
}

var _ getopt.Value = (*MemoryLevelFlag)(nil)

// }}}
