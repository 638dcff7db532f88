package main

const copyrightNotice = `gunzip - decompress a single gzip file
Copyright (C) 2025 The gunzip authors

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
`

const usageText = `Usage:
  gunzip --help
  gunzip --copyright
  gunzip [options] <input> [<output>]

<input> and <output> may be relative or absolute paths; a leading ~ is
expanded to the home directory.

If <output> is omitted, the output file is created in the current directory
with the name of <input>, minus a trailing ".gzip" if present.

If <output> is an existing directory, the output file is created in that
directory with the same derived name.
`
