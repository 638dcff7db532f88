package inflate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Checksum32 is a lightweight wrapper around uint32 that is used for 32-bit
// checksums, such as the CRC-32 of a gzip trailer or the Adler-32 of a zlib
// trailer.  It stringifies to hexadecimal format.
type Checksum32 uint32

// GoString returns the Go string representation of this Checksum32 value.
func (csum Checksum32) GoString() string {
	return fmt.Sprintf("Checksum32(0x%08x)", uint32(csum))
}

// String returns the string representation of this Checksum32 value.
func (csum Checksum32) String() string {
	return fmt.Sprintf("0x%08x", uint32(csum))
}

// MarshalJSON returns the JSON representation of this Checksum32 value.
func (csum Checksum32) MarshalJSON() ([]byte, error) {
	return json.Marshal(csum.String())
}

// UnmarshalJSON parses the JSON representation of a Checksum32 value.
func (csum *Checksum32) UnmarshalJSON(raw []byte) error {
	u64, err := unmarshalHexChecksum(raw, 32)
	if err != nil {
		return err
	}
	*csum = Checksum32(u64)
	return nil
}

// Checksum16 is the truncated CRC-32 stored in a gzip header when FHCRC is
// set.
type Checksum16 uint16

// GoString returns the Go string representation of this Checksum16 value.
func (csum Checksum16) GoString() string {
	return fmt.Sprintf("Checksum16(0x%04x)", uint16(csum))
}

// String returns the string representation of this Checksum16 value.
func (csum Checksum16) String() string {
	return fmt.Sprintf("0x%04x", uint16(csum))
}

// MarshalJSON returns the JSON representation of this Checksum16 value.
func (csum Checksum16) MarshalJSON() ([]byte, error) {
	return json.Marshal(csum.String())
}

// UnmarshalJSON parses the JSON representation of a Checksum16 value.
func (csum *Checksum16) UnmarshalJSON(raw []byte) error {
	u64, err := unmarshalHexChecksum(raw, 16)
	if err != nil {
		return err
	}
	*csum = Checksum16(u64)
	return nil
}

func unmarshalHexChecksum(raw []byte, bitSize int) (uint64, error) {
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, err
	}
	str = strings.TrimPrefix(str, "0x")
	return strconv.ParseUint(str, 16, bitSize)
}

var _ fmt.GoStringer = Checksum32(0)
var _ fmt.Stringer = Checksum32(0)
var _ json.Marshaler = Checksum32(0)
var _ json.Unmarshaler = (*Checksum32)(nil)

var _ fmt.GoStringer = Checksum16(0)
var _ fmt.Stringer = Checksum16(0)
var _ json.Marshaler = Checksum16(0)
var _ json.Unmarshaler = (*Checksum16)(nil)
