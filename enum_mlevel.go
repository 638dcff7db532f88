package inflate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MemoryLevel sizes the Reader's input and output staging buffers.  Level n
// stages 2**(n+6) bytes on each side, so level 1 uses 128 bytes and level 9
// uses 32 KiB.  The 32 KiB history window is needed regardless of level.
type MemoryLevel byte

const (
	// DefaultMemory selects FastestMemory.
	DefaultMemory MemoryLevel = 0

	// SmallestMemory stages the fewest bytes per refill.
	SmallestMemory MemoryLevel = 1

	// FastestMemory stages the most bytes per refill.
	FastestMemory MemoryLevel = 9
)

// IsValid returns true if mlevel is a valid MemoryLevel constant.
func (mlevel MemoryLevel) IsValid() bool {
	return mlevel <= FastestMemory
}

func (mlevel MemoryLevel) numBits() uint {
	if mlevel == DefaultMemory {
		mlevel = FastestMemory
	}
	return uint(mlevel) + 6
}

// GoString returns the Go string representation of this MemoryLevel constant.
func (mlevel MemoryLevel) GoString() string {
	if mlevel == DefaultMemory {
		return "DefaultMemory"
	}
	return fmt.Sprintf("MemoryLevel(%d)", uint(mlevel))
}

// String returns the string representation of this MemoryLevel constant.
func (mlevel MemoryLevel) String() string {
	if mlevel == DefaultMemory {
		return strDefault
	}
	return strconv.FormatUint(uint64(mlevel), 10)
}

// MarshalJSON returns the JSON representation of this MemoryLevel constant.
func (mlevel MemoryLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint(mlevel))
}

// Parse parses a string representation of a MemoryLevel constant.
func (mlevel *MemoryLevel) Parse(str string) error {
	*mlevel = DefaultMemory
	if strings.EqualFold(str, strDefault) {
		return nil
	}

	u64, err := strconv.ParseUint(str, 10, 8)
	if err != nil {
		return err
	}
	if u64 > uint64(FastestMemory) {
		return fmt.Errorf("memory level %d is out of range [%d, %d]", u64, uint(SmallestMemory), uint(FastestMemory))
	}
	*mlevel = MemoryLevel(u64)
	return nil
}

var _ fmt.GoStringer = MemoryLevel(0)
var _ fmt.Stringer = MemoryLevel(0)
