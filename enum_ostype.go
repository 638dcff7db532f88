package inflate

import (
	"fmt"

	"github.com/chronos-tachyon/enumhelper"
)

// OSType is the originating OS or filesystem recorded in the gzip OS byte
// (RFC 1952 §2.3.1).
type OSType byte

const (
	// OSTypeUnknown covers OS byte 255 and every value RFC 1952 leaves
	// unassigned.
	OSTypeUnknown OSType = iota

	// OSTypeFAT is OS byte 0: MS-DOS, OS/2, or Windows on FAT.
	OSTypeFAT

	// OSTypeAmiga is OS byte 1.
	OSTypeAmiga

	// OSTypeVMS is OS byte 2: VMS or OpenVMS.
	OSTypeVMS

	// OSTypeUnix is OS byte 3.
	OSTypeUnix

	// OSTypeVMCMS is OS byte 4.
	OSTypeVMCMS

	// OSTypeAtariTOS is OS byte 5.
	OSTypeAtariTOS

	// OSTypeHPFS is OS byte 6: OS/2 on HPFS.
	OSTypeHPFS

	// OSTypeMacintosh is OS byte 7.
	OSTypeMacintosh

	// OSTypeZSystem is OS byte 8.
	OSTypeZSystem

	// OSTypeCPM is OS byte 9.
	OSTypeCPM

	// OSTypeTOPS20 is OS byte 10.
	OSTypeTOPS20

	// OSTypeNTFS is OS byte 11: Windows NT on NTFS.
	OSTypeNTFS

	// OSTypeQDOS is OS byte 12.
	OSTypeQDOS

	// OSTypeAcornRISCOS is OS byte 13.
	OSTypeAcornRISCOS
)

var osTypeData = []enumhelper.EnumData{
	{GoName: "OSTypeUnknown", Name: "unknown"},
	{GoName: "OSTypeFAT", Name: "FAT filesystem"},
	{GoName: "OSTypeAmiga", Name: "Amiga"},
	{GoName: "OSTypeVMS", Name: "VMS"},
	{GoName: "OSTypeUnix", Name: "Unix"},
	{GoName: "OSTypeVMCMS", Name: "VM/CMS"},
	{GoName: "OSTypeAtariTOS", Name: "Atari TOS"},
	{GoName: "OSTypeHPFS", Name: "HPFS filesystem"},
	{GoName: "OSTypeMacintosh", Name: "Macintosh"},
	{GoName: "OSTypeZSystem", Name: "Z-System"},
	{GoName: "OSTypeCPM", Name: "CP/M"},
	{GoName: "OSTypeTOPS20", Name: "TOPS-20"},
	{GoName: "OSTypeNTFS", Name: "NTFS filesystem"},
	{GoName: "OSTypeQDOS", Name: "QDOS"},
	{GoName: "OSTypeAcornRISCOS", Name: "Acorn RISCOS"},
}

// osTypeFromGzip decodes the gzip OS byte.  The assigned values 0..13 are
// offset by one from the OSType constants so that the zero OSType can mean
// "unknown".
func osTypeFromGzip(b byte) OSType {
	if b > 0x0d {
		return OSTypeUnknown
	}
	return OSType(b + 1)
}

// GoString returns the Go string representation of this OSType constant.
func (o OSType) GoString() string {
	return enumhelper.DereferenceEnumData("OSType", osTypeData, uint(o)).GoName
}

// String returns the string representation of this OSType constant.
func (o OSType) String() string {
	return enumhelper.DereferenceEnumData("OSType", osTypeData, uint(o)).Name
}

// MarshalJSON returns the JSON representation of this OSType constant.
func (o OSType) MarshalJSON() ([]byte, error) {
	return enumhelper.MarshalEnumToJSON("OSType", osTypeData, uint(o))
}

var _ fmt.GoStringer = OSType(0)
var _ fmt.Stringer = OSType(0)
