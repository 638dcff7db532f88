package inflate

import (
	"encoding/binary"
	"fmt"
	"time"
)

// Header is a collection of fields which may be present in the header of a
// gzip member.  Fields absent from the stream keep their zero values.
type Header struct {
	FileName     string
	Comment      string
	LastModified time.Time
	DataType     DataType
	OSType       OSType
	ExtraData    ExtraData

	// ExtraFlags is the raw XFL byte.  For DEFLATE, 2 means maximum
	// compression and 4 means fastest compression.
	ExtraFlags byte

	// HeaderCRC is the stored header checksum, valid if HasHeaderCRC.
	HeaderCRC    Checksum16
	HasHeaderCRC bool
}

// ExtraData represents a collection of records in a gzip ExtraData header.
type ExtraData struct {
	Records []ExtraDataRecord
}

// ExtraDataRecord represents a single record in a gzip ExtraData header.
type ExtraDataRecord struct {
	ID    [2]byte
	Bytes []byte
}

// Parse parses the given bytes as an ExtraData field.  A record whose
// declared length runs past the end of raw is an error; the records parsed
// before it are kept.
func (xd *ExtraData) Parse(raw []byte) error {
	*xd = ExtraData{}

	index := uint(0)
	length := uint(len(raw))
	for index < length {
		if (index + 4) > length {
			return fmt.Errorf("truncated extra field subfield header at offset %d", index)
		}
		var rec ExtraDataRecord
		rec.ID[0] = raw[index+0]
		rec.ID[1] = raw[index+1]
		recLen := uint(binary.LittleEndian.Uint16(raw[index+2 : index+4]))
		index += 4
		if (index + recLen) > length {
			return fmt.Errorf("extra field subfield %q declares %d bytes, but only %d remain", rec.ID[:], recLen, length-index)
		}
		rec.Bytes = raw[index : index+recLen]
		index += recLen
		xd.Records = append(xd.Records, rec)
	}
	return nil
}

// AsBytes returns the binary representation of this ExtraData field.
func (xd *ExtraData) AsBytes() []byte {
	var length uint
	for _, rec := range xd.Records {
		recLen := uint(len(rec.Bytes))
		length += 4 + recLen
	}

	out := make([]byte, 0, length)
	for _, rec := range xd.Records {
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(len(rec.Bytes)))
		out = append(out, rec.ID[0], rec.ID[1], tmp[0], tmp[1])
		out = append(out, rec.Bytes...)
	}
	return out
}
