// Package avid implements the Avid-specific extensions to the core MXF
// object model: the private short-tag Primer shortcuts Avid exports
// rely on, the Avid Object Directory, and the known-key registrations
// the Avid operational pattern needs that SMPTE 377M never declares.
package avid

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/dataset"
	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/primer"
	"github.com/smartjog/go-mxf/rp210"
)

// ObjectDirectoryKey is the fixed universal label an Avid Object
// Directory KLV carries.
var ObjectDirectoryKey = mustUL("9613b38a87348746f10296f056e04d2a")

// AAFMetadataPrefaceKey is the Avid pseudo-Preface key seen ahead of the
// real SMPTE Preface in Avid-authored files.
var AAFMetadataPrefaceKey = mustUL("8053080036210804b3b398a51c9011d4")

// padTag maps a local tag to the all-zero-prefixed synthetic UL the
// original private short-tag convention derives it from (the tag's hex
// form right-justified into a 32-character, zero-padded UL string).
func padTag(tag uint16) klv.UL {
	var ul klv.UL
	ul[14] = byte(tag >> 8)
	ul[15] = byte(tag)

	return ul
}

func mustUL(hexStr string) klv.UL {
	ul, err := klv.ULFromHex(hexStr)
	if err != nil {
		panic(err)
	}

	return ul
}

func init() {
	dataset.RegisterKnownSet(AAFMetadataPrefaceKey, "AvidMetadataPreface")

	for _, name := range []string{
		"060e2b34025301010d01010102010000", "060e2b34025301010d01010102020000",
		"060e2b34025301010d01010102040000", "060e2b34025301010d01010102050000",
		"060e2b34025301010d01010102060000", "060e2b34025301010d01010102070000",
		"060e2b34025301010d01010102080000", "060e2b34025301010d01010102090000",
		"060e2b34025301010d010101020a0000", "060e2b34025301010d010101020b0000",
		"060e2b34025301010d010101020c0000", "060e2b34025301010d010101020d0000",
		"060e2b34025301010d010101020e0000", "060e2b34025301010d01010102200000",
		"060e2b34025301010d01010102210000", "060e2b34025301010d01010102220000",
		"060e2b34025301010d01010102250000", "060e2b34025301010d01010101011b00",
		"060e2b34025301010d01010101011f00", "060e2b34025301010d01010101012000",
		"060e2b34025301010d01010101012200",
	} {
		dataset.RegisterKnownSet(mustUL(name), "AvidAAFDefinition")
	}
}

// aafDefinitionEntries and aafDefinitionTags are the synthetic local
// tags an AvidAAFDefinition dark dataset carries: links to the
// compound- and simple-type dictionaries, a signedness flag, a byte
// length, and one never-identified reference.
var (
	aafDefinitionTags = map[uint16]klv.UL{
		0x0003: padTag(0x0003),
		0x0004: padTag(0x0004),
		0x0010: padTag(0x0010),
		0x000f: padTag(0x000f),
		0x001b: padTag(0x001b),
	}
	aafDefinitionEntries = map[klv.UL]rp210.Entry{
		padTag(0x0003): {Type: "StrongReferenceArray", Name: "composited_types", Definition: "Avid links to compound types"},
		padTag(0x0004): {Type: "StrongReferenceArray", Name: "simple_types", Definition: "Avid links to simple types"},
		padTag(0x0010): {Type: "Boolean", Name: "signedness", Definition: ""},
		padTag(0x000f): {Type: "UInt8", Name: "length_in_bytes", Definition: ""},
		padTag(0x001b): {Type: "StrongReference", Name: "unknown_data_1", Definition: ""},
	}
)

// PrimerForAAFDefinition returns the customized Primer an
// AvidAAFDefinition dark dataset must be decoded with.
func PrimerForAAFDefinition(p *primer.Primer) *primer.Primer {
	return p.Customize(rp210.Layer(rp210.Standard.Build(), aafDefinitionEntries), aafDefinitionTags)
}

// metadataPrefaceEntries and metadataPrefaceTags are the synthetic
// local tags the Avid pseudo-Preface carries: strong references to the
// AAF metadata dictionary and the real Preface, the Object Directory's
// byte offset, and the source's audio channel count.
var (
	metadataPrefaceTags = map[uint16]klv.UL{
		0x0001: padTag(0x0001),
		0x0002: padTag(0x0002),
		0x0003: padTag(0x0003),
		0x0004: padTag(0x0004),
	}
	metadataPrefaceEntries = map[klv.UL]rp210.Entry{
		padTag(0x0001): {Type: "StrongReference", Name: "aaf_metadata", Definition: "Avid AAF Metadata Reference"},
		padTag(0x0002): {Type: "StrongReference", Name: "preface", Definition: "Avid Preface Reference"},
		padTag(0x0003): {Type: "AvidOffset", Name: "object_directory", Definition: "Position of the Object Directory"},
		padTag(0x0004): {Type: "UInt32", Name: "audio_channels", Definition: "Number of audio channels in source file"},
	}
)

// PrimerForMetadataPreface returns the customized Primer the Avid
// metadata pseudo-Preface must be decoded with.
func PrimerForMetadataPreface(p *primer.Primer) *primer.Primer {
	return p.Customize(rp210.Layer(rp210.Standard.Build(), metadataPrefaceEntries), metadataPrefaceTags)
}

// dataSetEntries and dataSetTags are the synthetic local tags an
// Avid-flavored structural dataset (Identification, MaterialPackage,
// CDCIEssenceDescriptor, ...) carries in place of the standard
// ProductVersion encoding.
var (
	dataSetTags = map[uint16]klv.UL{
		0x3c07: padTag(0x3c07),
		0x3c03: padTag(0x3c03),
	}
	dataSetEntries = map[klv.UL]rp210.Entry{
		padTag(0x3c07): {Type: "AvidVersion", Name: "avid_version_tag_1", Definition: ""},
		padTag(0x3c03): {Type: "AvidVersion", Name: "avid_version_tag_2", Definition: ""},
	}
)

// PrimerForDataSet returns the customized Primer an Avid-flavored
// structural dataset must be decoded with.
func PrimerForDataSet(p *primer.Primer) *primer.Primer {
	return p.Customize(rp210.Layer(rp210.Avid.Build(), dataSetEntries), dataSetTags)
}

// ObjectDirectoryEntry is one (instance key, byte offset, flag) record
// from an Avid Object Directory.
type ObjectDirectoryEntry struct {
	Key    [16]byte
	Offset uint64
	Flag   uint8
}

// ObjectDirectory is the decoded Avid Object Directory: a count/item-size
// prefixed list of object locations, used instead of SMPTE 377M's
// Random Index Pack for instance-level seeking in Avid-authored files.
type ObjectDirectory struct {
	Pos     int64
	Entries []ObjectDirectoryEntry
}

const objectDirectoryItemSize = 16 + 8 + 1

// DecodeObjectDirectory parses an Object Directory's raw KLV value:
// UInt64 count, UInt8 item size, then count records.
func DecodeObjectDirectory(pos int64, value []byte) (*ObjectDirectory, error) {
	if len(value) < 9 {
		return nil, errs.ErrInvalidFieldLength
	}

	count := binary.BigEndian.Uint64(value[0:8])
	itemSize := int(value[8])
	if itemSize <= 0 {
		return nil, errs.ErrInvalidFieldLength
	}

	od := &ObjectDirectory{Pos: pos}
	idx := 9
	for uint64(len(od.Entries)) < count {
		if idx+itemSize > len(value) {
			return nil, errs.ErrTruncatedSet
		}

		var e ObjectDirectoryEntry
		copy(e.Key[:], value[idx:idx+16])
		e.Offset = binary.BigEndian.Uint64(value[idx+16 : idx+24])
		e.Flag = value[idx+24]

		od.Entries = append(od.Entries, e)
		idx += itemSize
	}

	return od, nil
}

// Encode serializes the Object Directory back to wire form.
func (od *ObjectDirectory) Encode() []byte {
	out := make([]byte, 9, 9+len(od.Entries)*objectDirectoryItemSize)
	binary.BigEndian.PutUint64(out[0:8], uint64(len(od.Entries)))
	out[8] = objectDirectoryItemSize

	for _, e := range od.Entries {
		var rec [objectDirectoryItemSize]byte
		copy(rec[0:16], e.Key[:])
		binary.BigEndian.PutUint64(rec[16:24], e.Offset)
		rec[24] = e.Flag
		out = append(out, rec[:]...)
	}

	return out
}
