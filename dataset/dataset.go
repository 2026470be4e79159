// Package dataset decodes and encodes MXF local-set DataSets: the
// repeated (tag, length, value) structure that carries every Set and
// Pack's typed field table.
package dataset

import (
	"encoding/binary"

	"github.com/google/uuid"
	"github.com/smartjog/go-mxf/codec"
	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/internal/pool"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/primer"
)

// InstanceUIDTag is the local tag that names a set's own identity,
// present on every non-dark set.
const InstanceUIDTag uint16 = 0x3c0a

// DataSet is a decoded local-set: an ordered field table keyed by local
// tag, plus a name index built from the Primer+RP 210 element names.
type DataSet struct {
	Key   klv.UL
	Pos   int64
	Dark  bool
	Name  string
	order []uint16
	data  map[uint16]codec.Value
	names map[string]uint16

	primer   *primer.Primer
	warnings []string
}

// knownSets publishes the structural Sets/Packs SMPTE 377M defines. A
// key absent from this table decodes as a Dark set rather than failing.
var knownSets = map[klv.UL]string{
	mustUL("060e2b34025301010d01010101010900"): "Filler",
	mustUL("060e2b34025301010d01010101010f00"): "Sequence",
	mustUL("060e2b34025301010d01010101011100"): "SourceClip",
	mustUL("060e2b34025301010d01010101011400"): "TimecodeComponent",
	mustUL("060e2b34025301010d01010101012300"): "EssenceContainerData",
	mustUL("060e2b34025301010d01010101012800"): "CDCIEssenceDescriptor",
	mustUL("060e2b34025301010d01010101011800"): "ContentStorage",
	mustUL("060e2b34025301010d01010101012f00"): "Preface",
	mustUL("060e2b34025301010d01010101013000"): "Identification",
	mustUL("060e2b34025301010d01010101013600"): "MaterialPackage",
	mustUL("060e2b34025301010d01010101013700"): "SourcePackage",
	mustUL("060e2b34025301010d01010101013b00"): "TimelineTrack",
	mustUL("060e2b34025301010d01010101013f00"): "TaggedValue",
	mustUL("060e2b34025301010d01010101014200"): "GenericSoundEssenceDescriptor",
	mustUL("060e2b34025301010d01010101014400"): "MultipleDescriptor",
	mustUL("060e2b34025301010d01010101014700"): "AES3PCMDescriptor",
	mustUL("060e2b34025301010d01010101014800"): "WaveAudioDescriptor",
	mustUL("060e2b34025301010d01010101015100"): "MPEG2VideoDescriptor",
}

// RegisterKnownSet associates a UL with a human-readable set name,
// allowing Avid-only sub-parsers to extend the dataset_names table
// without this package knowing about them in advance.
func RegisterKnownSet(ul klv.UL, name string) {
	knownSets[ul] = name
}

func mustUL(hexStr string) klv.UL {
	ul, err := klv.ULFromHex(hexStr)
	if err != nil {
		panic(err)
	}

	return ul
}

// IsLocalSet reports whether key classifies as local-set syntax
// (administrator byte 0x02, category byte 0x53), SMPTE 377M §3.
func IsLocalSet(key klv.UL) bool {
	return key[klv.AdministratorByte] == klv.CategorySetOrPack && key[klv.CategoryByte] == klv.CategoryLocalSet
}

// Decode parses a DataSet's raw KLV value. The cursor invariant is that
// each (tag, set_size, value) record advances exactly set_size+4 bytes
// and the walk terminates exactly at len(value); any other outcome is
// ErrTruncatedSet.
func Decode(key klv.UL, pos int64, value []byte, p *primer.Primer) (*DataSet, error) {
	ds := &DataSet{
		Key:    key,
		Pos:    pos,
		data:   make(map[uint16]codec.Value),
		names:  make(map[string]uint16),
		primer: p,
	}

	name, known := knownSets[key]
	if known {
		ds.Name = name
	} else {
		ds.Dark = true
		ds.Name = "Dark"
	}

	// Only SMPTE-administered keys (060e2b34 prefix) are held to local-set
	// syntax; a registered key outside that namespace (the Avid
	// pseudo-Preface) decodes as a named, non-dark set.
	smpte := key[0] == 0x06 && key[1] == 0x0e && key[2] == 0x2b && key[3] == 0x34
	if !ds.Dark && smpte && !IsLocalSet(key) {
		return nil, errs.ErrBadPartition
	}

	offset := 0
	for offset < len(value) {
		if offset+4 > len(value) {
			return nil, errs.ErrTruncatedSet
		}

		tag := binary.BigEndian.Uint16(value[offset : offset+2])
		setSize := binary.BigEndian.Uint16(value[offset+2 : offset+4])

		start := offset + 4
		end := start + int(setSize)
		if end > len(value) {
			return nil, errs.ErrTruncatedSet
		}

		localData := value[start:end]

		v, err := p.DecodeFromLocalTag(tag, localData)
		if err != nil {
			return nil, err
		}

		ds.set(tag, v)
		if name, ok := p.ElementName(tag); ok {
			ds.names[name] = tag
		}

		offset = end
	}

	if offset != len(value) {
		return nil, errs.ErrTruncatedSet
	}

	if !ds.Dark {
		if _, ok := ds.data[InstanceUIDTag]; !ok {
			ds.warnings = append(ds.warnings, "missing InstanceUID field")
		}
	}

	return ds, nil
}

func (ds *DataSet) set(tag uint16, v codec.Value) {
	if _, exists := ds.data[tag]; !exists {
		ds.order = append(ds.order, tag)
	}
	ds.data[tag] = v
}

// Warnings returns the non-fatal conditions recorded while decoding.
func (ds *DataSet) Warnings() []string {
	return ds.warnings
}

// GetElement returns the value of the field named elementName.
func (ds *DataSet) GetElement(elementName string) (codec.Value, bool) {
	tag, ok := ds.names[elementName]
	if !ok {
		return codec.Value{}, false
	}

	v, ok := ds.data[tag]
	return v, ok
}

// SetElement sets the value of the field named elementName. The name
// must already be known to this set (via a prior decode or the Primer).
func (ds *DataSet) SetElement(elementName string, v codec.Value) bool {
	tag, ok := ds.names[elementName]
	if !ok {
		tag, ok = ds.primer.TagForName(elementName)
		if !ok {
			return false
		}
		ds.names[elementName] = tag
	}

	ds.set(tag, v)

	return true
}

// RmElement removes the field named elementName, reporting whether it
// was present.
func (ds *DataSet) RmElement(elementName string) bool {
	tag, ok := ds.names[elementName]
	if !ok {
		return false
	}

	delete(ds.names, elementName)
	delete(ds.data, tag)

	for i, t := range ds.order {
		if t == tag {
			ds.order = append(ds.order[:i], ds.order[i+1:]...)
			break
		}
	}

	return true
}

// InstanceUID returns the set's own identity, if present.
func (ds *DataSet) InstanceUID() (uuid.UUID, bool) {
	v, ok := ds.data[InstanceUIDTag]
	if !ok || v.Kind != codec.KindReferenceValue {
		return uuid.UUID{}, false
	}

	return uuid.UUID(v.Ref), true
}

// GetStrongReferences flattens every Reference or Array<Reference> field
// of sub-kind StrongReference into a list of instance identifiers, for
// graph walking.
func (ds *DataSet) GetStrongReferences() []uuid.UUID {
	var refs []uuid.UUID

	for _, tag := range ds.order {
		v := ds.data[tag]
		switch v.Kind {
		case codec.KindReferenceValue:
			if v.RefKind == codec.KindStrongReference {
				refs = append(refs, uuid.UUID(v.Ref))
			}
		case codec.KindListValue:
			for _, item := range v.List {
				if item.Kind == codec.KindReferenceValue && item.RefKind == codec.KindStrongReference {
					refs = append(refs, uuid.UUID(item.Ref))
				}
			}
		}
	}

	return refs
}

// Encode serializes the DataSet back to wire form: fields in insertion
// order, each value encoded via the Primer, length prefixed with a
// 2-byte BER field with the self-describing marker suppressed.
func (ds *DataSet) Encode() ([]byte, error) {
	bb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(bb)

	for _, tag := range ds.order {
		v := ds.data[tag]
		encoded, err := ds.primer.EncodeFromLocalTag(tag, v)
		if err != nil {
			return nil, err
		}

		var header [4]byte
		binary.BigEndian.PutUint16(header[0:2], tag)
		binary.BigEndian.PutUint16(header[2:4], uint16(len(encoded)))

		bb.Write(header[:])
		bb.Write(encoded)
	}

	return append([]byte(nil), bb.Bytes()...), nil
}
