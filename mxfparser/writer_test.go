package mxfparser

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/smartjog/go-mxf/avid"
	"github.com/smartjog/go-mxf/codec"
	"github.com/smartjog/go-mxf/dataset"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/partition"
	"github.com/smartjog/go-mxf/primer"
	"github.com/smartjog/go-mxf/rp210"
	"github.com/stretchr/testify/require"
)

// buildSymmetricAvidFixture builds an Avid-flavored stream (header
// partition, leading KLV-Fill, Primer Pack, Avid pseudo-Preface,
// MaterialPackage, Object Directory, footer partition, Random Index
// Pack) whose Object Directory entry, Avid pseudo-Preface
// object_directory pointer, and partition self-references already hold
// the exact values Write would (re)compute from scratch. A parse of
// this fixture followed by an unmutated Write must reproduce it
// byte-for-byte.
func buildSymmetricAvidFixture(t *testing.T) avidFixture {
	t.Helper()

	instanceUIDUL, err := klv.ULFromHex("060e2b34010101010102021001000001")
	require.NoError(t, err)

	p := primer.New(rp210.Standard.Build())
	p.Inject(map[uint16]klv.UL{dataset.InstanceUIDTag: instanceUIDUL})
	primerValue := p.Encode()

	var instanceUID [16]byte
	instanceUID[0] = 0xcd
	materialPackageValue := buildField(dataset.InstanceUIDTag, instanceUID[:])

	const fillValueLen = 8
	const framingOverhead = klv.KeySize + 9

	// A partition Pack's encoded length depends only on its
	// EssenceContainers count, never on its field values, so an
	// all-zero placeholder measures the same length the final,
	// patched pack will.
	headerPackEncodedLen := len((&partition.Pack{MajorVersion: 1, MinorVersion: 3, OperationalPattern: avidOPKey}).Encode())

	headerFramedSize := int64(framingOverhead + headerPackEncodedLen)
	fillFramedSize := int64(framingOverhead + fillValueLen)
	primerFramedSize := int64(framingOverhead + len(primerValue))
	prefaceFramedSize := int64(framingOverhead + 4 + 24) // buildField(0x0003, 24 zero bytes)
	materialPackageFramedSize := int64(framingOverhead + len(materialPackageValue))

	headerPos := int64(0)
	fillPos := headerPos + headerFramedSize
	primerPos := fillPos + fillFramedSize
	prefacePos := primerPos + primerFramedSize
	materialPackagePos := prefacePos + prefaceFramedSize
	objectDirectoryPos := materialPackagePos + materialPackageFramedSize

	objectDirectoryValue := (&avid.ObjectDirectory{Entries: []avid.ObjectDirectoryEntry{
		{Key: instanceUID, Offset: uint64(materialPackagePos)},
	}}).Encode()
	objectDirectoryFramedSize := int64(framingOverhead + len(objectDirectoryValue))

	footerPos := objectDirectoryPos + objectDirectoryFramedSize

	var objectDirectoryPointer [24]byte
	binary.BigEndian.PutUint64(objectDirectoryPointer[16:24], uint64(objectDirectoryPos))
	aafPrefaceValue := buildField(0x0003, objectDirectoryPointer[:])

	headerByteCount := uint64(primerFramedSize + prefaceFramedSize + materialPackageFramedSize + objectDirectoryFramedSize)

	ms := &memSeeker{}

	headerPack := &partition.Pack{
		Key:                mustUL("060e2b34020501010d01020101020100"),
		MajorVersion:       1,
		MinorVersion:       3,
		HeaderByteCount:    headerByteCount,
		FooterPartition:    uint64(footerPos),
		OperationalPattern: avidOPKey,
	}
	gotHeaderPos, err := klv.WriteTriplet(ms, headerPack.Key, headerPack.Encode())
	require.NoError(t, err)
	require.Equal(t, headerPos, gotHeaderPos)

	_, err = klv.WriteTriplet(ms, partition.FillKeyShort, make([]byte, fillValueLen))
	require.NoError(t, err)

	for _, it := range []struct {
		key   klv.UL
		value []byte
	}{
		{primer.PrimerPackKey, primerValue},
		{avid.AAFMetadataPrefaceKey, aafPrefaceValue},
		{materialPackageKey, materialPackageValue},
		{avid.ObjectDirectoryKey, objectDirectoryValue},
	} {
		_, err := klv.WriteTriplet(ms, it.key, it.value)
		require.NoError(t, err)
	}

	footerPack := &partition.Pack{
		Key:                footerPartitionKey,
		MajorVersion:       1,
		MinorVersion:       3,
		PreviousPartition:  uint64(headerPos),
		FooterPartition:    uint64(footerPos),
		ThisPartition:      uint64(footerPos),
		OperationalPattern: avidOPKey,
	}
	gotFooterPos, err := klv.WriteTriplet(ms, footerPack.Key, footerPack.Encode())
	require.NoError(t, err)
	require.Equal(t, footerPos, gotFooterPos)

	ri := &partition.RandomIndex{Entries: []partition.RandomIndexEntry{
		{BodySID: 0, ByteOffset: uint64(headerPos)},
		{BodySID: 1, ByteOffset: uint64(footerPos)},
	}}
	_, err = klv.WriteTriplet(ms, partition.RandomIndexPackKey, ri.Encode())
	require.NoError(t, err)

	return avidFixture{data: ms.buf, headerPos: headerPos, footerPos: footerPos, instanceUID: instanceUID}
}

func TestWrite_FullFileSymmetricWrite(t *testing.T) {
	fixture := buildSymmetricAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	out := &memSeeker{}
	require.NoError(t, Write(out, f))

	require.Equal(t, fixture.data, out.buf)
}

func TestWrite_RebuildsObjectDirectoryAndPatchesAvidPreface(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	out := &memSeeker{}
	require.NoError(t, Write(out, f))

	f2, err := Read(bytes.NewReader(out.buf))
	require.NoError(t, err)

	var objectDirectoryEl *Element
	var materialPackageEl *Element
	for _, e := range f2.HeaderElements {
		switch e.Kind {
		case KindObjectDirectory:
			objectDirectoryEl = e
		case KindDataSet:
			if e.Key == materialPackageKey {
				materialPackageEl = e
			}
		}
	}
	require.NotNil(t, objectDirectoryEl)
	require.NotNil(t, materialPackageEl)

	require.Len(t, objectDirectoryEl.OD.Entries, 1)
	require.Equal(t, fixture.instanceUID, objectDirectoryEl.OD.Entries[0].Key)
	require.EqualValues(t, materialPackageEl.Pos, objectDirectoryEl.OD.Entries[0].Offset)

	v, ok := f2.AvidPreface.GetElement("object_directory")
	require.True(t, ok)
	require.Equal(t, codec.KindUintValue, v.Kind)
	require.EqualValues(t, objectDirectoryEl.Pos, v.Uint)
}

func TestWrite_PatchesPartitionSelfReferences(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	out := &memSeeker{}
	require.NoError(t, Write(out, f))

	f2, err := Read(bytes.NewReader(out.buf))
	require.NoError(t, err)

	require.EqualValues(t, f2.FooterPartition.Pos, f2.HeaderPartition.FooterPartition)
	require.EqualValues(t, f2.FooterPartition.Pos, f2.FooterPartition.FooterPartition)
	require.EqualValues(t, f2.FooterPartition.Pos, f2.FooterPartition.ThisPartition)
}

func TestWrite_RewritesRandomIndexToHeaderAndFooterOnly(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	out := &memSeeker{}
	require.NoError(t, Write(out, f))

	f2, err := Read(bytes.NewReader(out.buf))
	require.NoError(t, err)

	require.Len(t, f2.RandomIndex.Entries, 2)
	require.EqualValues(t, f2.HeaderPartition.Pos, f2.RandomIndex.Entries[0].ByteOffset)
	require.EqualValues(t, f2.FooterPartition.Pos, f2.RandomIndex.Entries[1].ByteOffset)
}

func TestWrite_TruncatesTrailingBytes(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	out := &memSeeker{buf: make([]byte, len(fixture.data)+4096)}
	require.NoError(t, Write(out, f))

	_, err = Read(bytes.NewReader(out.buf))
	require.NoError(t, err)
}
