package mxfparser

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/uuid"
	"github.com/smartjog/go-mxf/avid"
	"github.com/smartjog/go-mxf/dataset"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/partition"
	"github.com/smartjog/go-mxf/primer"
	"github.com/smartjog/go-mxf/rp210"
	"github.com/stretchr/testify/require"
)

func buildField(tag uint16, value []byte) []byte {
	var header [4]byte
	binary.BigEndian.PutUint16(header[0:2], tag)
	binary.BigEndian.PutUint16(header[2:4], uint16(len(value)))

	return append(header[:], value...)
}

var materialPackageKey = mustUL("060e2b34025301010d01010101013600")

// avidFixture is a minimal but structurally complete Avid-flavored MXF
// stream: header partition, Primer Pack, Avid pseudo-Preface, one
// MaterialPackage carrying an InstanceUID, an Object Directory, an
// empty body, a footer partition, and a Random Index Pack.
type avidFixture struct {
	data        []byte
	headerPos   int64
	footerPos   int64
	instanceUID [16]byte
}

func buildAvidFixture(t *testing.T) avidFixture {
	t.Helper()
	return buildAvidFixtureWithFill(t, false)
}

// buildAvidFixtureWithFill builds the same fixture as buildAvidFixture,
// optionally preceding the Primer Pack with a KLV-Fill immediately
// behind the Header Partition Pack, per SMPTE 377M. That Fill pads the
// partition to its KAG boundary and must not be counted in
// header_byte_count.
func buildAvidFixtureWithFill(t *testing.T, withLeadingFill bool) avidFixture {
	t.Helper()

	instanceUIDUL, err := klv.ULFromHex("060e2b34010101010102021001000001")
	require.NoError(t, err)

	p := primer.New(rp210.Standard.Build())
	p.Inject(map[uint16]klv.UL{dataset.InstanceUIDTag: instanceUIDUL})
	primerValue := p.Encode()

	aafPrefaceValue := buildField(0x0003, make([]byte, 24))

	var instanceUID [16]byte
	instanceUID[0] = 0xab
	materialPackageValue := buildField(dataset.InstanceUIDTag, instanceUID[:])

	objectDirectoryValue := (&avid.ObjectDirectory{}).Encode()

	type headerItem struct {
		key   klv.UL
		value []byte
	}
	items := []headerItem{
		{primer.PrimerPackKey, primerValue},
		{avid.AAFMetadataPrefaceKey, aafPrefaceValue},
		{materialPackageKey, materialPackageValue},
		{avid.ObjectDirectoryKey, objectDirectoryValue},
	}

	var headerByteCount uint64
	for _, it := range items {
		headerByteCount += uint64(klv.KeySize + 9 + len(it.value))
	}

	ms := &memSeeker{}

	headerPack := &partition.Pack{
		Key:                mustUL("060e2b34020501010d01020101020100"),
		MajorVersion:       1,
		MinorVersion:       3,
		HeaderByteCount:    headerByteCount,
		OperationalPattern: avidOPKey,
	}
	headerPos, err := klv.WriteTriplet(ms, headerPack.Key, headerPack.Encode())
	require.NoError(t, err)

	if withLeadingFill {
		_, err := klv.WriteTriplet(ms, partition.FillKeyShort, make([]byte, 8))
		require.NoError(t, err)
	}

	for _, it := range items {
		_, err := klv.WriteTriplet(ms, it.key, it.value)
		require.NoError(t, err)
	}

	footerPack := &partition.Pack{
		Key:                footerPartitionKey,
		MajorVersion:       1,
		MinorVersion:       3,
		PreviousPartition:  uint64(headerPos),
		OperationalPattern: avidOPKey,
	}
	footerPos, err := klv.WriteTriplet(ms, footerPack.Key, footerPack.Encode())
	require.NoError(t, err)

	ri := &partition.RandomIndex{Entries: []partition.RandomIndexEntry{
		{BodySID: 0, ByteOffset: uint64(headerPos)},
		{BodySID: 1, ByteOffset: uint64(footerPos)},
	}}
	_, err = klv.WriteTriplet(ms, partition.RandomIndexPackKey, ri.Encode())
	require.NoError(t, err)

	return avidFixture{data: ms.buf, headerPos: headerPos, footerPos: footerPos, instanceUID: instanceUID}
}

func TestRead_AvidDetectsOperationalPattern(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)
	require.Equal(t, OPAvid, f.OP)
}

func TestRead_AvidHeaderElements(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	require.Len(t, f.HeaderElements, 4)
	require.Equal(t, KindPrimer, f.HeaderElements[0].Kind)
	require.Equal(t, KindDataSet, f.HeaderElements[1].Kind)
	require.Equal(t, KindDataSet, f.HeaderElements[2].Kind)
	require.Equal(t, KindObjectDirectory, f.HeaderElements[3].Kind)

	require.NotNil(t, f.AvidPreface)
	require.Equal(t, "AvidMetadataPreface", f.AvidPreface.Name)

	uid, ok := f.HeaderElements[2].Set.InstanceUID()
	require.True(t, ok)
	require.Equal(t, fixture.instanceUID, [16]byte(uid))
}

func TestRead_BodyIsEmptyWhenNoEssenceFollowsHeader(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)
	require.Empty(t, f.Body)
}

func TestRead_FooterAndRandomIndex(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	require.Equal(t, partition.Footer, f.FooterPartition.Kind)
	require.NotNil(t, f.RandomIndex)
	require.Len(t, f.RandomIndex.Entries, 2)
	require.EqualValues(t, fixture.headerPos, f.RandomIndex.Entries[0].ByteOffset)
	require.EqualValues(t, fixture.footerPos, f.RandomIndex.Entries[1].ByteOffset)
}

func TestRead_BuildsGraphFromMaterialPackage(t *testing.T) {
	fixture := buildAvidFixture(t)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	_, ok := f.Graph.Lookup(uuid.UUID(fixture.instanceUID))
	require.True(t, ok)
}

func TestDetectOP_OP1aPattern(t *testing.T) {
	op, err := klv.ULFromHex("060e2b34040101010d0102010101ff00")
	require.NoError(t, err)
	require.Equal(t, OPOP1a, detectOP(op))
}

func TestRead_AvidHeaderElementsWithLeadingFill(t *testing.T) {
	fixture := buildAvidFixtureWithFill(t, true)

	f, err := Read(bytes.NewReader(fixture.data))
	require.NoError(t, err)

	require.Len(t, f.HeaderElements, 5)
	require.Equal(t, KindFill, f.HeaderElements[0].Kind)
	require.Equal(t, KindPrimer, f.HeaderElements[1].Kind)
	require.Equal(t, KindDataSet, f.HeaderElements[2].Kind)
	require.Equal(t, KindDataSet, f.HeaderElements[3].Kind)
	require.Equal(t, KindObjectDirectory, f.HeaderElements[4].Kind)

	require.NotNil(t, f.AvidPreface)

	uid, ok := f.HeaderElements[3].Set.InstanceUID()
	require.True(t, ok)
	require.Equal(t, fixture.instanceUID, [16]byte(uid))
}

func TestDetectOP_Unknown(t *testing.T) {
	op, err := klv.ULFromHex("00000000000000000000000000000000")
	require.NoError(t, err)
	require.Equal(t, OPUnknown, detectOP(op))
}
