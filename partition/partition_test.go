package partition

import (
	"testing"

	"github.com/smartjog/go-mxf/klv"
	"github.com/stretchr/testify/require"
)

func headerKey() klv.UL {
	return mustUL("060e2b34020501010d01020101020100")
}

func TestDecode_HeaderRoundTrip(t *testing.T) {
	p := &Pack{
		Key:               headerKey(),
		MajorVersion:      1,
		MinorVersion:      3,
		KAGSize:           512,
		ThisPartition:     0,
		PreviousPartition: 0,
		FooterPartition:   1000,
		HeaderByteCount:   200,
		BodySID:           0,
	}

	encoded := p.Encode()

	got, err := Decode(headerKey(), 0, 4, encoded)
	require.NoError(t, err)
	require.Equal(t, Header, got.Kind)
	require.EqualValues(t, 512, got.KAGSize)
	require.EqualValues(t, 1000, got.FooterPartition)
}

func TestDecode_RejectsBadMajorVersion(t *testing.T) {
	p := &Pack{Key: headerKey(), MajorVersion: 2, MinorVersion: 3}
	_, err := Decode(headerKey(), 0, 4, p.Encode())
	require.Error(t, err)
}

func TestDecode_HeaderRejectsNonZeroThisPartition(t *testing.T) {
	p := &Pack{Key: headerKey(), MajorVersion: 1, MinorVersion: 3, ThisPartition: 5}
	_, err := Decode(headerKey(), 0, 4, p.Encode())
	require.Error(t, err)
}

func TestDecode_FooterRejectsOpen(t *testing.T) {
	// key[14] = 0x01: (0x01 & 0xfe) == 0 -> Open
	key := mustUL("060e2b34020501010d01020101040100")
	p := &Pack{Key: key, MajorVersion: 1, MinorVersion: 3}
	_, err := Decode(key, 0, 4, p.Encode())
	require.Error(t, err)
}

func TestDecode_BodySIDRequiresEssenceContainers(t *testing.T) {
	p := &Pack{Key: headerKey(), MajorVersion: 1, MinorVersion: 3, BodySID: 1}
	_, err := Decode(headerKey(), 0, 4, p.Encode())
	require.Error(t, err)
}

func TestDecode_EssenceContainersRoundTrip(t *testing.T) {
	p := &Pack{
		Key: headerKey(), MajorVersion: 1, MinorVersion: 3,
		BodySID:           1,
		EssenceContainers: []klv.UL{mustUL("060e2b34040101010d01030102100000")},
	}

	got, err := Decode(headerKey(), 0, 4, p.Encode())
	require.NoError(t, err)
	require.Len(t, got.EssenceContainers, 1)
}

func TestIsFillKey(t *testing.T) {
	require.True(t, IsFillKey(FillKeyLong))
	require.True(t, IsFillKey(FillKeyShort))
	require.False(t, IsFillKey(klv.UL{0x01}))
}

func TestRandomIndex_RoundTrip(t *testing.T) {
	ri := &RandomIndex{Entries: []RandomIndexEntry{
		{BodySID: 1, ByteOffset: 1024},
		{BodySID: 2, ByteOffset: 2048},
	}}

	encoded := ri.Encode()

	got, err := DecodeRandomIndex(0, 9, encoded)
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	require.EqualValues(t, 2048, got.Entries[1].ByteOffset)
}
