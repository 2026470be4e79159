package rp210

import (
	"testing"

	"github.com/smartjog/go-mxf/klv"
	"github.com/stretchr/testify/require"
)

func TestStandard_Build_HasBaseEntries(t *testing.T) {
	dict := Standard.Build()
	e, ok := dict.Lookup(mustUL("060e2b34025301010d01010101012f00"))
	require.True(t, ok)
	require.Equal(t, "preface", e.Name)
}

func TestStandard_Build_HasSyntheticAAFTags(t *testing.T) {
	dict := Standard.Build()
	e, ok := dict.Lookup(mustUL("00000000000000000000000000000002"))
	require.True(t, ok)
	require.Equal(t, "StrongReference", e.Type)
}

func TestAvid_Build_LayersAvidEntries(t *testing.T) {
	dict := Avid.Build()
	_, ok := dict.Lookup(mustUL("8b4ebaf0ca0940b554405d72bfbd4b0e"))
	require.True(t, ok)

	// Still carries the base and synthetic entries.
	_, ok = dict.Lookup(mustUL("060e2b34025301010d01010101012f00"))
	require.True(t, ok)
}

func TestStandard_Build_DoesNotHaveAvidOnlyEntries(t *testing.T) {
	dict := Standard.Build()
	_, ok := dict.Lookup(mustUL("8b4ebaf0ca0940b554405d72bfbd4b0e"))
	require.False(t, ok)
}

func TestLookup_RegisteredVariants(t *testing.T) {
	_, ok := Lookup("standard")
	require.True(t, ok)

	_, ok = Lookup("avid")
	require.True(t, ok)

	_, ok = Lookup("nonexistent")
	require.False(t, ok)
}

func TestDictionary_UnknownUL(t *testing.T) {
	dict := Standard.Build()
	_, ok := dict.Lookup(klv.UL{0xff})
	require.False(t, ok)
}
