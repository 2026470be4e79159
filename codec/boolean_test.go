package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBooleanCodec_RoundTrip(t *testing.T) {
	c := &BooleanCodec{}

	v, err := c.Decode([]byte{0x01})
	require.NoError(t, err)
	require.True(t, v.Bool)

	v, err = c.Decode([]byte{0x7f})
	require.NoError(t, err)
	require.True(t, v.Bool)

	v, err = c.Decode([]byte{0x00})
	require.NoError(t, err)
	require.False(t, v.Bool)

	out, err := c.Encode(Value{Kind: KindBoolValue, Bool: true})
	require.NoError(t, err)
	require.Equal(t, []byte{0x01}, out)

	out, err = c.Encode(Value{Kind: KindBoolValue, Bool: false})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, out)
}

func TestBooleanCodec_BadLength(t *testing.T) {
	c := &BooleanCodec{}
	_, err := c.Decode([]byte{})
	require.Error(t, err)
}
