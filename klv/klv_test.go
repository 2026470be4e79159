package klv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeekKey_DoesNotConsume(t *testing.T) {
	data := append(bytes.Repeat([]byte{0xaa}, 16), 0x01, 0x02, 0x03)
	r := bytes.NewReader(data)

	key, err := PeekKey(r)
	require.NoError(t, err)
	require.Equal(t, UL(bytes.Repeat([]byte{0xaa}, 16)[:16]), key)

	pos, err := r.Seek(0, 1)
	require.NoError(t, err)
	require.EqualValues(t, 0, pos)
}

func TestOpenKLV_ShortForm(t *testing.T) {
	key := bytes.Repeat([]byte{0x01}, 16)
	value := []byte{0xde, 0xad, 0xbe, 0xef}
	data := append(append([]byte{}, key...), byte(len(value)))
	data = append(data, value...)

	r := bytes.NewReader(data)
	tr, err := OpenKLV(r)
	require.NoError(t, err)
	require.EqualValues(t, 4, tr.Length)
	require.Equal(t, 1, tr.BytesNum)
	require.EqualValues(t, 0, tr.Pos)

	got, err := ReadValue(r, tr)
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestOpenKLV_LongForm(t *testing.T) {
	key := bytes.Repeat([]byte{0x02}, 16)
	value := bytes.Repeat([]byte{0x42}, 300)
	lenPrefix := []byte{0x82, 0x01, 0x2c} // 300 in 2 bytes, long form
	data := append(append(append([]byte{}, key...), lenPrefix...), value...)

	r := bytes.NewReader(data)
	tr, err := OpenKLV(r)
	require.NoError(t, err)
	require.EqualValues(t, 300, tr.Length)
	require.Equal(t, 3, tr.BytesNum)

	got, err := ReadValue(r, tr)
	require.NoError(t, err)
	require.Equal(t, value, got)
}

func TestSkip(t *testing.T) {
	key := bytes.Repeat([]byte{0x03}, 16)
	value := []byte{1, 2, 3, 4, 5}
	trailing := []byte{0xff}
	data := append(append(append([]byte{}, key...), byte(len(value))), append(value, trailing...)...)

	r := bytes.NewReader(data)
	tr, err := OpenKLV(r)
	require.NoError(t, err)
	require.NoError(t, Skip(r, tr))

	rest := make([]byte, 1)
	_, err = r.Read(rest)
	require.NoError(t, err)
	require.Equal(t, trailing, rest)
}

func TestWriteTriplet(t *testing.T) {
	var buf bytes.Buffer
	w := &seekWriter{Buffer: &buf}

	key := UL(bytes.Repeat([]byte{0x09}, 16))
	pos, err := WriteTriplet(w, key, []byte{1, 2, 3})
	require.NoError(t, err)
	require.EqualValues(t, 0, pos)

	out := buf.Bytes()
	require.Equal(t, key[:], out[:16])
	// Long-form, 8-byte fixed width length prefix: 0x88 + 8 bytes for length 3.
	require.Equal(t, byte(0x88), out[16])
	require.Equal(t, []byte{1, 2, 3}, out[25:])
}

// seekWriter adapts a bytes.Buffer (append-only) to io.WriteSeeker for
// tests where the caller always writes at the current end of the buffer.
type seekWriter struct {
	*bytes.Buffer
}

func (s *seekWriter) Seek(offset int64, whence int) (int64, error) {
	return int64(s.Buffer.Len()), nil
}
