// Package ber implements the Basic Encoding Rules length-field codec used
// by every KLV triplet in an MXF stream (SMPTE 377M §7). It knows nothing
// about keys or values, only the variable-width length prefix that sits
// between them.
package ber

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/errs"
)

// MaxBytesNum is the largest length-prefix byte count BER permits; SMPTE
// 377M never needs more than a uint64 worth of length.
const MaxBytesNum = 8

// Decode reads a BER length prefix from b and returns the decoded value
// together with the number of bytes consumed (1..9).
//
// Short form: b[0] has its high bit clear and is itself the length.
// Long form: b[0] is 0x80|n (1<=n<=8), followed by n big-endian bytes.
// The SMPTE quirk where a short-form 0x80 byte decodes to 0 is preserved
// on purpose: 0x80 has its high bit set, so callers must pass at least 1
// byte and this function treats 0x80 as a 1-byte-consumed short form only
// when bytesNum override isn't used; true long form only triggers when
// the low 7 bits are nonzero, matching the original parser's behavior of
// reading n from (b[0] & 0x7f) and treating n==0 as "no length bytes",
// i.e. a value of 0.
func Decode(b []byte) (value uint64, consumed int, err error) {
	if len(b) == 0 {
		return 0, 0, errs.ErrInvalidBER
	}

	first := b[0]
	if first&0x80 == 0 {
		return uint64(first), 1, nil
	}

	n := int(first & 0x7f)
	if n == 0 {
		// SMPTE quirk: 0x80 is legal short form for zero length.
		return 0, 1, nil
	}
	if n > MaxBytesNum {
		return 0, 0, errs.ErrInvalidBER
	}
	if len(b) < 1+n {
		return 0, 0, errs.ErrInvalidBER
	}

	return decodeFixed(b[1 : 1+n]), 1 + n, nil
}

// DecodeFixed skips the self-describing prefix and reads exactly
// bytesNum raw big-endian bytes as the value. Used for 2-byte local-set
// length fields and for integer codecs whose width is already known.
func DecodeFixed(b []byte, bytesNum int) (uint64, error) {
	if bytesNum < 1 || bytesNum > MaxBytesNum {
		return 0, errs.ErrInvalidBER
	}
	if len(b) < bytesNum {
		return 0, errs.ErrInvalidBER
	}

	return decodeFixed(b[:bytesNum]), nil
}

func decodeFixed(b []byte) uint64 {
	var buf [8]byte
	copy(buf[8-len(b):], b)
	return binary.BigEndian.Uint64(buf[:])
}

// Encode encodes value as a BER length field.
//
// With bytesNum == 0, the minimum byte count that fits value is chosen:
// short form (a single byte) when value < 128, otherwise long form
// 0x80|n followed by n big-endian bytes.
//
// With bytesNum in 1..8, the output is forced to that width. If prefix is
// true the 0x80|n marker byte precedes the n value bytes (long form,
// regardless of whether value would fit in short form); if prefix is
// false, only the n raw big-endian bytes are returned with no marker,
// which is the encoding DataSet field lengths use (bytesNum=2, no
// prefix).
func Encode(value uint64, bytesNum int, prefix bool) ([]byte, error) {
	if bytesNum == 0 {
		return encodeMinimal(value), nil
	}
	if bytesNum < 0 || bytesNum > MaxBytesNum {
		return nil, errs.ErrInvalidBER
	}

	fixed := encodeFixedWidth(value, bytesNum)
	if !prefix {
		return fixed, nil
	}

	out := make([]byte, 0, 1+bytesNum)
	out = append(out, 0x80|byte(bytesNum))
	out = append(out, fixed...)

	return out, nil
}

func encodeMinimal(value uint64) []byte {
	if value < 128 {
		return []byte{byte(value)}
	}

	n := minBytesFor(value)
	out := make([]byte, 0, 1+n)
	out = append(out, 0x80|byte(n))
	out = append(out, encodeFixedWidth(value, n)...)

	return out
}

func minBytesFor(value uint64) int {
	n := 1
	for v := value >> 8; v != 0; v >>= 8 {
		n++
	}

	return n
}

func encodeFixedWidth(value uint64, bytesNum int) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], value)

	return buf[8-bytesNum:]
}
