package codec

import (
	"encoding/binary"
	"encoding/hex"
	"unicode/utf16"

	"github.com/smartjog/go-mxf/errs"
)

// Wire prefixes for the two Avid string escape forms. A value that fails
// to decode as UTF-16BE is re-sniffed against these fixed 17-byte
// prefixes (Design Notes §9, "String codec ambiguity").
var (
	avidU16Prefix, _    = hex.DecodeString("4c0002100100000000060e2b3401040101")
	avidInt32Prefix, _  = hex.DecodeString("4c0007010100000000060e2b3401040101")
	avidPrefixByteCount = 17
)

// StringCodec decodes/encodes the 16-bit-Unicode-String family. Values
// that decode cleanly as UTF-16BE are Text{Kind: TextUnicode}; values
// that don't are re-sniffed as one of the known Avid escape forms, or
// kept as an unencodable TextAvidUnknown when neither prefix matches.
type StringCodec struct{}

func (c *StringCodec) Decode(data []byte) (Value, error) {
	if s, ok := decodeUTF16BE(data); ok {
		return Value{Kind: KindTextValue, Text: Text{Kind: TextUnicode, Str: s}}, nil
	}

	if len(data) >= avidPrefixByteCount {
		prefix := data[:avidPrefixByteCount]
		payload := data[avidPrefixByteCount:]

		switch {
		case bytesEqual(prefix, avidU16Prefix):
			s := decodeUTF16LETrimNull(payload)
			return Value{Kind: KindTextValue, Text: Text{Kind: TextAvidU16, Str: s}}, nil

		case bytesEqual(prefix, avidInt32Prefix):
			dur, err := decodeAvidReversedInt(payload)
			if err != nil {
				return Value{}, err
			}

			return Value{Kind: KindTextValue, Text: Text{Kind: TextAvidInt32, Int: dur}}, nil
		}
	}

	rawType := []byte{}
	if len(data) >= avidPrefixByteCount {
		rawType = append(rawType, data[:avidPrefixByteCount]...)
	}

	return Value{Kind: KindTextValue, Text: Text{
		Kind:     TextAvidUnknown,
		RawType:  rawType,
		RawValue: append([]byte{}, data...),
	}}, nil
}

func (c *StringCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindTextValue {
		return nil, errEncodeKind("String", v)
	}

	switch v.Text.Kind {
	case TextUnicode:
		return encodeUTF16BE(v.Text.Str), nil

	case TextAvidU16:
		out := append([]byte{}, avidU16Prefix...)
		out = append(out, encodeUTF16LENullTerminated(v.Text.Str)...)
		return out, nil

	case TextAvidInt32:
		out := append([]byte{}, avidInt32Prefix...)
		out = append(out, encodeAvidReversedInt(v.Text.Int)...)
		return out, nil

	case TextAvidUnknown:
		return nil, errs.ErrWriteEncodeFailure

	default:
		return nil, errEncodeKind("String", v)
	}
}

func decodeUTF16BE(data []byte) (string, bool) {
	if len(data)%2 != 0 {
		return "", false
	}

	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(data[2*i:])
	}

	if !validUTF16(units) {
		return "", false
	}

	return string(utf16.Decode(units)), true
}

func encodeUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.BigEndian.PutUint16(out[2*i:], u)
	}

	return out
}

func decodeUTF16LETrimNull(data []byte) string {
	if len(data) < 2 {
		return ""
	}
	// Drop the trailing UTF-16 NUL terminator written by the encoder.
	payload := data[:len(data)-2]

	units := make([]uint16, len(payload)/2)
	for i := range units {
		units[i] = binary.LittleEndian.Uint16(payload[2*i:])
	}

	return string(utf16.Decode(units))
}

func encodeUTF16LENullTerminated(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, (len(units)+1)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[2*i:], u)
	}
	// trailing NUL left as zero bytes

	return out
}

func validUTF16(units []uint16) bool {
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF: // high surrogate
			if i+1 >= len(units) {
				return false
			}
			next := units[i+1]
			if next < 0xDC00 || next > 0xDFFF {
				return false
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF: // unpaired low surrogate
			return false
		}
	}

	return true
}

// decodeAvidReversedInt decodes the Avid "reversed hex order" Int64
// escape: up to 4 trailing bytes of payload, read from the end, most
// significant byte last.
func decodeAvidReversedInt(payload []byte) (int64, error) {
	if len(payload) > 5 {
		return 0, errs.ErrInvalidFieldLength
	}

	var dur int64
	for i := 1; i <= 4 && i <= len(payload); i++ {
		dur = dur<<8 | int64(payload[len(payload)-i])
	}

	return dur, nil
}

func encodeAvidReversedInt(dur int64) []byte {
	out := make([]byte, 4)
	v := dur
	for i := 0; i < 4; i++ {
		out[i] = byte(v & 0xff)
		v >>= 8
	}

	return out
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
