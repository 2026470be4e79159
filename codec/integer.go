package codec

import (
	"github.com/smartjog/go-mxf/ber"
	"github.com/smartjog/go-mxf/errs"
)

// IntegerCodec decodes/encodes fixed-width integers of the given byte
// width (1, 2, 4, or 8). The sign implied by "Int" vs "UInt" in the RP
// 210 type name is not applied: every width
// is read as a plain big-endian magnitude via the BER fixed-width
// decoder, so Int16 and UInt16 share one code path. Callers that need a
// signed interpretation (TimeStamp's year field) reinterpret the bits
// themselves rather than going through this codec.
type IntegerCodec struct {
	Width int // bytes: 1, 2, 4, or 8
}

func NewIntegerCodec(width int) *IntegerCodec {
	return &IntegerCodec{Width: width}
}

func (c *IntegerCodec) Decode(data []byte) (Value, error) {
	if len(data) != c.Width {
		return Value{}, errs.ErrInvalidFieldLength
	}

	v, err := ber.DecodeFixed(data, c.Width)
	if err != nil {
		return Value{}, err
	}

	return Value{Kind: KindUintValue, Uint: v}, nil
}

func (c *IntegerCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindUintValue {
		return nil, errEncodeKind("Integer", v)
	}

	return ber.Encode(v.Uint, c.Width, false)
}

// LengthCodec decodes/encodes the Length/Position type: an 8-byte field
// whose value shape is a signed i64.
type LengthCodec struct{}

func (c *LengthCodec) Decode(data []byte) (Value, error) {
	if len(data) != 8 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	raw, err := ber.DecodeFixed(data, 8)
	if err != nil {
		return Value{}, err
	}

	return Value{Kind: KindIntValue, Int: int64(raw)}, nil
}

func (c *LengthCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindIntValue {
		return nil, errEncodeKind("Length", v)
	}

	return ber.Encode(uint64(v.Int), 8, false)
}

// XIDCodec decodes/encodes TrackID-family identifiers: a plain 4-byte
// unsigned integer.
type XIDCodec struct{}

func (c *XIDCodec) Decode(data []byte) (Value, error) {
	if len(data) != 4 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	raw, err := ber.DecodeFixed(data, 4)
	if err != nil {
		return Value{}, err
	}

	return Value{Kind: KindUintValue, Uint: raw}, nil
}

func (c *XIDCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindUintValue {
		return nil, errEncodeKind("XID", v)
	}

	return ber.Encode(v.Uint, 4, false)
}
