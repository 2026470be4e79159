package codec

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/errs"
)

// RationalCodec decodes/encodes a (numerator, denominator) pair of
// UInt32s.
type RationalCodec struct{}

func (c *RationalCodec) Decode(data []byte) (Value, error) {
	if len(data) != 8 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	return Value{
		Kind:   KindRationalValue,
		RatNum: binary.BigEndian.Uint32(data[0:4]),
		RatDen: binary.BigEndian.Uint32(data[4:8]),
	}, nil
}

func (c *RationalCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindRationalValue {
		return nil, errEncodeKind("Rational", v)
	}

	out := make([]byte, 8)
	binary.BigEndian.PutUint32(out[0:4], v.RatNum)
	binary.BigEndian.PutUint32(out[4:8], v.RatDen)

	return out, nil
}
