package codec

import "github.com/smartjog/go-mxf/errs"

// BooleanCodec decodes/encodes the 1-byte Boolean type: any nonzero byte
// reads as true, written back as exactly 0x01 (not the original byte),
// per RP 210's "1 byte (nonzero = true)" wire rule.
type BooleanCodec struct{}

func (c *BooleanCodec) Decode(data []byte) (Value, error) {
	if len(data) != 1 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	return Value{Kind: KindBoolValue, Bool: data[0] != 0}, nil
}

func (c *BooleanCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindBoolValue {
		return nil, errEncodeKind("Boolean", v)
	}
	if v.Bool {
		return []byte{0x01}, nil
	}

	return []byte{0x00}, nil
}
