package codec

import (
	"github.com/smartjog/go-mxf/ber"
	"github.com/smartjog/go-mxf/errs"
)

// AvidOffsetCodec decodes/encodes the Avid-specific 24-byte offset type:
// the leading 16 bytes are reserved/unused, and the trailing 8 bytes hold
// a big-endian UInt64 value.
type AvidOffsetCodec struct{}

const avidOffsetWireLen = 24
const avidOffsetValueLen = 8

func (c *AvidOffsetCodec) Decode(data []byte) (Value, error) {
	if len(data) != avidOffsetWireLen {
		return Value{}, errs.ErrInvalidFieldLength
	}

	v, err := ber.DecodeFixed(data[avidOffsetWireLen-avidOffsetValueLen:], avidOffsetValueLen)
	if err != nil {
		return Value{}, err
	}

	return Value{Kind: KindUintValue, Uint: v}, nil
}

func (c *AvidOffsetCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindUintValue {
		return nil, errEncodeKind("AvidOffset", v)
	}

	out := make([]byte, avidOffsetWireLen)
	enc, err := ber.Encode(v.Uint, avidOffsetValueLen, false)
	if err != nil {
		return nil, err
	}
	copy(out[avidOffsetWireLen-avidOffsetValueLen:], enc)

	return out, nil
}
