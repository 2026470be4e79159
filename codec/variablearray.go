package codec

import (
	"github.com/smartjog/go-mxf/ber"
	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/internal/pool"
)

// VariableArrayMode selects how a VariableArrayCodec interprets its
// count-less wire payload.
type VariableArrayMode int

const (
	// VariableArrayStrings: `\x00\x00`-terminated, `\x00\x00`-joined
	// UTF-16BE strings ("16 bit Unicode String Array").
	VariableArrayStrings VariableArrayMode = iota
	// VariableArrayIntegers: concatenated fixed-width unsigned integers
	// ("Array of U?IntN").
	VariableArrayIntegers
)

// VariableArrayCodec decodes/encodes the count-less array family: no
// length prefix precedes the items, so the item boundaries are implied
// by the mode (NUL-NUL string terminators, or a fixed item width).
type VariableArrayCodec struct {
	Mode     VariableArrayMode
	ItemSize int // only used in VariableArrayIntegers mode
}

func NewVariableArrayCodec(mode VariableArrayMode, itemSize int) *VariableArrayCodec {
	return &VariableArrayCodec{Mode: mode, ItemSize: itemSize}
}

func (c *VariableArrayCodec) Decode(data []byte) (Value, error) {
	switch c.Mode {
	case VariableArrayStrings:
		return c.decodeStrings(data)
	case VariableArrayIntegers:
		return c.decodeIntegers(data)
	default:
		return Value{}, errs.ErrInvalidFieldLength
	}
}

func (c *VariableArrayCodec) decodeStrings(data []byte) (Value, error) {
	var items []Value
	start := 0

	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			chunk := data[start:i]
			s, _ := decodeUTF16BE(chunk)
			items = append(items, Value{Kind: KindTextValue, Text: Text{Kind: TextUnicode, Str: s}})
			start = i + 2
		}
	}

	if start != len(data) {
		// trailing unterminated fragment: keep it as a final element
		s, _ := decodeUTF16BE(data[start:])
		items = append(items, Value{Kind: KindTextValue, Text: Text{Kind: TextUnicode, Str: s}})
	}

	return Value{Kind: KindListValue, List: items}, nil
}

func (c *VariableArrayCodec) decodeIntegers(data []byte) (Value, error) {
	if c.ItemSize <= 0 {
		return Value{}, errs.ErrInvalidFieldLength
	}
	if len(data)%c.ItemSize != 0 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	var items []Value
	for i := 0; i < len(data); i += c.ItemSize {
		v, err := ber.DecodeFixed(data[i:i+c.ItemSize], c.ItemSize)
		if err != nil {
			return Value{}, err
		}
		items = append(items, Value{Kind: KindUintValue, Uint: v})
	}

	return Value{Kind: KindListValue, List: items, Uint: uint64(c.ItemSize)}, nil
}

func (c *VariableArrayCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindListValue {
		return nil, errEncodeKind("VariableArray", v)
	}

	bb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(bb)

	switch c.Mode {
	case VariableArrayStrings:
		for _, item := range v.List {
			if item.Kind != KindTextValue {
				return nil, errEncodeKind("VariableArray", item)
			}
			bb.Write(encodeUTF16BE(item.Text.Str))
			bb.Write([]byte{0x00, 0x00})
		}

		return append([]byte(nil), bb.Bytes()...), nil

	case VariableArrayIntegers:
		for _, item := range v.List {
			if item.Kind != KindUintValue {
				return nil, errEncodeKind("VariableArray", item)
			}
			enc, err := ber.Encode(item.Uint, c.ItemSize, false)
			if err != nil {
				return nil, err
			}
			bb.Write(enc)
		}

		return append([]byte(nil), bb.Bytes()...), nil

	default:
		return nil, errs.ErrWriteEncodeFailure
	}
}
