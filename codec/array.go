package codec

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/internal/pool"
)

// ArrayCodec decodes/encodes the fixed-item-size array family: "Batch of
// T", "T Batch", "(Strong|Weak|AUID)Array", and "2 element array of T".
// Wire layout is UInt32 count, UInt32 item_size, then count items each
// item_size bytes long, decoded through Item.
type ArrayCodec struct {
	Item Codec
}

func NewArrayCodec(item Codec) *ArrayCodec {
	return &ArrayCodec{Item: item}
}

func (c *ArrayCodec) Decode(data []byte) (Value, error) {
	if len(data) < 8 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	count := binary.BigEndian.Uint32(data[0:4])
	itemSize := binary.BigEndian.Uint32(data[4:8])

	rest := data[8:]
	if uint64(itemSize)*uint64(count) != uint64(len(rest)) {
		return Value{}, errs.ErrInvalidFieldLength
	}

	items := make([]Value, 0, count)
	for i := uint32(0); i < count; i++ {
		itemData := rest[uint64(i)*uint64(itemSize) : uint64(i+1)*uint64(itemSize)]
		item, err := c.Item.Decode(itemData)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}

	return Value{Kind: KindListValue, List: items, Uint: uint64(itemSize)}, nil
}

func (c *ArrayCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindListValue {
		return nil, errEncodeKind("Array", v)
	}

	count := uint32(len(v.List))
	itemSize := uint32(v.Uint)

	bb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(bb)

	var header [8]byte
	binary.BigEndian.PutUint32(header[0:4], count)
	binary.BigEndian.PutUint32(header[4:8], itemSize)
	bb.Write(header[:])

	for _, item := range v.List {
		enc, err := c.Item.Encode(item)
		if err != nil {
			return nil, err
		}
		if uint32(len(enc)) != itemSize {
			return nil, errs.ErrWriteEncodeFailure
		}
		bb.Write(enc)
	}

	return append([]byte(nil), bb.Bytes()...), nil
}
