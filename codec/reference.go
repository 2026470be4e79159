package codec

import "github.com/smartjog/go-mxf/errs"

// ReferenceCodec decodes/encodes the 16-byte Reference family: strong and
// weak references, AUIDs, UMIDs, ULs, UUIDs, and Package IDs. All share
// the same 16-byte wire layout; only the sub-kind tag differs, carried
// alongside the value for get_strong_references-style graph walking.
type ReferenceCodec struct {
	Kind ReferenceKind
}

func NewReferenceCodec(kind ReferenceKind) *ReferenceCodec {
	return &ReferenceCodec{Kind: kind}
}

func (c *ReferenceCodec) Decode(data []byte) (Value, error) {
	if len(data) != 16 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	var ref [16]byte
	copy(ref[:], data)

	kind := c.Kind
	if kind == "" {
		kind = KindReference
	}

	return Value{Kind: KindReferenceValue, Ref: ref, RefKind: kind}, nil
}

func (c *ReferenceCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindReferenceValue {
		return nil, errEncodeKind("Reference", v)
	}

	out := make([]byte, 16)
	copy(out, v.Ref[:])

	return out, nil
}
