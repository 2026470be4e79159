package codec

import (
	"github.com/smartjog/go-mxf/ber"
	"github.com/smartjog/go-mxf/errs"
)

// VersionSchema describes the fixed compound layout of a Version-family
// value as a sequence of field byte widths, in wire order.
type VersionSchema []int

var (
	// ProductVersionSchema: major, minor, patch, build, release — all UInt16.
	ProductVersionSchema = VersionSchema{2, 2, 2, 2, 2}
	// VersionTypeSchema: major, minor — both UInt8.
	VersionTypeSchema = VersionSchema{1, 1}
	// AvidVersionSchema: major, minor, tertiary, patchLevel (UInt16), type (UInt8).
	AvidVersionSchema = VersionSchema{2, 2, 2, 2, 1}
)

// VersionCodec decodes/encodes a fixed compound of unsigned integer
// fields, used for ProductVersion, VersionType, and the Avid variant.
type VersionCodec struct {
	Schema VersionSchema
}

func NewVersionCodec(schema VersionSchema) *VersionCodec {
	return &VersionCodec{Schema: schema}
}

func (c *VersionCodec) wireLen() int {
	n := 0
	for _, w := range c.Schema {
		n += w
	}

	return n
}

func (c *VersionCodec) Decode(data []byte) (Value, error) {
	if len(data) != c.wireLen() {
		return Value{}, errs.ErrInvalidFieldLength
	}

	parts := make([]uint64, len(c.Schema))
	offset := 0
	for i, w := range c.Schema {
		v, err := ber.DecodeFixed(data[offset:offset+w], w)
		if err != nil {
			return Value{}, err
		}
		parts[i] = v
		offset += w
	}

	return Value{Kind: KindVersionValue, VersionOf: parts}, nil
}

func (c *VersionCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindVersionValue {
		return nil, errEncodeKind("Version", v)
	}
	if len(v.VersionOf) != len(c.Schema) {
		return nil, errs.ErrWriteEncodeFailure
	}

	out := make([]byte, 0, c.wireLen())
	for i, w := range c.Schema {
		enc, err := ber.Encode(v.VersionOf[i], w, false)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}

	return out, nil
}
