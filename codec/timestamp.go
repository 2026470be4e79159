package codec

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/errs"
)

// TimeStampCodec decodes/encodes the 8-byte SMPTE TimeStamp compound:
// year (signed, big-endian int16), month, day, hour, minute, second
// (unsigned bytes), and a final "quarter-frame" byte.
//
// The final byte's unit is 400 microseconds (nanosecond = byte *
// 400000). Values not evenly divisible by that unit do not survive a
// round-trip, by construction.
//
// An all-zero wire value decodes to TimeStamp{Valid: false}, meaning
// "unknown", per SMPTE 377M.
type TimeStampCodec struct{}

const quarterFrameMicros = 400

func (c *TimeStampCodec) Decode(data []byte) (Value, error) {
	if len(data) != 8 {
		return Value{}, errs.ErrInvalidFieldLength
	}

	if isAllZero(data) {
		return Value{Kind: KindTimeValue, Time: TimeStamp{Valid: false}}, nil
	}

	year := int16(binary.BigEndian.Uint16(data[0:2]))
	ts := TimeStamp{
		Valid:      true,
		Year:       year,
		Month:      data[2],
		Day:        data[3],
		Hour:       data[4],
		Minute:     data[5],
		Second:     data[6],
		Nanosecond: int(data[7]) * quarterFrameMicros * 1000,
	}

	return Value{Kind: KindTimeValue, Time: ts}, nil
}

func (c *TimeStampCodec) Encode(v Value) ([]byte, error) {
	if v.Kind != KindTimeValue {
		return nil, errEncodeKind("TimeStamp", v)
	}

	out := make([]byte, 8)
	if !v.Time.Valid {
		return out, nil
	}

	ts := v.Time
	binary.BigEndian.PutUint16(out[0:2], uint16(ts.Year))
	out[2] = ts.Month
	out[3] = ts.Day
	out[4] = ts.Hour
	out[5] = ts.Minute
	out[6] = ts.Second
	out[7] = byte(ts.Nanosecond / 1000 / quarterFrameMicros)

	return out, nil
}

func isAllZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}

	return true
}
