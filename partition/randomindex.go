package partition

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/klv"
)

// RandomIndexEntry is one (body SID, partition byte offset) pair from
// the trailing Random Index Pack.
type RandomIndexEntry struct {
	BodySID    uint32
	ByteOffset uint64
}

// RandomIndex is the decoded Random Index Pack: a list of partition
// locations plus the self-describing overall KLV length trailer SMPTE
// 377M uses to let readers find the pack by seeking from EOF.
type RandomIndex struct {
	Pos     int64
	Entries []RandomIndexEntry
}

// DecodeRandomIndex parses a Random Index Pack's raw KLV value. bytesNum
// is the BER length-prefix width the pack's own KLV triplet used.
func DecodeRandomIndex(pos int64, bytesNum int, value []byte) (*RandomIndex, error) {
	if len(value) < 4 || (len(value)-4)%12 != 0 {
		return nil, errs.ErrInvalidFieldLength
	}

	ri := &RandomIndex{Pos: pos}
	idx := 0
	for idx+12 <= len(value)-4 {
		ri.Entries = append(ri.Entries, RandomIndexEntry{
			BodySID:    binary.BigEndian.Uint32(value[idx : idx+4]),
			ByteOffset: binary.BigEndian.Uint64(value[idx+4 : idx+12]),
		})
		idx += 12
	}

	totalPartLength := binary.BigEndian.Uint32(value[idx : idx+4])
	if uint32(klv.KeySize+bytesNum+len(value)) != totalPartLength {
		return nil, errs.ErrBadPartition
	}

	return ri, nil
}

// Encode serializes the Random Index Pack back to wire form, computing
// the trailing overall-length trailer from the entry count being
// written (9-byte BER length prefix, matching the write-path's fixed
// convention for top-level KLVs).
func (ri *RandomIndex) Encode() []byte {
	out := make([]byte, 0, len(ri.Entries)*12+4)
	for _, e := range ri.Entries {
		var rec [12]byte
		binary.BigEndian.PutUint32(rec[0:4], e.BodySID)
		binary.BigEndian.PutUint64(rec[4:12], e.ByteOffset)
		out = append(out, rec[:]...)
	}

	totalPartLength := uint32(klv.KeySize + 9 + 4 + len(out))
	var trailer [4]byte
	binary.BigEndian.PutUint32(trailer[:], totalPartLength)

	return append(out, trailer[:]...)
}
