// Package partition implements the fixed-layout Partition Pack, Random
// Index Pack, KLV-Fill, and Dark-KLV passthrough containers that
// bracket an MXF file's metadata and essence.
package partition

import (
	"encoding/binary"
	"regexp"

	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/klv"
)

// Kind distinguishes the three Partition Pack roles SMPTE 377M defines.
type Kind int

const (
	Header Kind = iota
	Body
	Footer
)

var partitionKeyPattern = regexp.MustCompile(`^060e2b34020501010d01020101(0[2-4])(0[0-4])00$`)

// IsPartitionKey reports whether key matches the Partition Pack key
// family (any of Header/Body/Footer, any openness/completeness byte).
func IsPartitionKey(key klv.UL) bool {
	return partitionKeyPattern.MatchString(key.String())
}

// IsFillKey reports whether key is one of the two KLV Fill item labels
// used to pad a partition to its KAG boundary.
func IsFillKey(key klv.UL) bool {
	return key == FillKeyLong || key == FillKeyShort
}

var (
	FillKeyLong  = mustUL("060e2b34010101010201021001000000")
	FillKeyShort = mustUL("060e2b34010101010301021001000000")

	// RandomIndexPackKey is the fixed universal label the trailing
	// Random Index Pack carries.
	RandomIndexPackKey = mustUL("060e2b34020501010d01020101110100")
)

func mustUL(hexStr string) klv.UL {
	ul, err := klv.ULFromHex(hexStr)
	if err != nil {
		panic(err)
	}

	return ul
}

// Pack is a decoded Partition Pack: the fixed compound layout plus the
// trailing batch of essence-container labels.
type Pack struct {
	Key       klv.UL
	Pos       int64
	BytesNum  int
	Kind      Kind
	Open      bool
	Complete  bool

	MajorVersion      uint16
	MinorVersion      uint16
	KAGSize           uint32
	ThisPartition     uint64
	PreviousPartition uint64
	FooterPartition   uint64
	HeaderByteCount   uint64
	IndexByteCount    uint64
	IndexSID          uint32
	BodyOffset        uint64
	BodySID           uint32
	OperationalPattern klv.UL
	EssenceContainers  []klv.UL
}

const fixedCompoundLen = 2 + 2 + 4 + 8 + 8 + 8 + 8 + 8 + 4 + 8 + 4 + klv.KeySize

// Decode parses a Partition Pack's raw KLV value and validates the
// SMPTE 377M structural invariants.
func Decode(key klv.UL, pos int64, bytesNum int, value []byte) (*Pack, error) {
	if !IsPartitionKey(key) {
		return nil, errs.ErrBadPartition
	}
	if len(value) < fixedCompoundLen {
		return nil, errs.ErrTruncatedSet
	}

	p := &Pack{Key: key, Pos: pos, BytesNum: bytesNum}

	switch key[13] {
	case 0x02:
		p.Kind = Header
	case 0x03:
		p.Kind = Body
	case 0x04:
		p.Kind = Footer
	default:
		return nil, errs.ErrBadPartition
	}
	p.Open = key[14]&0xfe == 0
	p.Complete = key[14]&0xfd != 0

	off := 0
	readU16 := func() uint16 { v := binary.BigEndian.Uint16(value[off : off+2]); off += 2; return v }
	readU32 := func() uint32 { v := binary.BigEndian.Uint32(value[off : off+4]); off += 4; return v }
	readU64 := func() uint64 { v := binary.BigEndian.Uint64(value[off : off+8]); off += 8; return v }

	p.MajorVersion = readU16()
	p.MinorVersion = readU16()
	p.KAGSize = readU32()
	p.ThisPartition = readU64()
	p.PreviousPartition = readU64()
	p.FooterPartition = readU64()
	p.HeaderByteCount = readU64()
	p.IndexByteCount = readU64()
	p.IndexSID = readU32()
	p.BodyOffset = readU64()
	p.BodySID = readU32()
	copy(p.OperationalPattern[:], value[off:off+klv.KeySize])
	off += klv.KeySize

	ecs, err := decodeULBatch(value[off:])
	if err != nil {
		return nil, err
	}
	p.EssenceContainers = ecs

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func decodeULBatch(data []byte) ([]klv.UL, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 8 {
		return nil, errs.ErrInvalidFieldLength
	}

	count := binary.BigEndian.Uint32(data[0:4])
	itemSize := binary.BigEndian.Uint32(data[4:8])

	rest := data[8:]
	if uint64(count)*uint64(itemSize) != uint64(len(rest)) {
		return nil, errs.ErrInvalidFieldLength
	}

	out := make([]klv.UL, 0, count)
	for i := uint32(0); i < count; i++ {
		var ul klv.UL
		copy(ul[:], rest[uint64(i)*uint64(itemSize):])
		out = append(out, ul)
	}

	return out, nil
}

func encodeULBatch(uls []klv.UL) []byte {
	const itemSize = klv.KeySize

	out := make([]byte, 8, 8+len(uls)*itemSize)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(uls)))
	if len(uls) > 0 {
		binary.BigEndian.PutUint32(out[4:8], itemSize)
	}

	for _, ul := range uls {
		out = append(out, ul[:]...)
	}

	return out
}

func (p *Pack) validate() error {
	if p.MajorVersion != 1 {
		return errs.ErrBadPartition
	}
	if p.MinorVersion != 2 && p.MinorVersion != 3 {
		return errs.ErrBadPartition
	}

	if p.Kind == Header {
		if p.ThisPartition != 0 || p.PreviousPartition != 0 {
			return errs.ErrBadPartition
		}
	}

	if p.Kind == Footer && p.Open {
		return errs.ErrBadPartition
	}

	if len(p.EssenceContainers) == 0 && p.BodySID != 0 {
		return errs.ErrBadPartition
	}

	return nil
}

// Encode serializes the Pack back to its fixed compound layout plus
// essence container batch, ready to be framed by klv.WriteTriplet.
func (p *Pack) Encode() []byte {
	out := make([]byte, fixedCompoundLen)
	off := 0
	putU16 := func(v uint16) { binary.BigEndian.PutUint16(out[off:off+2], v); off += 2 }
	putU32 := func(v uint32) { binary.BigEndian.PutUint32(out[off:off+4], v); off += 4 }
	putU64 := func(v uint64) { binary.BigEndian.PutUint64(out[off:off+8], v); off += 8 }

	putU16(p.MajorVersion)
	putU16(p.MinorVersion)
	putU32(p.KAGSize)
	putU64(p.ThisPartition)
	putU64(p.PreviousPartition)
	putU64(p.FooterPartition)
	putU64(p.HeaderByteCount)
	putU64(p.IndexByteCount)
	putU32(p.IndexSID)
	putU64(p.BodyOffset)
	putU32(p.BodySID)
	copy(out[off:off+klv.KeySize], p.OperationalPattern[:])
	off += klv.KeySize

	out = append(out, encodeULBatch(p.EssenceContainers)...)

	return out
}
