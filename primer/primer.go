// Package primer implements the Primer Pack: the per-file table mapping
// a 2-byte local tag to the 16-byte universal label RP 210 dictionaries
// key their type information by.
package primer

import (
	"encoding/binary"

	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/rp210"
)

// PrimerPackKey is the fixed universal label every Primer Pack KLV
// carries (SMPTE 377M §8).
var PrimerPackKey = klv.UL{0x06, 0x0e, 0x2b, 0x34, 0x02, 0x05, 0x01, 0x01, 0x0d, 0x01, 0x02, 0x01, 0x01, 0x05, 0x01, 0x00}

// Warning is a recorded non-fatal condition: an unknown local tag or UL
// encountered during decode, recorded rather than treated as fatal so
// the rest of the file can still be read.
type Warning struct {
	Tag     uint16
	Message string
}

// Primer holds the ordered local-tag to UL table for one file, and the
// RP 210 dictionary it was built against.
type Primer struct {
	order    []uint16
	mappings map[uint16]klv.UL
	dict     *rp210.Dictionary
	warnings []Warning
}

// New constructs an empty Primer against dict, ready to receive entries
// via Decode or Inject.
func New(dict *rp210.Dictionary) *Primer {
	return &Primer{mappings: make(map[uint16]klv.UL), dict: dict}
}

// Decode parses a Primer Pack's raw KLV value: a UInt32 count, a UInt32
// item size, then count records of (2-byte tag, 16-byte UL).
func Decode(dict *rp210.Dictionary, data []byte) (*Primer, error) {
	if len(data) < 8 {
		return nil, errs.ErrInvalidFieldLength
	}

	count := binary.BigEndian.Uint32(data[0:4])
	itemSize := binary.BigEndian.Uint32(data[4:8])

	p := New(dict)
	idx := 8
	for i := uint32(0); i < count; i++ {
		if idx+int(itemSize) > len(data) {
			return nil, errs.ErrTruncatedSet
		}

		tag := binary.BigEndian.Uint16(data[idx : idx+2])
		var ul klv.UL
		copy(ul[:], data[idx+2:idx+int(itemSize)])

		p.set(tag, ul)
		idx += int(itemSize)
	}

	return p, nil
}

func (p *Primer) set(tag uint16, ul klv.UL) {
	if _, exists := p.mappings[tag]; !exists {
		p.order = append(p.order, tag)
	}
	p.mappings[tag] = ul
}

// Encode serializes the Primer back to its wire form, preserving
// insertion order.
func (p *Primer) Encode() []byte {
	const itemSize = 2 + klv.KeySize

	out := make([]byte, 8, 8+len(p.order)*itemSize)
	binary.BigEndian.PutUint32(out[0:4], uint32(len(p.order)))
	binary.BigEndian.PutUint32(out[4:8], itemSize)

	for _, tag := range p.order {
		var rec [itemSize]byte
		binary.BigEndian.PutUint16(rec[0:2], tag)
		ul := p.mappings[tag]
		copy(rec[2:], ul[:])
		out = append(out, rec[:]...)
	}

	return out
}

// Lookup resolves a local tag to its UL.
func (p *Primer) Lookup(tag uint16) (klv.UL, bool) {
	ul, ok := p.mappings[tag]
	return ul, ok
}

// Inject adds extra local-tag to UL mappings, used by Avid sub-parsers
// that require the private short-tag shortcuts `0001..0004`.
func (p *Primer) Inject(mappings map[uint16]klv.UL) {
	for tag, ul := range mappings {
		p.set(tag, ul)
	}
}

// Customize creates an independent Primer layered on dict, copying the
// receiver's current mappings and then applying extra, matching the
// specification's copy-on-write semantics for Avid sub-contexts.
func (p *Primer) Customize(dict *rp210.Dictionary, extra map[uint16]klv.UL) *Primer {
	clone := New(dict)
	clone.order = append([]uint16(nil), p.order...)
	clone.mappings = make(map[uint16]klv.UL, len(p.mappings))
	for k, v := range p.mappings {
		clone.mappings[k] = v
	}

	clone.Inject(extra)

	return clone
}

// Warnings returns the non-fatal conditions recorded by Decode-path
// field lookups since the Primer was built.
func (p *Primer) Warnings() []Warning {
	return p.warnings
}

func (p *Primer) warn(tag uint16, msg string) {
	p.warnings = append(p.warnings, Warning{Tag: tag, Message: msg})
}

// CustomEncodingCount reports how many of the Primer's local tags map
// to a UL that does not start with the SMPTE root prefix 060e2b34.
func (p *Primer) CustomEncodingCount() int {
	n := 0
	for _, tag := range p.order {
		ul := p.mappings[tag]
		if ul[0] != 0x06 || ul[1] != 0x0e || ul[2] != 0x2b || ul[3] != 0x34 {
			n++
		}
	}

	return n
}
