// Package klv implements the Key-Length-Value framing layer shared by
// every structural element of an MXF file (SMPTE 377M §6). It knows how
// to peek a 16-byte key without consuming it, open a triplet (leaving the
// stream cursor at the start of the value), and skip or relocate a
// triplet's value. It has no opinion about what a key or a value means;
// that belongs to the partition, primer, and dataset packages built on
// top of it.
package klv

import (
	"encoding/hex"
	"io"

	"github.com/smartjog/go-mxf/ber"
	"github.com/smartjog/go-mxf/errs"
)

// KeySize is the fixed width of every MXF Universal Label.
const KeySize = 16

// UL is a 16-byte Universal Label (also used to carry Instance
// Identifiers and other fixed-size references before they are
// reinterpreted by a type codec).
type UL [KeySize]byte

// String renders the UL as lowercase hex, matching the normalized form
// used by the RP 210 dictionary.
func (u UL) String() string {
	return hex.EncodeToString(u[:])
}

// IsZero reports whether every byte of the UL is zero.
func (u UL) IsZero() bool {
	return u == UL{}
}

// ULFromHex parses a 32-character hex string into a UL, used to build
// dictionary tables from the literal key strings the RP 210 spreadsheet
// and Avid sub-parsers are documented with.
func ULFromHex(s string) (UL, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return UL{}, err
	}
	if len(b) != KeySize {
		return UL{}, errs.ErrInvalidFieldLength
	}

	var u UL
	copy(u[:], b)

	return u, nil
}

// SMPTE administrator byte and category byte, SMPTE 377M §3 classification.
const (
	AdministratorByte = 4 // key[4]: 0x02 identifies a set/pack
	CategoryByte      = 5 // key[5]: 0x53 identifies local-set syntax

	CategorySetOrPack = 0x02
	CategoryLocalSet  = 0x53
)

// Triplet is a decoded Key-Length-Value framing header: the key, the
// declared value length, the number of bytes the BER length prefix
// consumed, and the file offset of the key byte itself.
type Triplet struct {
	Key      UL
	Length   uint64
	BytesNum int
	Pos      int64
}

// PeekKey reads the next 16 bytes from r as a UL and rewinds the cursor,
// leaving the stream position unchanged.
func PeekKey(r io.ReadSeeker) (UL, error) {
	var key UL
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return UL{}, err
	}
	if _, err := r.Seek(-KeySize, io.SeekCurrent); err != nil {
		return UL{}, err
	}

	return key, nil
}

// OpenKLV reads a key and BER length from r, leaving the cursor at the
// start of the value. The returned Triplet's Pos is the offset of the
// key byte.
func OpenKLV(r io.ReadSeeker) (Triplet, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return Triplet{}, err
	}

	var key UL
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return Triplet{}, err
	}

	// BER length prefixes are at most 9 bytes (1 marker + 8 value bytes).
	var lenBuf [9]byte
	if _, err := io.ReadFull(r, lenBuf[:1]); err != nil {
		return Triplet{}, err
	}

	first := lenBuf[0]
	extra := 0
	if first&0x80 != 0 {
		extra = int(first & 0x7f)
	}

	if extra > 0 {
		if _, err := io.ReadFull(r, lenBuf[1:1+extra]); err != nil {
			return Triplet{}, err
		}
	}

	length, consumed, err := ber.Decode(lenBuf[:1+extra])
	if err != nil {
		return Triplet{}, err
	}

	return Triplet{Key: key, Length: length, BytesNum: consumed, Pos: pos}, nil
}

// Skip advances the cursor past a triplet's value without reading it,
// used for dark or fill KLVs whose payload the caller doesn't need.
func Skip(r io.ReadSeeker, t Triplet) error {
	_, err := r.Seek(int64(t.Length), io.SeekCurrent)
	return err
}

// ReadValue reads exactly t.Length bytes from r, the triplet's value.
func ReadValue(r io.Reader, t Triplet) ([]byte, error) {
	buf := make([]byte, t.Length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// WriteTriplet writes key, a BER length (long form, 8 value bytes,
// matching the original parser's convention for top-level KLVs), and
// value to w, and returns the file offset the key was written at.
func WriteTriplet(w io.WriteSeeker, key UL, value []byte) (pos int64, err error) {
	pos, err = w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	lenBytes, err := ber.Encode(uint64(len(value)), 8, true)
	if err != nil {
		return 0, err
	}

	if _, err := w.Write(key[:]); err != nil {
		return 0, err
	}
	if _, err := w.Write(lenBytes); err != nil {
		return 0, err
	}
	if _, err := w.Write(value); err != nil {
		return 0, err
	}

	return pos, nil
}
