// Package codec implements the RP 210 type conversion engine: one codec
// per type family (Reference, Integer, Boolean, Rational, Length,
// TimeStamp, Version, String, Array, VariableArray, plus the Avid
// extensions), each exposing a symmetric Decode/Encode pair over raw KLV
// value bytes.
//
// Dispatch is a closed sum type, not attribute probing: Select walks a
// fixed, ordered table of (pattern, Codec) and returns the first match,
// RP 210's own documented type-string precedence.
package codec

import "fmt"

// ReferenceKind distinguishes the sub-kinds of 16-byte Reference values.
type ReferenceKind string

const (
	KindStrongReference ReferenceKind = "StrongReference"
	KindWeakReference   ReferenceKind = "WeakReference"
	KindAUID            ReferenceKind = "AUID"
	KindUMID            ReferenceKind = "UMID"
	KindUL              ReferenceKind = "UL"
	KindUUID            ReferenceKind = "UUID"
	KindPackageID       ReferenceKind = "PackageID"
	KindReference       ReferenceKind = "Reference"
)

// Value is the closed sum type produced by every codec's Decode and
// consumed by every codec's Encode. Exactly one accessor is meaningful
// per Kind; the zero Value is the empty string/number, never a sentinel
// for "absent".
type Value struct {
	Kind Kind

	Ref       [16]byte
	RefKind   ReferenceKind
	Uint      uint64
	Int       int64
	Bool      bool
	RatNum    uint32
	RatDen    uint32
	Text      Text
	Time      TimeStamp
	VersionOf []uint64
	List      []Value
	Raw       []byte
}

// Kind tags which field of Value is populated.
type Kind int

const (
	KindUnknown Kind = iota
	KindReferenceValue
	KindUintValue
	KindIntValue
	KindBoolValue
	KindRationalValue
	KindTextValue
	KindTimeValue
	KindVersionValue
	KindListValue
	KindRawValue
)

// TextKind distinguishes a clean UTF-16 decode from the Avid escape forms
// the original parser falls back to when UTF-16 decoding fails.
type TextKind int

const (
	TextUnicode TextKind = iota
	TextAvidU16
	TextAvidInt32
	TextAvidUnknown
)

// Text is the String codec's value shape: a plain decoded string, or one
// of the Avid escape forms, kept as a closed sum so Write is a total
// function (Design Notes §9, "String codec ambiguity").
type Text struct {
	Kind TextKind
	Str  string // TextUnicode, TextAvidU16: the decoded text
	Int  int64  // TextAvidInt32: the decoded duration
	// Raw carries the undecodable payload for TextAvidUnknown, which
	// cannot be re-encoded (matches the original's "Cannot encode").
	RawType  []byte
	RawValue []byte
}

// TimeStamp is nil-able: the all-zero wire encoding means "unknown",
// per SMPTE 377M.
type TimeStamp struct {
	Valid      bool
	Year       int16
	Month      uint8
	Day        uint8
	Hour       uint8
	Minute     uint8
	Second     uint8
	Nanosecond int
}

// Codec implements a symmetric read/write pair for one RP 210 type family.
type Codec interface {
	Decode(data []byte) (Value, error)
	Encode(v Value) ([]byte, error)
}

func errEncodeKind(codecName string, v Value) error {
	return fmt.Errorf("codec %s: cannot encode value of kind %d", codecName, v.Kind)
}
