// Package errs holds the sentinel errors returned by the mxf packages.
//
// Every fatal condition described by the SMPTE 377M structural checks is
// represented by one sentinel here. Call sites wrap it with fmt.Errorf and
// %w to attach positional context; callers branch on kind with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidBER is returned when a BER length prefix declares a byte
	// count outside 1..8, or is otherwise malformed.
	ErrInvalidBER = errors.New("mxf: invalid BER length encoding")

	// ErrNotMXF is returned when the partition-pack-label prefix cannot be
	// located within the run-in search window.
	ErrNotMXF = errors.New("mxf: not a valid SMPTE 377M byte stream")

	// ErrBadPartition is returned when a Partition Pack fails one of the
	// SMPTE 377M structural invariants (version, header zeros, open
	// footer, body SID vs essence containers).
	ErrBadPartition = errors.New("mxf: partition pack fails SMPTE 377M invariant")

	// ErrBadPrimerKey is returned when a KLV claiming to be a Primer Pack
	// does not carry the expected key.
	ErrBadPrimerKey = errors.New("mxf: key does not match Primer Pack")

	// ErrBadPrefaceKey is returned when a KLV claiming to be a Preface
	// does not carry the expected key.
	ErrBadPrefaceKey = errors.New("mxf: key does not match Preface")

	// ErrBadObjectDirectoryKey is returned when a KLV claiming to be an
	// Avid Object Directory does not carry the expected key.
	ErrBadObjectDirectoryKey = errors.New("mxf: key does not match Avid Object Directory")

	// ErrUnknownUL is recorded (not returned fatally) when a Primer maps a
	// local tag to a Universal Label absent from the RP 210 dictionary.
	ErrUnknownUL = errors.New("mxf: universal label not found in RP 210 dictionary")

	// ErrNoConverter is recorded (not returned fatally) when an RP 210
	// type string matches no registered codec.
	ErrNoConverter = errors.New("mxf: no codec for RP 210 type")

	// ErrTruncatedSet is returned when a DataSet's field walk does not
	// exactly consume its declared length.
	ErrTruncatedSet = errors.New("mxf: data set field walk did not exactly consume declared length")

	// ErrWriteEncodeFailure is returned when a codec refuses to encode a
	// value on the write path.
	ErrWriteEncodeFailure = errors.New("mxf: codec refused to encode value")

	// ErrUnknownLocalTag is returned when a Primer has no mapping for a
	// local tag presented for encode/decode.
	ErrUnknownLocalTag = errors.New("mxf: local tag not found in primer")

	// ErrInvalidVariantName is returned when an RP 210 dictionary variant
	// is registered under an empty name.
	ErrInvalidVariantName = errors.New("mxf: rp210 variant name must not be empty")

	// ErrVariantAlreadyRegistered is returned when the same variant name
	// is registered twice.
	ErrVariantAlreadyRegistered = errors.New("mxf: rp210 variant already registered")

	// ErrVariantHashCollision is returned when two distinct variant names
	// hash to the same registry key and cannot be disambiguated.
	ErrVariantHashCollision = errors.New("mxf: rp210 variant name hash collision")

	// ErrInvalidFieldLength is returned when a codec receives a byte
	// slice of the wrong size for its fixed-width wire layout.
	ErrInvalidFieldLength = errors.New("mxf: field has unexpected wire length")
)
