package codec

import (
	"regexp"
	"strconv"
)

var referenceKinds = []ReferenceKind{
	KindStrongReference,
	KindWeakReference,
	KindAUID,
	KindUMID,
	KindUL,
	KindUUID,
	KindPackageID,
}

func referenceKindFor(typeString string) ReferenceKind {
	for _, k := range referenceKinds {
		if regexp.MustCompile(`^` + string(k) + `$`).MatchString(typeString) {
			return k
		}
	}

	return KindReference
}

var (
	// Anchored to the full type string: "StrongReferenceArray" is an
	// Array of references, not a bare Reference, so it must not match
	// here — it's picked up later by reArrayRef instead.
	reReference = regexp.MustCompile(`^(StrongReference|WeakReference|AUID|UMID|UL|UUID|PackageID)$|As per ISO 11578|Primary Package`)
	reVersion   = regexp.MustCompile(`ProductVersion|VersionType`)
	reInteger   = regexp.MustCompile(`U?Int(8|16|32|64)`)
	reBoolean   = regexp.MustCompile(`Boolean`)
	reTimeStamp = regexp.MustCompile(`TimeStamp`)
	reString    = regexp.MustCompile(`16 bit Unicode String$|UTF-16 char string`)
	reRational  = regexp.MustCompile(`Rational`)
	reLength    = regexp.MustCompile(`Length|Position`)
	reXID       = regexp.MustCompile(`TrackID`)

	reArrayRef     = regexp.MustCompile(`(Strong|Weak|AUID)(Reference)?Array`)
	reArrayBatchOf = regexp.MustCompile(`^Batch of (.+)$`)
	reArrayTBatch  = regexp.MustCompile(`^(.+) Batch$`)
	reArray2Elem   = regexp.MustCompile(`^2 element array of (.+)$`)

	reVarArrayStrings = regexp.MustCompile(`16 bit Unicode String Array`)
	reVarArrayInts    = regexp.MustCompile(`^Array of (U?Int(8|16|32|64))$`)

	reAvidOffset  = regexp.MustCompile(`^AvidOffset$`)
	reAvidVersion = regexp.MustCompile(`^AvidVersion$`)
)

// Select resolves a codec for an RP 210 type string by walking a fixed,
// ordered table of capability patterns; the first match wins. Composite
// forms (Array,
// VariableArray, Batch) are tested ahead of the scalar codecs they
// embed by name — e.g. "Array of UInt16" must resolve to VariableArray,
// not Integer, even though it contains "UInt16" as a substring.
func Select(typeString string) (Codec, bool) {
	switch {
	case reReference.MatchString(typeString):
		return NewReferenceCodec(referenceKindFor(typeString)), true

	case reVersion.MatchString(typeString):
		return productVersionCodec(typeString), true

	case reArrayRef.MatchString(typeString):
		m := reArrayRef.FindStringSubmatch(typeString)
		kind := referenceKindFor(m[1] + m[2])
		return NewArrayCodec(NewReferenceCodec(kind)), true

	case reArrayBatchOf.MatchString(typeString):
		m := reArrayBatchOf.FindStringSubmatch(typeString)
		item, ok := Select(m[1])
		if !ok {
			return nil, false
		}
		return NewArrayCodec(item), true

	case reArrayTBatch.MatchString(typeString):
		m := reArrayTBatch.FindStringSubmatch(typeString)
		item, ok := Select(m[1])
		if !ok {
			return nil, false
		}
		return NewArrayCodec(item), true

	case reArray2Elem.MatchString(typeString):
		m := reArray2Elem.FindStringSubmatch(typeString)
		item, ok := Select(m[1])
		if !ok {
			return nil, false
		}
		return NewArrayCodec(item), true

	case reVarArrayStrings.MatchString(typeString):
		return NewVariableArrayCodec(VariableArrayStrings, 0), true

	case reVarArrayInts.MatchString(typeString):
		m := reVarArrayInts.FindStringSubmatch(typeString)
		return NewVariableArrayCodec(VariableArrayIntegers, bitsToBytes(m[2])), true

	case reInteger.MatchString(typeString):
		m := reInteger.FindStringSubmatch(typeString)
		return NewIntegerCodec(bitsToBytes(m[1])), true

	case reBoolean.MatchString(typeString):
		return &BooleanCodec{}, true

	case reTimeStamp.MatchString(typeString):
		return &TimeStampCodec{}, true

	case reString.MatchString(typeString):
		return &StringCodec{}, true

	case reRational.MatchString(typeString):
		return &RationalCodec{}, true

	case reLength.MatchString(typeString):
		return &LengthCodec{}, true

	case reXID.MatchString(typeString):
		return &XIDCodec{}, true

	case reAvidOffset.MatchString(typeString):
		return &AvidOffsetCodec{}, true

	case reAvidVersion.MatchString(typeString):
		return NewVersionCodec(AvidVersionSchema), true

	default:
		return nil, false
	}
}

func productVersionCodec(typeString string) Codec {
	if typeString == versionTypeName {
		return NewVersionCodec(VersionTypeSchema)
	}

	return NewVersionCodec(ProductVersionSchema)
}

// versionTypeName is the exact RP 210 type string that picks the
// 2-field VersionType schema rather than the 5-field ProductVersion one.
const versionTypeName = "VersionType"

func bitsToBytes(bits string) int {
	n, err := strconv.Atoi(bits)
	if err != nil {
		return 0
	}

	return n / 8
}
