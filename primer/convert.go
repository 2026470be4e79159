package primer

import (
	"github.com/smartjog/go-mxf/codec"
	"github.com/smartjog/go-mxf/errs"
)

// DecodeFromLocalTag resolves tag through the Primer to a UL, then the
// UL through the RP 210 dictionary to a type string, then the type
// string through codec.Select to a Codec, and finally decodes value.
//
// On an unknown tag, or a UL absent from the dictionary, or a type
// string no codec claims, this records a Warning and returns the raw
// bytes as a codec.Value of KindRawValue rather than failing.
func (p *Primer) DecodeFromLocalTag(tag uint16, value []byte) (codec.Value, error) {
	ul, ok := p.Lookup(tag)
	if !ok {
		p.warn(tag, errs.ErrUnknownLocalTag.Error())
		return codec.Value{Kind: codec.KindRawValue, Raw: value}, nil
	}

	entry, ok := p.dict.Lookup(ul)
	if !ok {
		p.warn(tag, errs.ErrUnknownUL.Error())
		return codec.Value{Kind: codec.KindRawValue, Raw: value}, nil
	}

	c, ok := codec.Select(entry.Type)
	if !ok {
		p.warn(tag, errs.ErrNoConverter.Error())
		return codec.Value{Kind: codec.KindRawValue, Raw: value}, nil
	}

	return c.Decode(value)
}

// EncodeFromLocalTag is the write-side mirror of DecodeFromLocalTag: it
// resolves tag the same way, then asks the matching codec to encode v.
// A KindRawValue passes through unchanged, matching how an unresolved
// field came to exist in the first place.
func (p *Primer) EncodeFromLocalTag(tag uint16, v codec.Value) ([]byte, error) {
	if v.Kind == codec.KindRawValue {
		return v.Raw, nil
	}

	ul, ok := p.Lookup(tag)
	if !ok {
		return nil, errs.ErrUnknownLocalTag
	}

	entry, ok := p.dict.Lookup(ul)
	if !ok {
		return nil, errs.ErrUnknownUL
	}

	c, ok := codec.Select(entry.Type)
	if !ok {
		return nil, errs.ErrNoConverter
	}

	return c.Encode(v)
}

// ElementName returns the RP 210 element name for tag, if both the tag
// and its mapped UL are known.
func (p *Primer) ElementName(tag uint16) (string, bool) {
	ul, ok := p.Lookup(tag)
	if !ok {
		return "", false
	}

	entry, ok := p.dict.Lookup(ul)
	if !ok {
		return "", false
	}

	return entry.Name, true
}

// TagForName is the reverse of ElementName: it scans the Primer's
// mappings for a local tag whose RP 210 element name matches name.
func (p *Primer) TagForName(name string) (uint16, bool) {
	for _, tag := range p.order {
		if n, ok := p.ElementName(tag); ok && n == name {
			return tag, true
		}
	}

	return 0, false
}
