// Package rp210 implements the SMPTE RP 210 metadata dictionary: an
// immutable universal-label to (type name, element name, definition)
// table, plus the synthetic entries MXF files from Avid require but
// never declare in their own Primer Pack.
package rp210

import "github.com/smartjog/go-mxf/klv"

// Entry is one row of the dictionary: the RP 210 type string used by
// codec.Select, a flattened element name, and a human-readable
// definition (often empty for the synthetic entries).
type Entry struct {
	Type       string
	Name       string
	Definition string
}

// Dictionary is an immutable UL-keyed RP 210 table. The zero value is
// not usable; construct one with New or a Variant's Build method.
type Dictionary struct {
	entries map[klv.UL]Entry
}

func newDictionary(entries map[klv.UL]Entry) *Dictionary {
	return &Dictionary{entries: entries}
}

// Lookup returns the entry registered for ul, if any.
func (d *Dictionary) Lookup(ul klv.UL) (Entry, bool) {
	e, ok := d.entries[ul]
	return e, ok
}

// Len reports how many ULs the dictionary carries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}
