// Package mxfparser implements the top-level operational-pattern
// driver: run-in detection, the header/body/footer partition walk with
// its per-key dispatch table, and the byte-exact write-back path with
// its partition back-patches.
package mxfparser

import (
	"github.com/smartjog/go-mxf/avid"
	"github.com/smartjog/go-mxf/dataset"
	"github.com/smartjog/go-mxf/klv"
	"github.com/smartjog/go-mxf/primer"
)

// ElementKind discriminates the concrete payload an Element carries.
type ElementKind int

const (
	KindFill ElementKind = iota
	KindPrimer
	KindDataSet
	KindObjectDirectory
	KindDark
)

// Element is one top-level KLV item read from a partition's metadata
// region, kept in file order so Write can reproduce the stream exactly.
type Element struct {
	Kind ElementKind
	Key  klv.UL
	Pos  int64

	Set    *dataset.DataSet
	OD     *avid.ObjectDirectory
	Primer *primer.Primer

	// Raw carries the undecoded value for Fill and Dark elements.
	Raw []byte
}

// Encode returns the element's wire-form value (excluding its own KLV
// key/length framing). It is called at write time so in-memory edits
// to a Set, OD, or Primer made between Read and Write are reflected.
func (e *Element) Encode() ([]byte, error) {
	switch e.Kind {
	case KindDataSet:
		return e.Set.Encode()
	case KindObjectDirectory:
		return e.OD.Encode(), nil
	case KindPrimer:
		return e.Primer.Encode(), nil
	default:
		return e.Raw, nil
	}
}
