package rp210

import (
	"github.com/smartjog/go-mxf/internal/collision"
	"github.com/smartjog/go-mxf/internal/hash"
	"github.com/smartjog/go-mxf/klv"
)

// Variant names a named, independently buildable flavor of the RP 210
// dictionary (the base table, or the base table plus Avid-only ULs).
type Variant struct {
	name  string
	extra []map[klv.UL]Entry
}

// Build materializes the variant's Dictionary by layering its extra
// tables, in order, over the base dictionary.
func (v *Variant) Build() *Dictionary {
	merged := make(map[klv.UL]Entry, len(baseEntries)+len(extraEntries))
	for k, e := range baseEntries {
		merged[k] = e
	}
	for k, e := range extraEntries {
		merged[k] = e
	}
	for _, table := range v.extra {
		for k, e := range table {
			merged[k] = e
		}
	}

	return newDictionary(merged)
}

// registry is the process-wide set of named variants, guarded against
// accidental hash collisions between variant names the way codec
// selection is guarded against ambiguous type-string matches.
type registry struct {
	tracker  *collision.Tracker
	variants map[string]*Variant
}

func newRegistry() *registry {
	return &registry{
		tracker:  collision.NewTracker(),
		variants: make(map[string]*Variant),
	}
}

func (r *registry) register(v *Variant) error {
	if err := r.tracker.Track(v.name, hash.ID(v.name)); err != nil {
		return err
	}
	r.variants[v.name] = v

	return nil
}

var defaultRegistry = newRegistry()

// Standard is the base RP 210 dictionary: the published table plus the
// synthetic AAF short-tag entries every Primer Pack implicitly needs.
var Standard = &Variant{name: "standard"}

// Avid layers Avid-only ULs (never present in the published dictionary)
// over Standard, matching the original Avid-aware parser's behavior.
var Avid = &Variant{name: "avid", extra: []map[klv.UL]Entry{avidEntries}}

func init() {
	for _, v := range []*Variant{Standard, Avid} {
		if err := defaultRegistry.register(v); err != nil {
			panic(err)
		}
	}
}

// Lookup returns a previously registered variant by name.
func Lookup(name string) (*Variant, bool) {
	v, ok := defaultRegistry.variants[name]
	return v, ok
}

// Layer returns a new Dictionary holding base's entries with extra's
// entries applied on top, without registering a named Variant. This
// serves the per-dataset-type dictionaries Avid sub-parsers each need:
// the same synthetic local tag can carry a different type from one
// dataset type to the next (e.g. local tag 0003 is a
// StrongReferenceArray on an AvidAAFDefinition but an AvidOffset on the
// Avid metadata pseudo-Preface), so each gets its own layered view
// rather than sharing one registered variant.
func Layer(base *Dictionary, extra map[klv.UL]Entry) *Dictionary {
	merged := make(map[klv.UL]Entry, base.Len()+len(extra))
	for k, e := range base.entries {
		merged[k] = e
	}
	for k, e := range extra {
		merged[k] = e
	}

	return newDictionary(merged)
}
