// Package collision guards the RP 210 dictionary variant registry against
// xxHash64 collisions between variant names (see internal/hash). The
// registry is tiny and process-wide (a handful of Avid sub-dictionary
// variants), so a collision is a configuration bug, not a data-path
// concern; the tracker exists to fail loudly instead of silently serving
// the wrong variant.
package collision

import (
	"github.com/smartjog/go-mxf/errs"
)

// Tracker tracks registered variant names and detects hash collisions.
type Tracker struct {
	names        map[uint64]string
	namesList    []string
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:     make(map[uint64]string),
		namesList: make([]string, 0),
	}
}

// Track registers name under hash. Returns ErrInvalidVariantName for an
// empty name, ErrVariantAlreadyRegistered if the exact name was already
// registered, or ErrVariantHashCollision if a different name already owns
// this hash.
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidVariantName
	}

	if existing, ok := t.names[hash]; ok {
		if existing == name {
			return errs.ErrVariantAlreadyRegistered
		}
		t.hasCollision = true
		return errs.ErrVariantHashCollision
	}

	t.names[hash] = name
	t.namesList = append(t.namesList, name)

	return nil
}

// HasCollision returns true if a collision has ever been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the registered variant names in registration order.
func (t *Tracker) Names() []string {
	return t.namesList
}

// Count returns the number of registered variants.
func (t *Tracker) Count() int {
	return len(t.namesList)
}
