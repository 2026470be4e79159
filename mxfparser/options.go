package mxfparser

import (
	"github.com/smartjog/go-mxf/errs"
	"github.com/smartjog/go-mxf/internal/options"
	"github.com/smartjog/go-mxf/rp210"
)

// config holds the tunables Read accepts: which RP 210 dictionary to
// decode the header Primer Pack against, and whether an unresolved
// local tag or UL should fail the read outright instead of being
// recorded as a warning and passed through as raw bytes.
type config struct {
	dict   *rp210.Dictionary
	strict bool
}

// Option configures a Read call, mirroring the ambient functional-option
// pattern used throughout this module.
type Option = options.Option[*config]

// WithDictionary overrides the RP 210 dictionary the header Primer
// Pack is decoded against. Default is rp210.Standard.
func WithDictionary(dict *rp210.Dictionary) Option {
	return options.NoError[*config](func(c *config) { c.dict = dict })
}

// WithStrict promotes any unresolved local tag or UL encountered while
// decoding the header Primer into a fatal error instead of a recorded
// warning, for tooling that wants to reject files RP 210 can't fully
// explain rather than silently pass their fields through as raw bytes.
func WithStrict() Option {
	return options.NoError[*config](func(c *config) { c.strict = true })
}

func newConfig(opts ...Option) (*config, error) {
	c := &config{dict: rp210.Standard.Build()}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *config) checkStrict(f *File) error {
	if !c.strict {
		return nil
	}
	if f.HeaderPrimer != nil && len(f.HeaderPrimer.Warnings()) > 0 {
		return errs.ErrUnknownUL
	}

	return nil
}
