package feature

import (
	"github.com/ricat/ricat/internal/errors"
)

// Config selects the enabled features. It is built once before any input is
// read and never changed afterwards.
type Config struct {
	LineNumbers   bool
	DollarSign    bool
	TabExpand     bool
	CompressEmpty bool

	Search     bool
	SearchText string
	IgnoreCase bool

	Encode bool
	Decode bool
}

// Encoding returns true if Base64 encoding or decoding is requested.
func (c Config) Encoding() bool {
	return c.Encode || c.Decode
}

// Validate reports mutually exclusive features.
func (c Config) Validate() error {
	if c.Encode && c.Decode {
		return errors.Wrap(errors.ErrConfigConflict,
			"--encode-base64 and --decode-base64 can not be combined")
	}
	if c.Encoding() && c.Search {
		return errors.Wrap(errors.ErrConfigConflict,
			"--search can not be combined with Base64 encoding or decoding")
	}
	return nil
}

// Ignored lists the names of enabled features which have no effect because
// an encoding feature replaces the whole pipeline.
func (c Config) Ignored() []string {
	if !c.Encoding() {
		return nil
	}
	var ignored []string
	if c.CompressEmpty {
		ignored = append(ignored, EmptyLineCompress{}.Name())
	}
	if c.TabExpand {
		ignored = append(ignored, TabExpand{}.Name())
	}
	if c.DollarSign {
		ignored = append(ignored, DollarSignSuffix{}.Name())
	}
	if c.LineNumbers {
		ignored = append(ignored, LineNumber{}.Name())
	}
	return ignored
}

// Build validates the configuration and returns the enabled features in
// their fixed application order: content filters first, structural edits
// next, decorations last. An encoding feature is always alone.
func Build(c Config) ([]Feature, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch {
	case c.Encode:
		return []Feature{Base64Encode{}}, nil
	case c.Decode:
		return []Feature{Base64Decode{}}, nil
	}

	var features []Feature
	if c.Search {
		search, err := NewSearch(c.SearchText, c.IgnoreCase)
		if err != nil {
			return nil, err
		}
		features = append(features, search)
	}
	if c.CompressEmpty {
		features = append(features, EmptyLineCompress{})
	}
	if c.TabExpand {
		features = append(features, TabExpand{})
	}
	if c.DollarSign {
		features = append(features, DollarSignSuffix{})
	}
	if c.LineNumbers {
		features = append(features, LineNumber{})
	}
	return features, nil
}
