package feature

import (
	"encoding/base64"
	"unicode/utf8"

	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/line"
)

// Base64Encode replaces every line by its standard Base64 encoding.
type Base64Encode struct{}

// Name of the feature.
func (Base64Encode) Name() string { return "base64-encode" }

// Apply encodes the line.
func (Base64Encode) Apply(l line.Line, _ *State) (line.Line, Result, error) {
	return l.With(base64.StdEncoding.EncodeToString([]byte(l.Content))), Transformed, nil
}

// Base64Decode replaces every line by the text it encodes.
type Base64Decode struct{}

// Name of the feature.
func (Base64Decode) Name() string { return "base64-decode" }

// Apply decodes the line. Input which is not padded standard Base64, or
// which does not decode to UTF-8 text, fails with errors.ErrDecode.
func (Base64Decode) Apply(l line.Line, _ *State) (line.Line, Result, error) {
	decoded, err := base64.StdEncoding.DecodeString(l.Content)
	if err != nil {
		return l, Unchanged, errors.Wrapf(errors.Classify(errors.ErrDecode, err),
			"%s line %d", l.SourceID, l.Ordinal)
	}
	if !utf8.Valid(decoded) {
		return l, Unchanged, errors.Wrapf(errors.Classify(errors.ErrDecode,
			errors.New("decoded data is not UTF-8 text")), "%s line %d", l.SourceID, l.Ordinal)
	}
	return l.With(string(decoded)), Transformed, nil
}
