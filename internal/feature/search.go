package feature

import (
	"github.com/ricat/ricat/internal/io/line"
	"github.com/ricat/ricat/internal/regex"
)

// Search keeps only lines matching a pattern. The matcher is compiled once
// by NewSearch.
type Search struct {
	re regex.Regex
}

// NewSearch compiles the search text. A "reg:" prefix selects a regular
// expression, anything else is matched literally.
func NewSearch(text string, ignoreCase bool) (*Search, error) {
	flag := regex.Default
	if ignoreCase {
		flag = regex.IgnoreCase
	}
	re, err := regex.New(text, flag)
	if err != nil {
		return nil, err
	}
	return &Search{re: re}, nil
}

// Name of the feature.
func (s *Search) Name() string { return "search" }

// Apply drops lines not matching.
func (s *Search) Apply(l line.Line, _ *State) (line.Line, Result, error) {
	if !s.re.MatchString(l.Content) {
		return l, Dropped, nil
	}
	return l, Unchanged, nil
}

// Regex returns the compiled matcher.
func (s *Search) Regex() regex.Regex {
	return s.re
}
