package feature

import (
	"strconv"
	"strings"

	"github.com/ricat/ricat/internal/io/line"
)

// LineNumber prefixes every emitted line with its position in the output.
type LineNumber struct{}

// Name of the feature.
func (LineNumber) Name() string { return "line-number" }

// Apply prefixes "<n> ". The number counts lines reaching this feature, so
// it must be the last feature of the pipeline to number the visible output.
func (LineNumber) Apply(l line.Line, st *State) (line.Line, Result, error) {
	st.Numbered++
	buf := make([]byte, 0, len(l.Content)+8)
	buf = strconv.AppendUint(buf, st.Numbered, 10)
	buf = append(buf, ' ')
	buf = append(buf, l.Content...)
	return l.With(string(buf)), Transformed, nil
}

// DollarSignSuffix marks the end of every line with '$'.
type DollarSignSuffix struct{}

// Name of the feature.
func (DollarSignSuffix) Name() string { return "dollar-sign" }

// Apply appends '$'.
func (DollarSignSuffix) Apply(l line.Line, _ *State) (line.Line, Result, error) {
	return l.With(l.Content + "$"), Transformed, nil
}

// TabExpand makes tabs visible as "^I".
type TabExpand struct{}

// Name of the feature.
func (TabExpand) Name() string { return "tab-expand" }

// Apply replaces every tab. Other whitespace is left alone.
func (TabExpand) Apply(l line.Line, _ *State) (line.Line, Result, error) {
	if !strings.Contains(l.Content, "\t") {
		return l, Unchanged, nil
	}
	return l.With(strings.ReplaceAll(l.Content, "\t", "^I")), Transformed, nil
}

// EmptyLineCompress squeezes runs of empty lines into one.
type EmptyLineCompress struct{}

// Name of the feature.
func (EmptyLineCompress) Name() string { return "compress-empty-lines" }

// Apply drops an empty line directly following another emitted empty line.
// Nothing after this feature may drop lines, otherwise the state would lie.
func (EmptyLineCompress) Apply(l line.Line, st *State) (line.Line, Result, error) {
	blank := l.Blank()
	if blank && st.PrevEmittedBlank {
		return l, Dropped, nil
	}
	st.PrevEmittedBlank = blank
	return l, Unchanged, nil
}
