// Package feature contains the line transforms of ricat. Every transform
// implements Feature and is applied to one line at a time. Transforms which
// need memory across lines keep it in the State owned by the pipeline.
package feature

import (
	"github.com/ricat/ricat/internal/io/line"
)

// Result tells the pipeline what a feature did with a line.
type Result int

// Possible results.
const (
	// Unchanged means the line passes as it was.
	Unchanged Result = iota
	// Transformed means the returned line carries new content.
	Transformed
	// Dropped means the line must not reach the output.
	Dropped
)

func (r Result) String() string {
	switch r {
	case Unchanged:
		return "unchanged"
	case Transformed:
		return "transformed"
	case Dropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// State is carried across line boundaries. It belongs to exactly one
// pipeline run.
type State struct {
	// PrevEmittedBlank is true if the last line which reached the output was empty.
	PrevEmittedBlank bool
	// Numbered counts the lines numbered so far.
	Numbered uint64
}

// Feature is a single line transform.
type Feature interface {
	// Name identifies the feature in logs.
	Name() string
	// Apply transforms the line. Only decoding features return an error.
	Apply(l line.Line, st *State) (line.Line, Result, error)
}
