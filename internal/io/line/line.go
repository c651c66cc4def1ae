package line

import "fmt"

// Line is one line of input with its terminator stripped.
type Line struct {
	// Content is the text of the line without the trailing newline.
	Content string
	// Ordinal is the 1-based position within the concatenated input.
	Ordinal uint64
	// SourceID identifies the file (or standard input) the line came from.
	SourceID string
}

// New returns a line.
func New(content string, ordinal uint64, sourceID string) Line {
	return Line{Content: content, Ordinal: ordinal, SourceID: sourceID}
}

// With returns a copy of the line carrying new content.
func (l Line) With(content string) Line {
	l.Content = content
	return l
}

// Blank returns true if the line has no content.
func (l Line) Blank() bool {
	return len(l.Content) == 0
}

func (l Line) String() string {
	return fmt.Sprintf("Line(%s:%d,%q)", l.SourceID, l.Ordinal, l.Content)
}
