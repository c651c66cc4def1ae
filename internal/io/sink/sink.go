// Package sink buffers the processed lines of a run and writes them to the
// output in large blocks.
package sink

import (
	"bytes"
	"io"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/line"
)

// Sink writes lines, each followed by a newline, to an underlying writer.
// Data is accumulated until the buffer threshold is reached and then written
// with a single call. Sink implements line.Processor.
type Sink struct {
	writer  io.Writer
	buf     bytes.Buffer
	bufSize int

	// Stats
	linesWritten uint64
	bytesWritten uint64
}

var _ line.Processor = (*Sink)(nil)

// New returns a sink writing to w with the default buffer threshold.
func New(w io.Writer) *Sink {
	return NewSize(w, constants.SinkBufferSize)
}

// NewSize returns a sink flushing whenever size bytes are buffered.
func NewSize(w io.Writer, size int) *Sink {
	if size <= 0 {
		size = constants.SinkBufferSize
	}
	s := &Sink{writer: w, bufSize: size}
	s.buf.Grow(size)
	return s
}

// ProcessLine appends the line and a newline to the buffer.
func (s *Sink) ProcessLine(l line.Line) error {
	s.buf.WriteString(l.Content)
	s.buf.WriteByte('\n')
	s.linesWritten++
	s.bytesWritten += uint64(len(l.Content) + 1)

	if s.buf.Len() >= s.bufSize {
		return s.flushBuffer()
	}
	return nil
}

// Flush writes out everything buffered.
func (s *Sink) Flush() error {
	return s.flushBuffer()
}

// Close flushes the sink. The underlying writer stays open.
func (s *Sink) Close() error {
	return s.flushBuffer()
}

func (s *Sink) flushBuffer() error {
	if s.buf.Len() == 0 {
		return nil
	}
	_, err := s.writer.Write(s.buf.Bytes())
	s.buf.Reset()
	if err != nil {
		return errors.Wrap(errors.Classify(errors.ErrIO, err), "writing output")
	}
	return nil
}

// Buffered returns the number of bytes not yet written.
func (s *Sink) Buffered() int {
	return s.buf.Len()
}

// Stats returns writing statistics.
func (s *Sink) Stats() (linesWritten, bytesWritten uint64) {
	return s.linesWritten, s.bytesWritten
}
