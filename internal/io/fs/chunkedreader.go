package fs

import (
	"bytes"
	"io"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/io/pool"
)

// ChunkedReader reads data in large chunks and hands it out line by line.
// A single Read is issued whenever no complete line is buffered, so a
// terminal or pipe yields each line as soon as it arrives.
type ChunkedReader struct {
	reader    io.Reader
	buffer    []byte
	remaining []byte // Unconsumed bytes of the current chunk
	partial   []byte // Partial line carried over from previous chunks
	pooled    *[]byte
	eof       bool
}

// NewChunkedReader creates a new chunked reader with the specified chunk size.
func NewChunkedReader(reader io.Reader, chunkSize int) *ChunkedReader {
	if chunkSize <= 0 {
		chunkSize = constants.ReadBufferSize
	}
	if chunkSize == constants.ReadBufferSize {
		buf := pool.GetReadBuffer()
		return &ChunkedReader{reader: reader, buffer: *buf, pooled: buf}
	}
	return &ChunkedReader{
		reader: reader,
		buffer: make([]byte, chunkSize),
	}
}

// Release hands the chunk buffer back to the pool. The reader must not be
// used afterwards.
func (cr *ChunkedReader) Release() {
	if cr.pooled == nil {
		return
	}
	pool.RecycleReadBuffer(cr.pooled)
	cr.pooled = nil
	cr.buffer = nil
	cr.remaining = nil
	cr.partial = nil
	cr.eof = true
}

// Buffered returns true if the next call to NextLine can be served without
// reading from the underlying reader.
func (cr *ChunkedReader) Buffered() bool {
	return cr.eof || bytes.IndexByte(cr.remaining, '\n') >= 0
}

// NextLine returns the next line including its terminator. The returned
// slice is only valid until the next call. A final line without terminator
// is returned as is, after which io.EOF is returned.
func (cr *ChunkedReader) NextLine() ([]byte, error) {
	for {
		if i := bytes.IndexByte(cr.remaining, '\n'); i >= 0 {
			chunk := cr.remaining[:i+1]
			cr.remaining = cr.remaining[i+1:]
			if len(cr.partial) == 0 {
				return chunk, nil
			}
			cr.partial = append(cr.partial, chunk...)
			line := cr.partial
			cr.partial = cr.partial[:0]
			return line, nil
		}

		// No complete line buffered, keep what we have for the next chunk
		cr.partial = append(cr.partial, cr.remaining...)
		cr.remaining = nil

		if cr.eof {
			if len(cr.partial) > 0 {
				line := cr.partial
				cr.partial = nil
				return line, nil
			}
			return nil, io.EOF
		}

		n, err := cr.reader.Read(cr.buffer)
		cr.remaining = cr.buffer[:n]
		switch {
		case err == io.EOF:
			cr.eof = true
		case err != nil:
			return nil, err
		}
	}
}
