package fs

import (
	"bytes"
	"io"
)

// mappedReader walks the lines of a memory mapped file.
type mappedReader struct {
	data []byte
	pos  int
}

func newMappedReader(data []byte) *mappedReader {
	return &mappedReader{data: data}
}

func (m *mappedReader) NextLine() ([]byte, error) {
	if m.data == nil || m.pos >= len(m.data) {
		// Exhausted, release the mapping right away
		if err := m.Close(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	rest := m.data[m.pos:]
	end := len(rest)
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		end = i + 1
	}
	m.pos += end
	return rest[:end], nil
}

func (m *mappedReader) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return unmapFile(data)
}
