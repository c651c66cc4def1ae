// Package fs provides the line sources of ricat. A source yields the lines of
// a list of files, or of standard input, one at a time and in input order.
//
// Key components:
// - Source interface for pulling lines
// - Memory mapped reading of regular files (unix only)
// - Transparent gzip and zstd decompression by file suffix
// - Chunked reading of pipes, terminals and everything else
package fs

import "github.com/ricat/ricat/internal/io/line"

// Source yields input lines. Next returns io.EOF once all input is consumed.
// Lines carry no terminator. Close releases any open file or mapping and may
// be called at any time.
type Source interface {
	Next() (line.Line, error)
	Close() error
}

// Blocking is implemented by sources which may wait for input, such as a
// terminal or pipe. WouldBlock returns true if the next call to Next may
// block, which is the moment to flush pending output.
type Blocking interface {
	WouldBlock() bool
}

// lineReader reads the raw lines of a single input.
type lineReader interface {
	// NextLine returns a line including its terminator, or io.EOF.
	NextLine() ([]byte, error)
	Close() error
}

// trimTerminator strips a trailing "\n", and a "\r" directly before it.
func trimTerminator(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}

// toString copies the line content out of reader owned memory.
func toString(b []byte) string {
	return string(trimTerminator(b))
}
