package fs

import (
	"io"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/dlog"
	"github.com/ricat/ricat/internal/io/line"
)

// StdinID is the source id of lines read from standard input.
const StdinID = "-"

type fileSource struct {
	paths   []string
	next    int // Index of the next path to open
	path    string
	current lineReader
	ordinal uint64
	err     error // Sticky, the run never continues past a failure
	log     *dlog.Logger
}

// NewFiles returns a source reading the given files one after another. Files
// are opened lazily once the previous one is exhausted, so a file which can
// not be opened only fails the run when it is reached.
func NewFiles(paths []string, log *dlog.Logger) Source {
	return &fileSource{
		paths: paths,
		log:   log.WithComponent("source"),
	}
}

func (f *fileSource) Next() (line.Line, error) {
	if f.err != nil {
		return line.Line{}, f.err
	}
	l, err := f.nextLine()
	if err != nil && err != io.EOF {
		f.err = err
	}
	return l, err
}

func (f *fileSource) nextLine() (line.Line, error) {
	for {
		if f.current == nil {
			if f.next >= len(f.paths) {
				return line.Line{}, io.EOF
			}
			f.path = f.paths[f.next]
			f.next++
			reader, err := openFile(f.path, f.log)
			if err != nil {
				return line.Line{}, errors.Wrapf(errors.Classify(errors.ErrIO, err), "opening %s", f.path)
			}
			f.current = reader
		}

		b, err := f.current.NextLine()
		if err == nil {
			f.ordinal++
			return line.New(toString(b), f.ordinal, f.path), nil
		}

		// Close even on a read error so the mapping and descriptor are released
		closeErr := f.closeCurrent()
		if err != io.EOF {
			return line.Line{}, errors.Wrapf(errors.Classify(errors.ErrIO, err), "reading %s", f.path)
		}
		if closeErr != nil {
			return line.Line{}, errors.Wrapf(errors.Classify(errors.ErrIO, closeErr), "closing %s", f.path)
		}
	}
}

func (f *fileSource) closeCurrent() error {
	if f.current == nil {
		return nil
	}
	err := f.current.Close()
	f.current = nil
	f.log.Debug("Closed file", dlog.Fields(dlog.FieldSource, f.path))
	return err
}

func (f *fileSource) Close() error {
	f.next = len(f.paths)
	return f.closeCurrent()
}

type readerSource struct {
	reader   *ChunkedReader
	closer   io.Closer
	sourceID string
	ordinal  uint64
}

// NewReader returns a source reading lines from r, typically standard input.
// Each line is returned as soon as its terminator has been read. If r is an
// io.Closer it is closed by Close.
func NewReader(r io.Reader, sourceID string) Source {
	s := &readerSource{
		reader:   NewChunkedReader(r, constants.StdinBufferSize),
		sourceID: sourceID,
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

func (s *readerSource) Next() (line.Line, error) {
	b, err := s.reader.NextLine()
	if err != nil {
		if err == io.EOF {
			return line.Line{}, io.EOF
		}
		return line.Line{}, errors.Wrapf(errors.Classify(errors.ErrIO, err), "reading %s", s.sourceID)
	}
	s.ordinal++
	return line.New(toString(b), s.ordinal, s.sourceID), nil
}

// WouldBlock implements Blocking.
func (s *readerSource) WouldBlock() bool {
	return !s.reader.Buffered()
}

func (s *readerSource) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	return c.Close()
}
