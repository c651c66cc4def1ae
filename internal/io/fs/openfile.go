package fs

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/DataDog/zstd"

	"github.com/ricat/ricat/internal/constants"
	"github.com/ricat/ricat/internal/errors"
	"github.com/ricat/ricat/internal/io/dlog"
)

// Reading strategies, as logged when a file is opened.
const (
	strategyMmap    = "mmap"
	strategyGzip    = "gzip"
	strategyZstd    = "zstd"
	strategyChunked = "chunked"
)

// streamReader reads lines of a stream and closes every layer of it.
type streamReader struct {
	*ChunkedReader
	closers []io.Closer
}

func (s *streamReader) Close() error {
	multi := errors.NewMultiError()
	// Innermost decompressor first, the file last
	for i := len(s.closers) - 1; i >= 0; i-- {
		multi.Add(s.closers[i].Close())
	}
	s.closers = nil
	s.Release()
	return multi.ErrorOrNil()
}

// openFile opens path and picks the reading strategy from its name and type.
func openFile(path string, log *dlog.Logger) (lineReader, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(bufio.NewReaderSize(fd, constants.ReadBufferSize))
		if err != nil {
			fd.Close()
			return nil, err
		}
		logOpen(log, path, strategyGzip)
		return &streamReader{
			ChunkedReader: NewChunkedReader(gz, constants.ReadBufferSize),
			closers:       []io.Closer{fd, gz},
		}, nil

	case strings.HasSuffix(path, ".zst"):
		zr := zstd.NewReader(bufio.NewReaderSize(fd, constants.ReadBufferSize))
		logOpen(log, path, strategyZstd)
		return &streamReader{
			ChunkedReader: NewChunkedReader(zr, constants.ReadBufferSize),
			closers:       []io.Closer{fd, zr},
		}, nil
	}

	if info, err := fd.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > 0 {
		data, err := mapFile(fd, info.Size())
		if err == nil {
			// The mapping stays valid after the descriptor is closed
			if err := fd.Close(); err != nil {
				unmapFile(data)
				return nil, err
			}
			logOpen(log, path, strategyMmap)
			return newMappedReader(data), nil
		}
		log.Debug("Unable to map file, falling back to chunked reading",
			dlog.Fields(dlog.FieldSource, path, dlog.FieldError, err.Error()))
	}

	logOpen(log, path, strategyChunked)
	return &streamReader{
		ChunkedReader: NewChunkedReader(fd, constants.ReadBufferSize),
		closers:       []io.Closer{fd},
	}, nil
}

func logOpen(log *dlog.Logger, path, strategy string) {
	log.Debug("Opened file", dlog.Fields(dlog.FieldSource, path, "strategy", strategy))
}
