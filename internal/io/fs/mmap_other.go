//go:build !unix

package fs

import (
	"errors"
	"os"
)

var errMmapUnsupported = errors.New("memory mapping not supported on this platform")

func mapFile(*os.File, int64) ([]byte, error) {
	return nil, errMmapUnsupported
}

func unmapFile([]byte) error {
	return nil
}
