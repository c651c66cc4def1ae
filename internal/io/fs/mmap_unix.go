//go:build unix

package fs

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps size bytes of fd read-only into memory.
func mapFile(fd *os.File, size int64) ([]byte, error) {
	return unix.Mmap(int(fd.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
}

func unmapFile(data []byte) error {
	return unix.Munmap(data)
}
