package pool

import (
	"sync"

	"github.com/ricat/ricat/internal/constants"
)

// ReadBuffer is there to optimize memory allocations. Every file of a run is
// read through its own chunk buffer, and files are read one after another.
var ReadBuffer = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, constants.ReadBufferSize)
		return &buf
	},
}

// GetReadBuffer gets a ReadBufferSize sized buffer from the pool.
func GetReadBuffer() *[]byte {
	return ReadBuffer.Get().(*[]byte)
}

// RecycleReadBuffer returns a buffer to the pool. Buffers of another size
// are dropped.
func RecycleReadBuffer(buf *[]byte) {
	if buf == nil || cap(*buf) != constants.ReadBufferSize {
		return
	}
	*buf = (*buf)[:cap(*buf)]
	ReadBuffer.Put(buf)
}
