package pool

import (
	"testing"

	"github.com/ricat/ricat/internal/constants"
)

func TestReadBuffer(t *testing.T) {
	buf := GetReadBuffer()
	if len(*buf) != constants.ReadBufferSize {
		t.Fatalf("expected buffer of %d bytes, got %d", constants.ReadBufferSize, len(*buf))
	}

	// A shortened buffer comes back at full length
	*buf = (*buf)[:10]
	RecycleReadBuffer(buf)
	if len(*buf) != constants.ReadBufferSize {
		t.Errorf("expected recycled buffer of %d bytes, got %d", constants.ReadBufferSize, len(*buf))
	}

	// Foreign sizes and nil are ignored
	small := make([]byte, 16)
	RecycleReadBuffer(&small)
	RecycleReadBuffer(nil)
}

func BenchmarkReadBuffer(b *testing.B) {
	for i := 0; i < b.N; i++ {
		buf := GetReadBuffer()
		RecycleReadBuffer(buf)
	}
}
