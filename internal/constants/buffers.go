package constants

// Buffer size constants in bytes
const (
	// SinkBufferSize is the amount of output collected before one write (64KB)
	SinkBufferSize = 64 * 1024

	// ReadBufferSize is the size of buffered input readers (64KB)
	ReadBufferSize = 64 * 1024

	// StdinBufferSize is the size of the standard input reader (4KB). Kept
	// small as standard input is read line by line for interactive use.
	StdinBufferSize = 4 * 1024
)
