package line

// Processor defines an interface for consuming finished output lines.
// The sink and the pager implement it; the pager forwards to a sink.
type Processor interface {
	// ProcessLine handles a single finished line. The processor adds the
	// line terminator. Returns error if processing should stop.
	ProcessLine(l Line) error

	// Flush ensures any buffered data is written out.
	Flush() error

	// Close flushes and releases resources used by the processor.
	Close() error
}
