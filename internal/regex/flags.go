package regex

import "fmt"

// Flag changes how a pattern is matched.
type Flag int

// Possible flags.
const (
	// Default matches case sensitively.
	Default Flag = iota
	// IgnoreCase matches case insensitively.
	IgnoreCase
	// Noop matches every line.
	Noop
)

func (f Flag) String() string {
	switch f {
	case Default:
		return "default"
	case IgnoreCase:
		return "ignorecase"
	case Noop:
		return "noop"
	default:
		return fmt.Sprintf("flag(%d)", int(f))
	}
}
