package constants

// Numeric limits and configuration values
const (
	// InterruptTimeoutSeconds is how long a cancelled run may take to wind down
	// before the process is forcibly terminated
	InterruptTimeoutSeconds = 3

	// DefaultTerminalRows is used when the terminal size can not be queried
	DefaultTerminalRows = 24

	// DefaultTerminalColumns is used when the terminal size can not be queried
	DefaultTerminalColumns = 80

	// ReservedPromptRows is the number of rows kept free for the pager prompt
	ReservedPromptRows = 1
)
