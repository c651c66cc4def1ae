package constants

import "time"

// Timeout constants used throughout the application
const (
	// ForcedExitDelay is the delay after a termination signal before the
	// process exits even if it is still blocked reading input
	ForcedExitDelay = InterruptTimeoutSeconds * time.Second
)
