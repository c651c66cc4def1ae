// Package version provides the version information of ricat.
package version

import (
	"fmt"
	"io"
)

const (
	// Name of ricat.
	Name string = "ricat"
	// Version of ricat.
	Version string = "0.1.0"
)

// String returns a plain text representation of the version information.
func String() string {
	return fmt.Sprintf("%s %v", Name, Version)
}

// Print the version.
func Print(w io.Writer) {
	fmt.Fprintln(w, String())
}
