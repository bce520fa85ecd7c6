package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version string. Overridden at build time via
// -ldflags "-X github.com/agbru/resmon/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether the argument list requests the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "resmon %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
