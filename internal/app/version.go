package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. Only the first
// argument counts, so a value that happens to be "-V" is not mistaken for
// the flag.
func HasVersionFlag(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "--version", "-version", "-V":
		return true
	}
	return false
}

// PrintVersion writes the build information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "moneymask %s\n", Version)
	fmt.Fprintf(w, "  commit:     %s\n", Commit)
	fmt.Fprintf(w, "  built:      %s\n", BuildDate)
	fmt.Fprintf(w, "  go version: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
