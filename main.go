// cellmach is the command-line interface to the toy hardware emulator: an assembler/loader and a
// driver for its cpu_exec-based instruction set.
package main

import (
	"os"

	"github.com/cellmach/cellmach/internal/cli"
)

// Entry point.
func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
