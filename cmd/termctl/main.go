// Command termctl hosts a child process behind a pseudo-terminal and an
// in-process terminal emulator, exposing it over a local control socket so
// scripted clients can read the rendered screen, inject keystrokes, and
// manage the child's lifecycle.
package main

import (
	"fmt"
	"os"

	"termctl/internal/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
