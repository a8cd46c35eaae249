// Package cmd implements the termctl cobra command tree: one subcommand per
// control-protocol request type, plus start (spawns a session) and the
// hidden _daemon re-exec target that actually hosts the PTY.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command with all subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "termctl",
		Short: "Host and drive a PTY session from the command line",
		Long:  "termctl hosts a child process behind a pseudo-terminal and an in-process terminal emulator, exposing it over a local control socket for scripted input, output, and lifecycle control.",
	}

	rootCmd.AddCommand(
		newStartCmd(),
		newDaemonCmd(),
		newOutputCmd(),
		newInputCmd(),
		newStatusCmd(),
		newStopCmd(),
		newWaitCmd(),
		newKillCmd(),
		newResizeCmd(),
		newDebugCmd(),
	)

	return rootCmd
}
