package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"termctl/internal/endpoint"
	"termctl/internal/hostsession"
	"termctl/internal/pty"
	"termctl/internal/server"
)

// newDaemonCmd builds the hidden re-exec target `start` forks into. It is
// never invoked directly by a user; `start` always either calls runSession
// in-process (--no-daemon) or re-execs itself with this subcommand.
func newDaemonCmd() *cobra.Command {
	var socket string
	var endpointDir string
	var size string
	var emulator string
	var ptyDump string

	cmd := &cobra.Command{
		Use:    "_daemon --socket=<path> [--endpoint-dir=<dir>] -- <command> [args...]",
		Short:  "Host a PTY session (internal)",
		Hidden: true,
		Args:   cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, rows, err := parseSize(size)
			if err != nil {
				return err
			}
			ep := endpoint.FromResolved(socket, endpointDir)
			return runSession(args, rows, cols, emulator, ep, ptyDump)
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Resolved control socket path")
	cmd.Flags().StringVar(&endpointDir, "endpoint-dir", "", "Auto-generated endpoint directory to remove on shutdown")
	cmd.Flags().StringVar(&size, "size", "80x24", "Initial size as COLSxROWS")
	cmd.Flags().StringVar(&emulator, "emulator", "custom", "xterm or custom")
	cmd.Flags().StringVar(&ptyDump, "pty-dump", "", "Optional path to tee raw PTY output to, for offline debugging")
	cmd.MarkFlagRequired("socket")

	return cmd
}

// runSession hosts one PTY child to completion: spawn the harness, bind the
// endpoint, run the PTY Reader Task alongside the Control Server, and clean
// up on shutdown. Shared by the hidden _daemon target and start --no-daemon.
func runSession(argv []string, rows, cols int, emulator string, ep *endpoint.Endpoint, ptyDumpPath string) error {
	termEnv := "ansi"
	extended := emulator == "xterm"
	if extended {
		termEnv = "xterm-256color"
	}

	harness, err := pty.Spawn(argv, rows, cols, termEnv)
	if err != nil {
		return fmt.Errorf("spawn pty: %w", err)
	}

	var tee *os.File
	if ptyDumpPath != "" {
		tee, err = os.Create(ptyDumpPath)
		if err != nil {
			return fmt.Errorf("open pty-dump %s: %w", ptyDumpPath, err)
		}
		defer tee.Close()
	}

	sess := hostsession.New(harness, rows, cols, ep, extended, tee)

	ln, err := ep.Listen()
	if err != nil {
		harness.Close()
		return fmt.Errorf("listen on endpoint: %w", err)
	}

	go hostsession.RunReader(sess)

	srv := server.New(sess, ln)
	serveErr := srv.Serve()

	sess.RequestShutdown()
	harness.Close()
	if cleanupErr := ep.Cleanup(); cleanupErr != nil {
		log.Printf("termctl: endpoint cleanup: %v", cleanupErr)
	}
	return serveErr
}
