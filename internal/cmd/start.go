package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"termctl/internal/endpoint"
)

func newStartCmd() *cobra.Command {
	var socket string
	var size string
	var emulator string
	var noDaemon bool
	var ptyDump string
	var cmdline string

	cmd := &cobra.Command{
		Use:   "start [flags] -- <command> [args...]",
		Short: "Start a hosted PTY session",
		Long: `Spawn a child process behind a pseudo-terminal and expose it over a
control socket for the output/input/status/stop/wait/kill/resize/debug
subcommands.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadedConfig()
			if socket == "" {
				socket = cfg.Socket
			}
			if size == "" {
				size = cfg.Size
			}
			if size == "" {
				size = "80x24"
			}
			if emulator == "" {
				emulator = cfg.Emulator
			}
			if emulator == "" {
				emulator = "custom"
			}
			if ptyDump == "" {
				ptyDump = cfg.PtyDump
			}

			switch emulator {
			case "", "custom", "xterm":
			default:
				return fmt.Errorf("invalid --emulator %q, want custom or xterm", emulator)
			}

			if cmdline != "" {
				if len(args) > 0 {
					return fmt.Errorf("--cmdline cannot be combined with a trailing argv")
				}
				split, err := shlex.Split(cmdline)
				if err != nil {
					return fmt.Errorf("split --cmdline: %w", err)
				}
				args = split
			}
			if len(args) == 0 {
				return fmt.Errorf("requires either a trailing command or --cmdline")
			}

			ep, err := endpoint.Resolve(socket)
			if err != nil {
				return fmt.Errorf("resolve endpoint: %w", err)
			}

			if noDaemon {
				cols, rows, err := parseSize(size)
				if err != nil {
					return err
				}
				printStartBanner(cmd, ep.Path, os.Getpid(), ep.AutoGenerated())
				return runSession(args, rows, cols, emulator, ep, ptyDump)
			}

			pid, err := forkDaemon(ep, size, emulator, ptyDump, args)
			if err != nil {
				return err
			}
			printStartBanner(cmd, ep.Path, pid, ep.AutoGenerated())
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Path for the control socket (auto-generated if omitted, or from the config file)")
	cmd.Flags().StringVar(&size, "size", "", "Initial size as COLSxROWS (default 80x24, or the config file's size)")
	cmd.Flags().StringVar(&emulator, "emulator", "", "xterm (TERM=xterm-256color) or custom (TERM=ansi); defaults to custom or the config file's emulator")
	cmd.Flags().BoolVar(&noDaemon, "no-daemon", false, "Run the session in the foreground instead of forking")
	cmd.Flags().StringVar(&ptyDump, "pty-dump", "", "Optional path to tee raw PTY output to")
	cmd.Flags().StringVar(&cmdline, "cmdline", "", "Single-string command to run, split shell-style (alternative to trailing argv)")

	return cmd
}

func printStartBanner(cmd *cobra.Command, socketPath string, pid int, autoGenerated bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Socket: %s\n", socketPath)
	fmt.Fprintf(out, "PID: %d\n", pid)
	fmt.Fprintf(out, "Auto-generated: %v\n", autoGenerated)
}

// forkDaemon re-execs the current binary with the hidden _daemon subcommand,
// detached from this process's controlling terminal and session.
func forkDaemon(ep *endpoint.Endpoint, size, emulator, ptyDump string, argv []string) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, fmt.Errorf("find executable: %w", err)
	}

	daemonArgs := []string{"_daemon", "--socket", ep.Path, "--size", size, "--emulator", emulator}
	if ep.Dir != "" {
		daemonArgs = append(daemonArgs, "--endpoint-dir", ep.Dir)
	}
	if ptyDump != "" {
		daemonArgs = append(daemonArgs, "--pty-dump", ptyDump)
	}
	daemonArgs = append(daemonArgs, "--")
	daemonArgs = append(daemonArgs, argv...)

	daemon := exec.Command(exe, daemonArgs...)
	daemon.SysProcAttr = detachedSysProcAttr()

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return 0, fmt.Errorf("open /dev/null: %w", err)
	}
	defer devNull.Close()
	daemon.Stdin = devNull
	daemon.Stdout = devNull
	daemon.Stderr = devNull

	if err := daemon.Start(); err != nil {
		return 0, fmt.Errorf("start daemon: %w", err)
	}
	return daemon.Process.Pid, nil
}
