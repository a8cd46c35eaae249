// Package pty hosts a child process under a pseudo-terminal: PTY pair
// allocation, controlling-terminal setup, non-blocking exit polling, and
// signal delivery.
package pty

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// Harness owns one child process running under a PTY. The master file
// descriptor is retained by the caller (hostsession.Session) for reading and
// writing; Harness is responsible for spawn, reap, resize, and signal
// delivery only.
type Harness struct {
	cmd    *exec.Cmd
	Master *os.File

	mu     sync.Mutex
	exited bool
	code   int
	done   chan struct{}
}

// Spawn starts argv[0] with argv[1:] under a new PTY of the given size. TERM
// is set in the child's environment to the given value (xterm-256color when
// the extended emulator is in use, ansi otherwise). The child gets its own
// session with the PTY slave as controlling terminal.
func Spawn(argv []string, rows, cols int, term string) (*Harness, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("spawn: empty argv")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), "TERM="+term)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	}

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("start pty: %w", err)
	}

	h := &Harness{
		cmd:    cmd,
		Master: master,
		done:   make(chan struct{}),
	}
	go h.reap()
	return h, nil
}

// PID returns the child's process ID.
func (h *Harness) PID() int {
	return h.cmd.Process.Pid
}

// reap blocks on cmd.Wait() in the background and records the exit status
// once available. Callers poll Poll() or select on Done() rather than
// blocking here, so no waiter is ever stuck on a live child.
func (h *Harness) reap() {
	err := h.cmd.Wait()
	code := exitCodeFromError(h.cmd, err)

	h.mu.Lock()
	h.exited = true
	h.code = code
	h.mu.Unlock()
	close(h.done)
}

func exitCodeFromError(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				return 128 + int(status.Signal())
			}
			return status.ExitStatus()
		}
		return exitErr.ExitCode()
	}
	return -1
}

// Poll reports whether the child has exited and, if so, its exit status.
// Once set, the status is immutable for the life of the Harness.
func (h *Harness) Poll() (code int, exited bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.code, h.exited
}

// Done returns a channel closed once the child has exited, for select-based
// waiters.
func (h *Harness) Done() <-chan struct{} {
	return h.done
}

// Resize applies a new window size to the PTY master.
func (h *Harness) Resize(rows, cols int) error {
	if err := pty.Setsize(h.Master, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return fmt.Errorf("resize pty: %w", err)
	}
	return nil
}

// Signal delivers sig to the child process. Resolving a name or number to a
// signal is ParseSignal's job.
func (h *Harness) Signal(sig syscall.Signal) error {
	if err := h.cmd.Process.Signal(sig); err != nil {
		return fmt.Errorf("signal %s: %w", sig, err)
	}
	return nil
}

// Close releases the PTY master. It does not touch the child process; callers
// signal and reap separately.
func (h *Harness) Close() error {
	return h.Master.Close()
}
