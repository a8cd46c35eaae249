// Package hostsession aggregates one hosted child's PTY, terminal emulator,
// and endpoint metadata, and runs the PTY Reader Task that keeps the
// emulator in sync with child output.
package hostsession

import (
	"io"
	"sync"

	"termctl/internal/endpoint"
	"termctl/internal/pty"
	"termctl/internal/term"
)

// Session is the aggregate root for one hosted child: PTY master + child
// PID (via Harness), the terminal emulator (Screen), the endpoint, and the
// shutdown flag. Screen and the shutdown flag are shared by the PTY Reader
// Task and the Control Server, and Mu guards them. The exit-status value is
// recorded by the Harness's own reap goroutine under the Harness's lock.
type Session struct {
	Mu sync.Mutex

	Harness  *pty.Harness
	Screen   *term.Screen
	Endpoint *endpoint.Endpoint

	// Tee, when non-nil, receives a verbatim copy of every byte read from
	// the PTY master, for offline debugging.
	Tee io.Writer

	Extended bool // xterm-256color TERM vs ansi

	shutdown bool
}

// New builds a Session around an already-spawned Harness.
func New(h *pty.Harness, rows, cols int, ep *endpoint.Endpoint, extended bool, tee io.Writer) *Session {
	return &Session{
		Harness:  h,
		Screen:   term.NewScreen(rows, cols),
		Endpoint: ep,
		Tee:      tee,
		Extended: extended,
	}
}

// RequestShutdown sets the shutdown flag. The Reader Task checks it between
// PTY reads; the Control Server checks it when Accept fails, which happens
// once the listener has been closed.
func (s *Session) RequestShutdown() {
	s.Mu.Lock()
	s.shutdown = true
	s.Mu.Unlock()
}

// ShuttingDown reports the shutdown flag.
func (s *Session) ShuttingDown() bool {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	return s.shutdown
}

// Resize replaces the Screen wholesale with a freshly initialized grid of
// the new dimensions and applies the window-size control to the PTY master.
// Content is not reflowed or preserved.
func (s *Session) Resize(rows, cols int) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	if err := s.Harness.Resize(rows, cols); err != nil {
		return err
	}
	s.Screen = term.NewScreen(rows, cols)
	return nil
}
