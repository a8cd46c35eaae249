// Package endpoint manages the local filesystem-visible bidirectional
// byte-stream listener (a Unix domain socket) clients use to reach a hosted
// session: path resolution, auto-generated temp directories, staleness
// probing, and teardown.
package endpoint

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Endpoint is a resolved socket path plus the bookkeeping needed to tear it
// down correctly.
type Endpoint struct {
	Path string
	// Dir is the auto-generated temp directory containing Path, or "" when
	// the caller supplied an explicit path (in which case only the socket
	// file itself is removed on Cleanup).
	Dir string
}

// AutoGenerated reports whether this endpoint owns its parent directory.
func (e *Endpoint) AutoGenerated() bool { return e.Dir != "" }

// Resolve returns an Endpoint for explicit, or auto-generates a fresh
// temp directory and socket path within it (named "termctl-<uuid>/sock")
// when explicit is empty.
func Resolve(explicit string) (*Endpoint, error) {
	if explicit != "" {
		return &Endpoint{Path: explicit}, nil
	}
	dir := filepath.Join(os.TempDir(), "termctl-"+uuid.New().String())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create endpoint dir: %w", err)
	}
	return &Endpoint{Path: filepath.Join(dir, "sock"), Dir: dir}, nil
}

// FromResolved reconstructs an already-Resolve'd Endpoint from its Path and
// Dir, for passing a resolved endpoint across a re-exec (the `start` command
// resolves once, then hands both fields to the `_daemon` process as flags so
// the daemon doesn't generate a second directory).
func FromResolved(path, dir string) *Endpoint {
	return &Endpoint{Path: path, Dir: dir}
}

// Probe checks for a conflicting live listener at Path. If a socket file
// exists but nothing answers it (a stale file left by a crashed host), it is
// removed so a fresh listener can bind the same path.
func (e *Endpoint) Probe() error {
	if _, err := os.Stat(e.Path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat endpoint %s: %w", e.Path, err)
	}

	conn, err := net.DialTimeout("unix", e.Path, 200*time.Millisecond)
	if err == nil {
		conn.Close()
		return fmt.Errorf("endpoint %s is already in use", e.Path)
	}

	if rmErr := os.Remove(e.Path); rmErr != nil && !os.IsNotExist(rmErr) {
		return fmt.Errorf("remove stale endpoint %s: %w", e.Path, rmErr)
	}
	return nil
}

// Listen probes for staleness and then binds a listener at Path.
func (e *Endpoint) Listen() (net.Listener, error) {
	if err := e.Probe(); err != nil {
		return nil, err
	}
	ln, err := net.Listen("unix", e.Path)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", e.Path, err)
	}
	return ln, nil
}

// Cleanup removes the socket file and, if this Endpoint owns an
// auto-generated directory, the directory too. For an auto-generated
// directory a non-blocking flock is tried on a lock file inside it while the
// files are removed; if another holder has the lock, the removal still goes
// ahead. Probe does not take this lock.
func (e *Endpoint) Cleanup() error {
	if !e.AutoGenerated() {
		if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove endpoint %s: %w", e.Path, err)
		}
		return nil
	}

	lockPath := filepath.Join(e.Dir, ".cleanup.lock")
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("lock endpoint dir %s: %w", e.Dir, err)
	}
	if locked {
		defer fl.Unlock()
	}

	if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove endpoint %s: %w", e.Path, err)
	}
	os.Remove(lockPath)
	if err := os.Remove(e.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove endpoint dir %s: %w", e.Dir, err)
	}
	return nil
}
