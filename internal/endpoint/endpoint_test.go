package endpoint

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveExplicit(t *testing.T) {
	e, err := Resolve("/tmp/explicit.sock")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if e.AutoGenerated() {
		t.Errorf("explicit endpoint should not be auto-generated")
	}
	if e.Path != "/tmp/explicit.sock" {
		t.Errorf("Path = %q", e.Path)
	}
}

func TestResolveAutoGenerated(t *testing.T) {
	e, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	defer os.RemoveAll(e.Dir)

	if !e.AutoGenerated() {
		t.Errorf("empty explicit path should auto-generate")
	}
	if filepath.Dir(e.Path) != e.Dir {
		t.Errorf("Path %q not inside Dir %q", e.Path, e.Dir)
	}
	if _, err := os.Stat(e.Dir); err != nil {
		t.Errorf("auto-generated dir should exist: %v", err)
	}
}

func TestProbeRemovesStaleSocket(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sock")

	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ln.Close() // leaves a stale socket file behind

	e := &Endpoint{Path: path}
	if err := e.Probe(); err != nil {
		t.Fatalf("Probe of stale socket: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("stale socket file should have been removed")
	}
}

func TestProbeRejectsLiveListener(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sock")

	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	e := &Endpoint{Path: path}
	if err := e.Probe(); err == nil {
		t.Fatalf("Probe of live listener should fail")
	}
}

func TestCleanupAutoGenerated(t *testing.T) {
	e, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := os.WriteFile(e.Path, nil, 0o600); err != nil {
		t.Fatalf("write socket placeholder: %v", err)
	}

	if err := e.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(e.Dir); !os.IsNotExist(err) {
		t.Errorf("auto-generated dir should be removed after Cleanup")
	}
}

func TestCleanupExplicitRemovesOnlySocket(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sock")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write socket placeholder: %v", err)
	}

	e := &Endpoint{Path: path}
	if err := e.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("explicit socket file should be removed")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("explicit parent dir should be left alone: %v", err)
	}
}
