package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	data := `socket: /tmp/my.sock
size: 100x40
emulator: xterm
pty_dump: /tmp/dump.bin
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Socket != "/tmp/my.sock" {
		t.Errorf("Socket = %q", cfg.Socket)
	}
	if cfg.Size != "100x40" {
		t.Errorf("Size = %q", cfg.Size)
	}
	if cfg.Emulator != "xterm" {
		t.Errorf("Emulator = %q", cfg.Emulator)
	}
	if cfg.PtyDump != "/tmp/dump.bin" {
		t.Errorf("PtyDump = %q", cfg.PtyDump)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg == nil || cfg.Socket != "" {
		t.Errorf("expected empty Config, got %+v", cfg)
	}
}

func TestLoadFromInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestConfigDirFallsBackUnderHome(t *testing.T) {
	dir := ConfigDir()
	if filepath.Base(dir) != ".termctl" {
		t.Errorf("ConfigDir() = %q, want basename .termctl", dir)
	}
}
