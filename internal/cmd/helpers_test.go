package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestAddSocketFlagFallsBackToConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgDir := filepath.Join(home, ".termctl")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("socket: /tmp/from-config.sock\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	socket := addSocketFlag(cmd)
	cmd.SetArgs(nil)
	if err := cmd.PreRunE(cmd, nil); err != nil {
		t.Fatalf("PreRunE: %v", err)
	}
	if *socket != "/tmp/from-config.sock" {
		t.Errorf("socket = %q, want config default", *socket)
	}
}

func TestAddSocketFlagMissingErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cmd := &cobra.Command{}
	addSocketFlag(cmd)
	if err := cmd.PreRunE(cmd, nil); err == nil {
		t.Error("expected error when no --socket and no config default")
	}
}

func TestUnescapeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`hello\n`, "hello\n"},
		{`a\tb\rc`, "a\tb\rc"},
		{`\e[31m`, "\x1b[31m"},
		{`\E[31m`, "\x1b[31m"},
		{`\x41\x42`, "AB"},
		{`back\\slash`, `back\slash`},
		{`\q`, `\q`},
		{`trailing\`, `trailing\`},
		{`no escapes here`, "no escapes here"},
	}
	for _, tt := range tests {
		if got := unescapeText(tt.in); got != tt.want {
			t.Errorf("unescapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSize(t *testing.T) {
	cols, rows, err := parseSize("80x24")
	if err != nil || cols != 80 || rows != 24 {
		t.Fatalf("parseSize(80x24) = %d,%d,%v", cols, rows, err)
	}

	for _, bad := range []string{"", "80", "80x", "x24", "0x24", "80x0", "abcxdef"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) expected error", bad)
		}
	}
}
