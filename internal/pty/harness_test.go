package pty

import (
	"bytes"
	"testing"
	"time"
)

func TestSpawnAndReap(t *testing.T) {
	h, err := Spawn([]string{"/bin/sh", "-c", "exit 7"}, 24, 80, "ansi")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child did not reap in time")
	}

	code, exited := h.Poll()
	if !exited {
		t.Fatalf("exited = false, want true")
	}
	if code != 7 {
		t.Errorf("code = %d, want 7", code)
	}
}

func TestSpawnOutput(t *testing.T) {
	h, err := Spawn([]string{"/bin/sh", "-c", "printf hello"}, 24, 80, "ansi")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()

	read := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 64)
		var got []byte
		for {
			n, err := h.Master.Read(buf)
			if n > 0 {
				got = append(got, buf[:n]...)
				if bytes.Contains(got, []byte("hello")) {
					read <- got
					return
				}
			}
			if err != nil {
				read <- got
				return
			}
		}
	}()

	select {
	case got := <-read:
		if !bytes.Contains(got, []byte("hello")) {
			t.Fatalf("did not observe child output, got %q", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for child output")
	}
}

func TestResize(t *testing.T) {
	h, err := Spawn([]string{"/bin/sh", "-c", "sleep 2"}, 24, 80, "ansi")
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer h.Close()
	if err := h.Resize(30, 100); err != nil {
		t.Fatalf("Resize: %v", err)
	}
}
