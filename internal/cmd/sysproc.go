package cmd

import "syscall"

// detachedSysProcAttr starts the daemon in a new session so it survives the
// parent's exit and is not killed by the parent's controlling-terminal
// signals, matching the Child Process Harness's own Setsid use in
// internal/pty.Spawn.
func detachedSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
