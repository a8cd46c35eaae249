package server

import (
	"encoding/json"
	"fmt"
	"net"
	"syscall"
	"time"

	"termctl/internal/protocol"
	"termctl/internal/pty"
)

const signalTerm = syscall.SIGTERM

func handleOutput(sess *Session, req *protocol.Request) *protocol.Response {
	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	var screen string
	if req.Format == "ansi" {
		screen = sess.Screen.RenderANSI()
	} else {
		screen = sess.Screen.RenderASCII()
	}
	row, col := sess.Screen.Cursor()
	rows, cols := sess.Screen.Size()

	resp, err := protocol.OK(protocol.OutputData{
		Screen: screen,
		Cursor: protocol.Cursor{Row: row, Col: col},
		Size:   protocol.Size{Rows: rows, Cols: cols},
	})
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

func handleInput(sess *Session, req *protocol.Request) *protocol.Response {
	var data protocol.InputRequest
	if err := json.Unmarshal(req.Data, &data); err != nil {
		return protocol.ErrString("missing data field")
	}

	sess.Mu.Lock()
	_, err := sess.Harness.Master.Write([]byte(data.Data))
	sess.Mu.Unlock()
	if err != nil {
		return protocol.Err(fmt.Errorf("write input: %w", err))
	}

	resp, err := protocol.OK(protocol.MessageData{Message: "Input sent"})
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

func handleStatus(sess *Session, req *protocol.Request) *protocol.Response {
	sess.Mu.Lock()
	defer sess.Mu.Unlock()

	code, exited := sess.Harness.Poll()
	data := protocol.StatusData{Running: !exited}
	if exited {
		data.ExitCode = &code
	}

	if req.Activity != nil && *req.Activity {
		active := sess.Screen.Activity()
		if active {
			sess.Screen.ClearActivity()
		}
		data.Activity = &active
	}

	resp, err := protocol.OK(data)
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

func handleStop(srv *Server) *protocol.Response {
	srv.sess.Mu.Lock()
	_, exited := srv.sess.Harness.Poll()
	if !exited {
		srv.sess.Harness.Signal(signalTerm)
	}
	srv.sess.Mu.Unlock()

	srv.sess.RequestShutdown()
	srv.Close()

	resp, err := protocol.OK(protocol.MessageData{Message: "Shutting down"})
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

const waitPollInterval = 100 * time.Millisecond

// handleWait implements both WAIT modes and detects client disconnect by
// watching for EOF on conn in a background goroutine. Returning nil tells
// the server not to write a response: the connection is already gone.
func handleWait(conn net.Conn, sess *Session, req *protocol.Request) *protocol.Response {
	var wreq protocol.WaitRequest
	if len(req.Data) > 0 {
		json.Unmarshal(req.Data, &wreq)
	}

	disconnected := make(chan struct{})
	go func() {
		one := make([]byte, 1)
		conn.Read(one)
		close(disconnected)
	}()

	poll := func() *protocol.Response {
		sess.Mu.Lock()
		defer sess.Mu.Unlock()
		code, exited := sess.Harness.Poll()
		if wreq.Activity {
			if active := sess.Screen.Activity(); active {
				sess.Screen.ClearActivity()
				resp, err := protocol.OK(protocol.WaitData{Activity: boolPtr(true), Exited: boolPtr(exited)})
				if err != nil {
					return protocol.Err(err)
				}
				return resp
			}
			if exited {
				resp, err := protocol.OK(protocol.WaitData{Activity: boolPtr(false), Exited: boolPtr(true)})
				if err != nil {
					return protocol.Err(err)
				}
				return resp
			}
			return nil
		}
		if exited {
			resp, err := protocol.OK(protocol.WaitData{ExitCode: &code})
			if err != nil {
				return protocol.Err(err)
			}
			return resp
		}
		return nil
	}

	if resp := poll(); resp != nil {
		return resp
	}

	ticker := time.NewTicker(waitPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-disconnected:
			return nil
		case <-ticker.C:
			if resp := poll(); resp != nil {
				return resp
			}
		}
	}
}

func handleKill(sess *Session, req *protocol.Request) *protocol.Response {
	var data protocol.KillRequest
	if len(req.Data) > 0 {
		json.Unmarshal(req.Data, &data)
	}
	sigStr := data.Signal
	if sigStr == "" {
		sigStr = "TERM"
	}
	sig, err := pty.ParseSignal(sigStr)
	if err != nil {
		return protocol.Err(err)
	}

	sess.Mu.Lock()
	err = sess.Harness.Signal(sig)
	sess.Mu.Unlock()
	if err != nil {
		return protocol.Err(err)
	}

	resp, err := protocol.OK(protocol.MessageData{Message: fmt.Sprintf("Signal %s sent", sigStr)})
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

func handleResize(sess *Session, req *protocol.Request) *protocol.Response {
	var data protocol.ResizeRequest
	if err := json.Unmarshal(req.Data, &data); err != nil || data.Cols <= 0 || data.Rows <= 0 {
		return protocol.ErrString("missing or invalid cols/rows field")
	}
	if err := sess.Resize(data.Rows, data.Cols); err != nil {
		return protocol.Err(err)
	}
	resp, err := protocol.OK(protocol.MessageData{Message: fmt.Sprintf("Resized to %dx%d", data.Cols, data.Rows)})
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

func handleDebug(sess *Session, req *protocol.Request) *protocol.Response {
	var data protocol.DebugRequest
	if len(req.Data) > 0 {
		json.Unmarshal(req.Data, &data)
	}

	sess.Mu.Lock()
	entries, dropped := sess.Screen.Ring.Drain(data.Clear)
	sess.Mu.Unlock()

	out := make([]protocol.DebugEntry, len(entries))
	for i, e := range entries {
		out[i] = protocol.DebugEntry{Sequence: e.Sequence, RawHex: e.RawHex}
	}
	resp, err := protocol.OK(protocol.DebugData{Unhandled: out, Dropped: dropped})
	if err != nil {
		return protocol.Err(err)
	}
	return resp
}

func boolPtr(b bool) *bool { return &b }
