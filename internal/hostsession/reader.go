package hostsession

const readBufSize = 4096

// RunReader drains PTY output into the Screen and flushes Screen-generated
// replies back to the PTY master, until a read fails (the PTY hangs up) or
// shutdown is requested; it then returns once the child has exited.
// Intended to run in its own goroutine alongside the Control Server.
//
// A plain blocking Read on the PTY master is this host's event-driven loop:
// Read unblocks exactly when the master becomes readable (data, or EOF on
// hangup), so there is no need for an explicit readiness poll. Child-exit
// polling happens the same way, via Harness.Done(), which is closed by the
// Harness's own background reap goroutine without this loop busy-spinning.
func RunReader(sess *Session) {
	buf := make([]byte, readBufSize)
	for !sess.ShuttingDown() {
		n, err := sess.Harness.Master.Read(buf)
		if n > 0 {
			sess.Mu.Lock()
			sess.Screen.Write(buf[:n])
			if sess.Tee != nil {
				sess.Tee.Write(buf[:n])
			}
			replies := sess.Screen.TakeReplies()
			sess.Mu.Unlock()

			for _, reply := range replies {
				// PTY write errors are swallowed: the PTY may legitimately
				// close before the child is reaped, and exit polling below
				// is the authoritative termination signal.
				sess.Harness.Master.Write(reply)
			}
		}
		if err != nil {
			break
		}
	}
	<-sess.Harness.Done()
}
