// Package server implements the control server: a single-threaded acceptor
// that handles one client connection to completion before accepting the
// next, dispatching each request line to the handler for its type.
package server

import (
	"bufio"
	"log"
	"net"

	"termctl/internal/hostsession"
	"termctl/internal/protocol"
)

// Server owns the endpoint listener and dispatches requests against a
// Session. Exactly one connection is handled at a time; the next Accept
// only happens once the current one's response has been written and the
// connection closed.
type Server struct {
	sess *Session
	ln   net.Listener
}

// Session is an alias so this package's exported API reads in terms of the
// hostsession type without a direct cyclical re-export.
type Session = hostsession.Session

// New builds a Server around sess, serving on ln.
func New(sess *Session, ln net.Listener) *Server {
	return &Server{sess: sess, ln: ln}
}

// Serve accepts connections until the listener is closed (by Close, called
// from the STOP handler) or returns a non-shutdown error.
func (srv *Server) Serve() error {
	for {
		conn, err := srv.ln.Accept()
		if err != nil {
			if srv.sess.ShuttingDown() {
				return nil
			}
			return err
		}
		srv.handleConn(conn)
	}
}

// Close unblocks a pending Accept, used by the STOP handler to end Serve
// without a polling sleep.
func (srv *Server) Close() error {
	return srv.ln.Close()
}

func (srv *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	req, err := protocol.ReadRequest(reader)
	if err != nil {
		protocol.WriteResponse(conn, protocol.Err(err))
		return
	}

	resp := srv.dispatch(conn, req)
	if resp == nil {
		// WAIT detected client disconnect; the connection is already gone.
		return
	}
	if err := protocol.WriteResponse(conn, resp); err != nil {
		log.Printf("termctl: write response: %v", err)
	}
}

func (srv *Server) dispatch(conn net.Conn, req *protocol.Request) *protocol.Response {
	switch req.Type {
	case "OUTPUT":
		return handleOutput(srv.sess, req)
	case "INPUT":
		return handleInput(srv.sess, req)
	case "STATUS":
		return handleStatus(srv.sess, req)
	case "STOP":
		return handleStop(srv)
	case "WAIT":
		return handleWait(conn, srv.sess, req)
	case "KILL":
		return handleKill(srv.sess, req)
	case "RESIZE":
		return handleResize(srv.sess, req)
	case "DEBUG":
		return handleDebug(srv.sess, req)
	default:
		return protocol.ErrString("unknown request type: " + req.Type)
	}
}
