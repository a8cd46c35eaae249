package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"termctl/internal/config"
	"termctl/internal/protocol"
)

// loadedConfig is the on-disk defaults file (~/.termctl/config.yaml), read
// once per invocation and consulted by any flag left unset on the command
// line. Flags always win over the file.
func loadedConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		return &config.Config{}
	}
	return cfg
}

// addSocketFlag registers the --socket flag shared by every client command.
// If left unset, it falls back to the config file's socket default; if that
// is also empty, resolveSocket reports an error when the command runs.
func addSocketFlag(cmd *cobra.Command) *string {
	var socket string
	cmd.Flags().StringVar(&socket, "socket", "", "Path to the termctl control socket (defaults to the config file's socket)")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if socket == "" {
			socket = loadedConfig().Socket
		}
		if socket == "" {
			return fmt.Errorf("missing --socket (and no default in %s)", config.ConfigDir())
		}
		return nil
	}
	return &socket
}

// dialEndpoint connects to the control server at path, wrapping transport
// failures with the OS error string and the endpoint path per the error
// reporting rules.
func dialEndpoint(path string) (net.Conn, error) {
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", path, err)
	}
	return conn, nil
}

// sendRequest writes req to conn and reads back one response line.
func sendRequest(conn net.Conn, req protocol.Request) (*protocol.Response, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	if _, err := conn.Write(append(raw, '\n')); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var resp protocol.Response
	if err := json.Unmarshal([]byte(line), &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// roundTrip dials path, sends req, and returns the decoded response data
// into out (when non-nil). It returns an error both for transport failure
// and for an {status:"error"} response, so callers can treat both uniformly.
func roundTrip(path string, req protocol.Request, out any) error {
	conn, err := dialEndpoint(path)
	if err != nil {
		return err
	}
	defer conn.Close()

	resp, err := sendRequest(conn, req)
	if err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("%s", resp.Error)
	}
	if out != nil && len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, out); err != nil {
			return fmt.Errorf("decode %s data: %w", req.Type, err)
		}
	}
	return nil
}

// mustMarshalData encodes a protocol payload struct. These types are all
// plain data with no cyclic or unsupported fields, so marshaling cannot
// fail in practice.
func mustMarshalData(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// parseSize parses a "COLSxROWS" flag value.
func parseSize(s string) (cols, rows int, err error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid --size %q, want COLSxROWS", s)
	}
	cols, err = strconv.Atoi(parts[0])
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("invalid --size %q: bad cols", s)
	}
	rows, err = strconv.Atoi(parts[1])
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid --size %q: bad rows", s)
	}
	return cols, rows, nil
}

// unescapeText expands C-style escapes in --text input:
// \n \r \t \a \b \f \v \\ \e (or \E) and \xHH. Any other backslash escape is passed
// through verbatim (backslash and the following byte both kept).
func unescapeText(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case 'r':
			b.WriteByte('\r')
			i++
		case 't':
			b.WriteByte('\t')
			i++
		case 'a':
			b.WriteByte('\a')
			i++
		case 'b':
			b.WriteByte('\b')
			i++
		case 'f':
			b.WriteByte('\f')
			i++
		case 'v':
			b.WriteByte('\v')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		case 'e', 'E':
			b.WriteByte(0x1B)
			i++
		case 'x':
			if i+3 < len(s) {
				if n, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(n))
					i += 3
					continue
				}
			}
			b.WriteByte(s[i])
		default:
			b.WriteByte(s[i])
			b.WriteByte(s[i+1])
			i++
		}
	}
	return b.String()
}
