package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"termctl/internal/protocol"
)

func newInputCmd() *cobra.Command {
	var text string
	var password bool
	var socket *string

	cmd := &cobra.Command{
		Use:   "input",
		Short: "Send input to the hosted process",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := resolveInputData(cmd, text, password)
			if err != nil {
				return err
			}

			req := protocol.Request{
				Type: "INPUT",
				Data: mustMarshalData(protocol.InputRequest{Data: data}),
			}
			return roundTrip(*socket, req, nil)
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().StringVar(&text, "text", "", `Literal text to send (supports \n \r \t \a \b \f \v \\ \e \xHH escapes)`)
	cmd.Flags().BoolVar(&password, "password", false, "Read a secret from the terminal with echo off, appending \\r")
	return cmd
}

func resolveInputData(cmd *cobra.Command, text string, password bool) (string, error) {
	if password {
		fd := int(os.Stdin.Fd())
		secret, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
		return string(secret) + "\r", nil
	}

	if text != "" {
		return unescapeText(text), nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("no input given: pass --text, --password, or pipe stdin")
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(raw), nil
}
