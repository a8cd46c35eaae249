package cmd

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newOutputCmd() *cobra.Command {
	var noColor bool
	var cursorMode string
	var socket *string

	cmd := &cobra.Command{
		Use:   "output",
		Short: "Print the current screen contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch cursorMode {
			case "", "none", "print", "inverse", "both":
			default:
				return fmt.Errorf("invalid --cursor %q, want one of none|print|inverse|both", cursorMode)
			}

			format := "ansi"
			if noColor {
				format = "ascii"
			}

			var data protocol.OutputData
			req := protocol.Request{Type: "OUTPUT", Format: format}
			if err := roundTrip(*socket, req, &data); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), applyCursorRendering(data, cursorMode))
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Request the plain ascii format instead of ansi")
	cmd.Flags().StringVar(&cursorMode, "cursor", "none", "Client-side cursor rendering: none|print|inverse|both")
	return cmd
}

// applyCursorRendering marks the cursor position in the OUTPUT screen string
// client-side: "print" appends a coordinate line, "inverse" reverse-videos
// the cell under the cursor, "both" does both.
func applyCursorRendering(data protocol.OutputData, mode string) string {
	screen := data.Screen
	switch mode {
	case "", "none":
		return screen
	case "print":
		return screen + fmt.Sprintf("\ncursor: row=%d col=%d\n", data.Cursor.Row, data.Cursor.Col)
	case "inverse", "both":
		lines := strings.Split(screen, "\n")
		row := data.Cursor.Row
		if row >= 0 && row < len(lines) {
			lines[row] = inverseCharAt(lines[row], data.Cursor.Col)
		}
		out := strings.Join(lines, "\n")
		if mode == "both" {
			out += fmt.Sprintf("\ncursor: row=%d col=%d\n", row, data.Cursor.Col)
		}
		return out
	}
	return screen
}

func inverseCharAt(line string, col int) string {
	runes := []rune(line)
	if col < 0 || col >= len(runes) {
		return line
	}
	style := termenv.String(string(runes[col])).Reverse()
	return string(runes[:col]) + style.String() + string(runes[col+1:])
}
