package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newResizeCmd() *cobra.Command {
	var size string
	var socket *string

	cmd := &cobra.Command{
		Use:   "resize",
		Short: "Resize the hosted PTY and terminal grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, rows, err := parseSize(size)
			if err != nil {
				return err
			}
			req := protocol.Request{
				Type: "RESIZE",
				Data: mustMarshalData(protocol.ResizeRequest{Cols: cols, Rows: rows}),
			}
			if err := roundTrip(*socket, req, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Resized to %dx%d\n", cols, rows)
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().StringVar(&size, "size", "", "New size as COLSxROWS")
	cmd.MarkFlagRequired("size")
	return cmd
}
