package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newStopCmd() *cobra.Command {
	var socket *string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Signal the hosted process to terminate and shut down the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := roundTrip(*socket, protocol.Request{Type: "STOP"}, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Shutting down")
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	return cmd
}
