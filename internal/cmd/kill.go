package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newKillCmd() *cobra.Command {
	var signal string
	var socket *string

	cmd := &cobra.Command{
		Use:   "kill",
		Short: "Send a signal to the hosted process",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := protocol.Request{
				Type: "KILL",
				Data: mustMarshalData(protocol.KillRequest{Signal: signal}),
			}
			if err := roundTrip(*socket, req, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signal %s sent\n", signal)
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().StringVar(&signal, "signal", "TERM", "Signal name or number")
	return cmd
}
