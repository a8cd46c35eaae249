package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newDebugCmd() *cobra.Command {
	var clear bool
	var socket *string

	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Print unhandled escape sequences captured in the debug ring",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := protocol.Request{
				Type: "DEBUG",
				Data: mustMarshalData(protocol.DebugRequest{Clear: clear}),
			}

			var data protocol.DebugData
			if err := roundTrip(*socket, req, &data); err != nil {
				return err
			}

			for _, e := range data.Unhandled {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", e.Sequence, e.RawHex)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dropped: %d\n", data.Dropped)
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear the ring and drop counter after reading")
	return cmd
}
