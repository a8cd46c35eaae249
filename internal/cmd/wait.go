package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newWaitCmd() *cobra.Command {
	var quiet bool
	var socket *string

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until activity or process exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := protocol.Request{
				Type: "WAIT",
				Data: mustMarshalData(protocol.WaitRequest{Activity: !quiet}),
			}

			var data protocol.WaitData
			if err := roundTrip(*socket, req, &data); err != nil {
				return err
			}

			if data.ExitCode != nil {
				// Print the hosted child's exit code, but exit 0: this
				// process's own exit status reports success of the wait
				// itself, not the child's outcome.
				fmt.Fprintln(cmd.OutOrStdout(), *data.ExitCode)
				return nil
			}
			if data.Activity != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "activity: %v\n", *data.Activity)
			}
			if data.Exited != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "exited: %v\n", *data.Exited)
			}
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Wait in exit-mode instead of activity-mode")
	return cmd
}
