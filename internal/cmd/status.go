package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"termctl/internal/protocol"
)

func newStatusCmd() *cobra.Command {
	var quiet bool
	var socket *string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the hosted process is running",
		RunE: func(cmd *cobra.Command, args []string) error {
			activity := !quiet
			req := protocol.Request{Type: "STATUS", Activity: &activity}

			var data protocol.StatusData
			if err := roundTrip(*socket, req, &data); err != nil {
				return err
			}

			// A non-running child prints its exit code (when known) and
			// exits 1, so shell scripts can poll with `status --quiet`.
			if !data.Running {
				if data.ExitCode != nil {
					fmt.Fprintln(cmd.OutOrStdout(), *data.ExitCode)
				}
				os.Exit(1)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "running")
			if data.Activity != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "activity: %v\n", *data.Activity)
			}
			return nil
		},
	}
	socket = addSocketFlag(cmd)
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Don't request activity tracking")
	return cmd
}
