package cmd

import (
	"github.com/samuelfneumann/gridvalue/experiment"
	"github.com/spf13/cobra"
)

func LinearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linear",
		Short: "Solve the Bellman equations for the exact value function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := experiment.LinearSystem(config)
			if err != nil {
				return err
			}

			writeGrid(cmd.OutOrStdout(), colors(), "Linear System", values, nil)
			return nil
		},
	}

	return cmd
}
