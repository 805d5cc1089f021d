package cmd

import "github.com/spf13/cobra"

func ConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective experiment configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Encode(cmd.OutOrStdout())
		},
	}

	return cmd
}
