// Package cmd implements the gridvalue command line interface
package cmd

import "github.com/spf13/cobra"

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gridvalue",
		Short:         "Evaluate policies on gridworlds",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return UpdateConfig(cmd)
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		MonteCarloCommand(),
		LinearCommand(),
		CompareCommand(),
		RolloutCommand(),
		ConfigCommand(),
	)

	return cmd
}
