package cmd

import (
	"github.com/samuelfneumann/gridvalue/experiment"
	"github.com/samuelfneumann/gridvalue/experiment/tracker"
	"github.com/samuelfneumann/gridvalue/experiment/trackers"
	"github.com/spf13/cobra"
)

func MonteCarloCommand() *cobra.Command {
	var showProgress bool
	var savePath string

	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Estimate the value function with Monte Carlo rollouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var t []tracker.Tracker
			if showProgress {
				t = append(t, newProgress(cmd.ErrOrStderr(),
					config.Env.Rows*config.Env.Cols))
			}
			if savePath != "" {
				t = append(t, trackers.NewValues(savePath))
			}

			values, stdErr, err := experiment.MonteCarlo(config, t...)
			if err != nil {
				return err
			}

			writeGrid(cmd.OutOrStdout(), colors(), "Monte Carlo", values, stdErr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar while evaluating states")
	cmd.Flags().StringVar(&savePath, "save", "", "Path to save the estimate of each state")

	return cmd
}
