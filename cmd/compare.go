package cmd

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/gridvalue/experiment"
	"github.com/samuelfneumann/gridvalue/experiment/tracker"
	"github.com/spf13/cobra"
)

var ErrDisagree = errors.New("evaluators disagree")

func CompareCommand() *cobra.Command {
	var tol float64
	var showProgress bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the Monte Carlo estimate with the exact value function",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var t []tracker.Tracker
			if showProgress {
				t = append(t, newProgress(cmd.ErrOrStderr(),
					config.Env.Rows*config.Env.Cols))
			}

			result, err := experiment.Run(config, t...)
			if err != nil {
				return err
			}

			au := colors()
			out := cmd.OutOrStdout()
			writeGrid(out, au, "Monte Carlo", result.MonteCarlo, result.StdErr)
			fmt.Fprintln(out)
			writeGrid(out, au, "Linear System", result.LinearSystem, nil)
			fmt.Fprintln(out)

			worst := result.Worst()
			if !result.Agree(tol) {
				fmt.Fprintf(out, "%v max |difference| %.4f at %v > %v\n",
					au.Red("FAIL"), result.MaxAbsDiff, worst, tol)
				return fmt.Errorf("compare: %w: max |difference| %.4f at %v",
					ErrDisagree, result.MaxAbsDiff, worst)
			}

			fmt.Fprintf(out, "%v max |difference| %.4f at %v <= %v\n",
				au.Green("OK"), result.MaxAbsDiff, worst, tol)
			return nil
		},
	}
	cmd.Flags().Float64Var(&tol, "tolerance", 0.2, "Largest allowed absolute difference between the evaluators")
	cmd.Flags().BoolVar(&showProgress, "progress", true, "Show a progress bar while evaluating states")

	return cmd
}
