package cmd

import (
	"fmt"
	"strconv"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/environment/gridworld"
	"github.com/samuelfneumann/gridvalue/experiment"
	"github.com/spf13/cobra"
)

func RolloutCommand() *cobra.Command {
	var sample int

	cmd := &cobra.Command{
		Use:   "rollout [ROW COL]",
		Short: "Print a single Monte Carlo rollout",
		Long: "Print a single Monte Carlo rollout. If no starting state is " +
			"given, one is sampled uniformly from the grid using the " +
			"rollout's seed.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("rollout: want ROW COL or no arguments, "+
					"have %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := startState(args, sample)
			if err != nil {
				return err
			}

			steps, err := experiment.Rollout(config, start, sample)
			if err != nil {
				return err
			}

			writeTrajectory(cmd.OutOrStdout(), colors(), steps)
			return nil
		},
	}
	cmd.Flags().IntVar(&sample, "sample", 0, "Index of the rollout, which seeds its random source")

	return cmd
}

// startState parses the starting state from args, or samples one if
// args is empty
func startState(args []string, sample int) (env.State, error) {
	if len(args) == 0 {
		_, g, err := config.Env.Create()
		if err != nil {
			return env.State{}, err
		}
		return gridworld.NewStarter(g, uint64(sample)).Start(), nil
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return env.State{}, fmt.Errorf("rollout: bad row %q: %v", args[0], err)
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return env.State{}, fmt.Errorf("rollout: bad column %q: %v", args[1],
			err)
	}
	return env.State{Row: row, Col: col}, nil
}
