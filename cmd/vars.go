package cmd

import (
	"github.com/samuelfneumann/gridvalue/evaluator"
	"github.com/samuelfneumann/gridvalue/experiment"
	"github.com/spf13/cobra"
)

var (
	config     experiment.Config = experiment.DefaultConfig()
	configPath string
	noColor    bool

	discount    float64
	policyName  string
	epsilon     float64
	temperature float64
	tolerance   float64

	iterations int
	samples    int
	workers    int
)

func AddFlags(cmd *cobra.Command) {
	defaults := experiment.DefaultConfig()

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON experiment configuration (default canonical gridworld)")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	cmd.PersistentFlags().Float64Var(&discount, "discount", defaults.Env.Discount, "Discount factor in (0, 1)")
	cmd.PersistentFlags().StringVar(&policyName, "policy", string(defaults.Policy.Name), "Policy to evaluate: uniform, greedy, egreedy or softmax")
	cmd.PersistentFlags().Float64Var(&epsilon, "epsilon", defaults.Policy.Epsilon, "Exploration probability of the egreedy policy")
	cmd.PersistentFlags().Float64Var(&temperature, "temperature", defaults.Policy.Temperature, "Temperature of the softmax policy")
	cmd.PersistentFlags().Float64Var(&tolerance, "tie-tolerance", defaults.Policy.Tolerance, "Tolerance within which greedy action values tie")

	cmd.PersistentFlags().IntVar(&iterations, "iterations", evaluator.DefaultIterations, "Number of steps in each Monte Carlo rollout")
	cmd.PersistentFlags().IntVar(&samples, "samples", evaluator.DefaultSamples, "Number of Monte Carlo rollouts per state")
	cmd.PersistentFlags().IntVar(&workers, "workers", evaluator.DefaultWorkers, "Number of goroutines running Monte Carlo rollouts")
}

// UpdateConfig loads the configuration file, if any, and overrides it
// with every flag set on the command line
func UpdateConfig(cmd *cobra.Command) error {
	c := experiment.DefaultConfig()
	if configPath != "" {
		var err error
		if c, err = experiment.Load(configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("discount") {
		c.Env.Discount = discount
	}
	if flags.Changed("policy") {
		c.Policy.Name = experiment.PolicyName(policyName)
	}
	if flags.Changed("epsilon") {
		c.Policy.Epsilon = epsilon
	}
	if flags.Changed("temperature") {
		c.Policy.Temperature = temperature
	}
	if flags.Changed("tie-tolerance") {
		c.Policy.Tolerance = tolerance
	}
	if flags.Changed("iterations") {
		c.MonteCarlo.Iterations = iterations
	}
	if flags.Changed("samples") {
		c.MonteCarlo.Samples = samples
	}
	if flags.Changed("workers") {
		c.MonteCarlo.Workers = workers
	}

	if err := c.Validate(); err != nil {
		return err
	}
	config = c
	return nil
}
