// Package experiment implements functionality for running a policy
// evaluation experiment: evaluating one policy on one gridworld with
// the Monte Carlo and linear system evaluators and comparing the
// results.
package experiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/environment/envconfig"
	"github.com/samuelfneumann/gridvalue/environment/gridworld"
	"github.com/samuelfneumann/gridvalue/evaluator"
	"github.com/samuelfneumann/gridvalue/experiment/tracker"
	"github.com/samuelfneumann/gridvalue/policy"
	ts "github.com/samuelfneumann/gridvalue/timestep"
	"github.com/samuelfneumann/gridvalue/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

var ErrConfig = errors.New("invalid experiment configuration")

// PolicyName stores the names of policies that can be configured with
// this package
type PolicyName string

// Policies available for configuration. Every policy but Uniform
// scores the next states of each action by their value under the
// uniform policy.
const (
	Uniform PolicyName = "uniform"
	Greedy  PolicyName = "greedy"
	EGreedy PolicyName = "egreedy"
	Softmax PolicyName = "softmax"
)

// Policies lists all configurable policies
var Policies = []PolicyName{Uniform, Greedy, EGreedy, Softmax}

// PolicyConfig implements a configuration of a policy. Epsilon is only
// used by EGreedy and Temperature only by Softmax. Tolerance is the
// absolute tolerance within which action values are considered tied
// by Greedy and EGreedy.
type PolicyConfig struct {
	Name        PolicyName
	Epsilon     float64
	Temperature float64
	Tolerance   float64
}

// DefaultPolicyConfig returns the configuration of the uniform policy
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		Name:        Uniform,
		Epsilon:     0.1,
		Temperature: 1.0,
		Tolerance:   policy.Tolerance,
	}
}

// Create returns the policy described by the PolicyConfig on model m
// with grid g
func (c PolicyConfig) Create(m env.Model, g gridworld.Grid) (policy.Policy,
	error) {
	var scorer policy.Scorer
	var err error

	switch c.Name {
	case Uniform:
		return policy.NewUniform(), nil

	case Greedy:
		scorer, err = policy.Greedy(c.Tolerance)

	case EGreedy:
		scorer, err = policy.EGreedy(c.Epsilon, c.Tolerance)

	case Softmax:
		scorer, err = policy.Softmax(c.Temperature)

	default:
		return nil, fmt.Errorf("create: %w: no such policy %q", ErrConfig,
			c.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("create: %w: %v", ErrConfig, err)
	}

	values, err := evaluator.NewLinearSystem(m, policy.NewUniform(),
		g).Solve()
	if err != nil {
		return nil, fmt.Errorf("create: could not evaluate uniform policy: "+
			"%w", err)
	}

	p, err := policy.NewHeuristic(values, m, g, scorer)
	if err != nil {
		return nil, fmt.Errorf("create: %w", err)
	}
	return p, nil
}

// Config represents a configuration of an experiment
type Config struct {
	Env        envconfig.Config
	Policy     PolicyConfig
	MonteCarlo evaluator.MonteCarloConfig
}

// DefaultConfig returns the configuration of the canonical experiment:
// the uniform policy on the canonical gridworld, evaluated with the
// default Monte Carlo configuration
func DefaultConfig() Config {
	return Config{
		Env:        envconfig.Canonical(),
		Policy:     DefaultPolicyConfig(),
		MonteCarlo: evaluator.DefaultMonteCarloConfig(),
	}
}

// Load reads a JSON Config from the file at path
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("load: %s: %w", path, err)
	}
	return c, nil
}

// Decode reads a JSON Config from r. Sections missing from the JSON
// keep their default values, sections present replace the default
// section entirely. Unknown fields are rejected.
func Decode(r io.Reader) (Config, error) {
	var sections struct {
		Env        *envconfig.Config
		Policy     *PolicyConfig
		MonteCarlo *evaluator.MonteCarloConfig
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sections); err != nil {
		return Config{}, fmt.Errorf("decode: %w: %v", ErrConfig, err)
	}

	c := DefaultConfig()
	if sections.Env != nil {
		c.Env = *sections.Env
	}
	if sections.Policy != nil {
		c.Policy = *sections.Policy
	}
	if sections.MonteCarlo != nil {
		c.MonteCarlo = *sections.MonteCarlo
	}
	return c, nil
}

// Encode writes c to w as indented JSON
func (c Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %v", err)
	}
	return nil
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if err := c.Env.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.MonteCarlo.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}

	switch c.Policy.Name {
	case Uniform, Greedy, EGreedy, Softmax:
	default:
		return fmt.Errorf("validate: %w: no such policy %q", ErrConfig,
			c.Policy.Name)
	}
	return nil
}

// setup creates the model, grid, and policy described by c
func (c Config) setup() (env.Model, gridworld.Grid, policy.Policy, error) {
	m, g, err := c.Env.Create()
	if err != nil {
		return nil, gridworld.Grid{}, nil, err
	}

	p, err := c.Policy.Create(m, g)
	if err != nil {
		return nil, gridworld.Grid{}, nil, err
	}
	return m, g, p, nil
}

// LinearSystem evaluates the configured policy by solving the Bellman
// equations
func LinearSystem(c Config) (*mat.Dense, error) {
	m, g, p, err := c.setup()
	if err != nil {
		return nil, fmt.Errorf("linearSystem: %w", err)
	}

	v, err := evaluator.NewLinearSystem(m, p, g).Solve()
	if err != nil {
		return nil, fmt.Errorf("linearSystem: %w", err)
	}
	return v, nil
}

// MonteCarlo evaluates the configured policy with Monte Carlo
// rollouts and returns the estimated values and their standard errors.
// The estimate of each state is sent to every Tracker as soon as it
// is computed, and each Tracker is saved once all states have been
// evaluated.
func MonteCarlo(c Config, t ...tracker.Tracker) (*mat.Dense, *mat.Dense,
	error) {
	m, g, p, err := c.setup()
	if err != nil {
		return nil, nil, fmt.Errorf("monteCarlo: %w", err)
	}

	mc, err := evaluator.NewMonteCarlo(m, p, g, c.MonteCarlo)
	if err != nil {
		return nil, nil, fmt.Errorf("monteCarlo: %w", err)
	}

	rows, cols := g.Dims()
	stdErr := mat.NewDense(rows, cols, nil)
	values, err := mc.EvaluateAll(func(s env.State, est evaluator.Estimate) {
		stdErr.Set(s.Row, s.Col, est.StdErr)
		for _, tr := range t {
			tr.Track(s, est)
		}
	})
	if err != nil {
		return nil, nil, fmt.Errorf("monteCarlo: %w", err)
	}

	for _, tr := range t {
		if err := tr.Save(); err != nil {
			return nil, nil, fmt.Errorf("monteCarlo: %w", err)
		}
	}
	return values, stdErr, nil
}

// Rollout returns the trajectory of Monte Carlo rollout number sample
// of the configured policy starting from state start
func Rollout(c Config, start env.State, sample int) ([]ts.TimeStep, error) {
	m, g, p, err := c.setup()
	if err != nil {
		return nil, fmt.Errorf("rollout: %w", err)
	}

	mc, err := evaluator.NewMonteCarlo(m, p, g, c.MonteCarlo)
	if err != nil {
		return nil, fmt.Errorf("rollout: %w", err)
	}

	steps, err := mc.Trajectory(start, sample)
	if err != nil {
		return nil, fmt.Errorf("rollout: %w", err)
	}
	return steps, nil
}

// Result is the result of evaluating a policy with both evaluators
type Result struct {
	MonteCarlo   *mat.Dense
	StdErr       *mat.Dense
	LinearSystem *mat.Dense

	// MaxAbsDiff is the largest absolute difference between the
	// Monte Carlo estimate and the exact value of any state
	MaxAbsDiff float64
}

// Agree returns whether the Monte Carlo estimate of every state is
// within tol of its exact value
func (r Result) Agree(tol float64) bool {
	return r.MaxAbsDiff <= tol
}

// Worst returns the state with the largest absolute difference between
// its Monte Carlo estimate and its exact value
func (r Result) Worst() env.State {
	var worst env.State
	largest := math.Inf(-1)

	rows, cols := r.MonteCarlo.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			diff := math.Abs(r.MonteCarlo.At(i, j) - r.LinearSystem.At(i, j))
			if diff > largest {
				largest = diff
				worst = env.State{Row: i, Col: j}
			}
		}
	}
	return worst
}

// Run runs the experiment described by c, evaluating the configured
// policy with both evaluators. Trackers are passed to the Monte Carlo
// evaluation.
func Run(c Config, t ...tracker.Tracker) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	exact, err := LinearSystem(c)
	if err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	values, stdErr, err := MonteCarlo(c, t...)
	if err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	diff, err := matutils.MaxAbsDiff(values, exact)
	if err != nil {
		return Result{}, fmt.Errorf("run: %w", err)
	}

	return Result{
		MonteCarlo:   values,
		StdErr:       stdErr,
		LinearSystem: exact,
		MaxAbsDiff:   diff,
	}, nil
}
