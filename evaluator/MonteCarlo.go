package evaluator

import (
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/policy"
	ts "github.com/samuelfneumann/gridvalue/timestep"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default Monte Carlo configuration
const (
	DefaultIterations int = 100
	DefaultSamples    int = 1000
	DefaultWorkers    int = 1
)

// MonteCarloConfig configures a MonteCarlo evaluator. Iterations is
// the number of steps in each rollout and Samples is the number of
// rollouts averaged per starting state. Workers is the number of
// goroutines rollouts are spread over, 0 is treated as 1.
type MonteCarloConfig struct {
	Iterations int
	Samples    int
	Workers    int
}

// DefaultMonteCarloConfig returns the default MonteCarloConfig
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		Iterations: DefaultIterations,
		Samples:    DefaultSamples,
		Workers:    DefaultWorkers,
	}
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c MonteCarloConfig) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("validate: %w: iterations must be positive, "+
			"have %d", ErrConfig, c.Iterations)
	}
	if c.Samples < 1 {
		return fmt.Errorf("validate: %w: samples must be positive, have %d",
			ErrConfig, c.Samples)
	}
	if c.Workers < 0 {
		return fmt.Errorf("validate: %w: workers must be non-negative, "+
			"have %d", ErrConfig, c.Workers)
	}
	return nil
}

// Estimate is a Monte Carlo estimate of the value of a state
type Estimate struct {
	Mean   float64
	StdErr float64
}

// MonteCarlo evaluates a policy by averaging the discounted return of
// many fixed-length rollouts from each starting state.
//
// Rollout k of every starting state uses a random source seeded with
// k, so estimates are reproducible. Rollouts share only read-only
// state and may run concurrently. Their returns are averaged in
// rollout order, so estimates do not depend on the number of workers.
type MonteCarlo struct {
	model   env.Model
	lattice Lattice
	dists   []policy.Distribution
	config  MonteCarloConfig
}

// NewMonteCarlo returns a new MonteCarlo evaluator of policy p on
// model m. The policy's distribution over actions is queried once for
// each state and must be normalized.
func NewMonteCarlo(m env.Model, p policy.Policy, l Lattice,
	c MonteCarloConfig) (*MonteCarlo, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newMonteCarlo: %w", err)
	}
	if c.Workers == 0 {
		c.Workers = 1
	}

	dists, err := distributions("monteCarlo", p, l)
	if err != nil {
		return nil, fmt.Errorf("newMonteCarlo: %w", err)
	}

	return &MonteCarlo{m, l, dists, c}, nil
}

// Config returns the configuration of the evaluator
func (m *MonteCarlo) Config() MonteCarloConfig {
	return m.config
}

// Return returns the discounted return of rollout number sample
// starting from state start
func (m *MonteCarlo) Return(start env.State, sample int) (float64, error) {
	return m.rollout(start, sample, nil)
}

// Trajectory returns every step of rollout number sample starting
// from state start. The discounted return of the trajectory equals
// Return(start, sample).
func (m *MonteCarlo) Trajectory(start env.State,
	sample int) ([]ts.TimeStep, error) {
	steps := make([]ts.TimeStep, 0, m.config.Iterations)
	_, err := m.rollout(start, sample, func(t ts.TimeStep) {
		steps = append(steps, t)
	})
	if err != nil {
		return nil, err
	}
	return steps, nil
}

// Evaluate estimates the value of state start
func (m *MonteCarlo) Evaluate(start env.State) (Estimate, error) {
	if !m.lattice.Contains(start) {
		return Estimate{}, fmt.Errorf("evaluate: monteCarlo: %w: %v",
			ErrOutOfBounds, start)
	}

	returns := make([]float64, m.config.Samples)

	if m.config.Workers == 1 {
		for k := range returns {
			ret, err := m.rollout(start, k, nil)
			if err != nil {
				return Estimate{}, fmt.Errorf("evaluate: %w", err)
			}
			returns[k] = ret
		}
	} else {
		var g errgroup.Group
		g.SetLimit(m.config.Workers)
		for k := range returns {
			k := k
			g.Go(func() error {
				ret, err := m.rollout(start, k, nil)
				returns[k] = ret
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return Estimate{}, fmt.Errorf("evaluate: %w", err)
		}
	}

	if len(returns) == 1 {
		return Estimate{Mean: returns[0]}, nil
	}
	mean, std := stat.MeanStdDev(returns, nil)
	return Estimate{mean, stat.StdErr(std, float64(len(returns)))}, nil
}

// EvaluateAll estimates the value of every state and returns the
// estimates as a rows x cols matrix. States are evaluated
// independently in flattened order. If report is not nil, it is
// called with the estimate of each state as soon as it is computed.
func (m *MonteCarlo) EvaluateAll(report func(env.State,
	Estimate)) (*mat.Dense, error) {
	r, c := m.lattice.Dims()
	values := mat.NewDense(r, c, nil)

	for i := 0; i < m.lattice.Len(); i++ {
		s := m.lattice.Unflatten(i)
		est, err := m.Evaluate(s)
		if err != nil {
			return nil, fmt.Errorf("evaluateAll: %w", err)
		}

		values.Set(s.Row, s.Col, est.Mean)
		if report != nil {
			report(s, est)
		}
	}
	return values, nil
}

// rollout simulates rollout number sample from state start and
// returns its discounted return. If record is not nil, it is called
// with every step of the rollout.
func (m *MonteCarlo) rollout(start env.State, sample int,
	record func(ts.TimeStep)) (float64, error) {
	if !m.lattice.Contains(start) {
		return 0, fmt.Errorf("rollout: monteCarlo: %w: %v", ErrOutOfBounds,
			start)
	}

	source := rand.NewSource(uint64(sample))

	// Action samplers are created lazily, one per visited state, and
	// all draw from the rollout's source
	samplers := make([]*distuv.Categorical, len(m.dists))

	gamma := m.model.Discount()
	state := start
	discount := 1.0
	ret := 0.0

	for i := 0; i < m.config.Iterations; i++ {
		idx := m.lattice.Flatten(state)
		if samplers[idx] == nil {
			c := distuv.NewCategorical(m.dists[idx].Weights(), source)
			samplers[idx] = &c
		}
		action := env.Action(samplers[idx].Rand())

		reward := m.model.Reward(state, action)
		next := m.model.Transition(state, action)
		if !m.lattice.Contains(next) {
			return 0, fmt.Errorf("rollout: monteCarlo: sample %d: %w: "+
				"transition(%v, %v) = %v", sample, ErrOutOfBounds, state,
				action, next)
		}

		ret += discount * reward
		if record != nil {
			record(ts.New(stepType(i, m.config.Iterations), i, state, action,
				reward, next, discount))
		}

		discount *= gamma
		state = next
	}

	return ret, nil
}

// stepType returns the type of step i in a rollout of n steps
func stepType(i, n int) ts.StepType {
	switch i {
	case n - 1:
		return ts.Last
	case 0:
		return ts.First
	default:
		return ts.Mid
	}
}
