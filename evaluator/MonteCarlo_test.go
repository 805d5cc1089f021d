package evaluator_test

import (
	"errors"
	"math"
	"testing"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/evaluator"
	"github.com/samuelfneumann/gridvalue/policy"
	ts "github.com/samuelfneumann/gridvalue/timestep"
	"github.com/samuelfneumann/gridvalue/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

func TestMonteCarloConfig(t *testing.T) {
	c := evaluator.DefaultMonteCarloConfig()
	if c.Iterations != 100 || c.Samples != 1000 || c.Workers != 1 {
		t.Errorf("defaultMonteCarloConfig: want {100 1000 1}, have %v", c)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}

	bad := []evaluator.MonteCarloConfig{
		{Iterations: 0, Samples: 10},
		{Iterations: 10, Samples: 0},
		{Iterations: 10, Samples: 10, Workers: -1},
	}
	w := world(t, 2, 2, 0.9)
	for _, c := range bad {
		if err := c.Validate(); !errors.Is(err, evaluator.ErrConfig) {
			t.Errorf("validate(%v): expected ErrConfig, got %v", c, err)
		}
		_, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(), c)
		if !errors.Is(err, evaluator.ErrConfig) {
			t.Errorf("newMonteCarlo(%v): expected ErrConfig, got %v", c, err)
		}
	}

	// Zero workers runs rollouts on a single goroutine
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		evaluator.MonteCarloConfig{Iterations: 5, Samples: 5})
	if err != nil {
		t.Fatal(err)
	}
	if mc.Config().Workers != 1 {
		t.Errorf("config: want 1 worker, have %d", mc.Config().Workers)
	}
}

func TestMonteCarloDeterministic(t *testing.T) {
	w := canonical(t)
	config := evaluator.MonteCarloConfig{Iterations: 50, Samples: 200}

	evaluate := func(workers int) *mat.Dense {
		c := config
		c.Workers = workers
		mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(), c)
		if err != nil {
			t.Fatal(err)
		}
		v, err := mc.EvaluateAll(nil)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	first := evaluate(1)
	for _, workers := range []int{1, 2, 8} {
		if v := evaluate(workers); !mat.Equal(first, v) {
			t.Errorf("evaluateAll: %d workers: estimates differ from a "+
				"sequential run:\n%v\n%v", workers, matutils.Format(first),
				matutils.Format(v))
		}
	}
}

func TestMonteCarloTrajectory(t *testing.T) {
	w := canonical(t)
	config := evaluator.MonteCarloConfig{Iterations: 30, Samples: 1}
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		config)
	if err != nil {
		t.Fatal(err)
	}

	start := env.State{Row: 2, Col: 2}
	for sample := 0; sample < 20; sample++ {
		steps, err := mc.Trajectory(start, sample)
		if err != nil {
			t.Fatal(err)
		}
		if len(steps) != config.Iterations {
			t.Fatalf("trajectory: want %d steps, have %d", config.Iterations,
				len(steps))
		}

		ret, err := mc.Return(start, sample)
		if err != nil {
			t.Fatal(err)
		}
		if have := ts.Return(steps); have != ret {
			t.Errorf("trajectory: sample %d: return %v, Return() = %v", sample,
				have, ret)
		}

		if steps[0].State != start || !steps[0].First() {
			t.Errorf("trajectory: sample %d: bad first step %v", sample,
				steps[0])
		}
		if !steps[len(steps)-1].Last() {
			t.Errorf("trajectory: sample %d: bad last step %v", sample,
				steps[len(steps)-1])
		}

		for i, step := range steps {
			if step.Number != i {
				t.Errorf("trajectory: step %d numbered %d", i, step.Number)
			}
			if want := math.Pow(w.Discount(), float64(i)); math.Abs(
				step.Discount-want) > 1e-12 {
				t.Errorf("trajectory: step %d: want discount %v, have %v", i,
					want, step.Discount)
			}
			if next := w.Transition(step.State, step.Action); next !=
				step.NextState {
				t.Errorf("trajectory: step %d: transition(%v, %v) = %v, "+
					"recorded %v", i, step.State, step.Action, next,
					step.NextState)
			}
			if i > 0 && steps[i-1].NextState != step.State {
				t.Errorf("trajectory: step %d does not continue from step %d",
					i, i-1)
			}
			if 0 < i && i < len(steps)-1 && !step.Mid() {
				t.Errorf("trajectory: step %d: want Mid, have %v", i,
					step.StepType)
			}
		}
	}
}

func TestMonteCarloSingleStep(t *testing.T) {
	w := world(t, 1, 1, 0.9)
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		evaluator.MonteCarloConfig{Iterations: 1, Samples: 1})
	if err != nil {
		t.Fatal(err)
	}

	steps, err := mc.Trajectory(env.State{}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 1 || !steps[0].Last() {
		t.Errorf("trajectory: want a single Last step, have %v", steps)
	}
}

func TestMonteCarloSingleCell(t *testing.T) {
	const gamma = 0.9
	w := world(t, 1, 1, gamma)

	for _, iterations := range []int{1, 10, 100} {
		mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
			evaluator.MonteCarloConfig{Iterations: iterations, Samples: 50,
				Workers: 3})
		if err != nil {
			t.Fatal(err)
		}

		est, err := mc.Evaluate(env.State{})
		if err != nil {
			t.Fatal(err)
		}

		want := -(1 - math.Pow(gamma, float64(iterations))) / (1 - gamma)
		if math.Abs(est.Mean-want) > 1e-9 {
			t.Errorf("evaluate: %d iterations: want %v, have %v", iterations,
				want, est.Mean)
		}
		if est.StdErr > 1e-9 {
			t.Errorf("evaluate: %d iterations: want zero standard error, "+
				"have %v", iterations, est.StdErr)
		}
	}
}

func TestMonteCarloDeterministicPolicy(t *testing.T) {
	const gamma = 0.9
	w := world(t, 5, 5, gamma)
	g := w.Grid()

	actions := make(map[env.State]env.Action, g.Len())
	for _, s := range g.States() {
		actions[s] = env.North
	}
	p, err := policy.NewDeterministic(g.States(), actions)
	if err != nil {
		t.Fatal(err)
	}

	const iterations = 20
	mc, err := evaluator.NewMonteCarlo(w, p, g,
		evaluator.MonteCarloConfig{Iterations: iterations, Samples: 10})
	if err != nil {
		t.Fatal(err)
	}

	// Two moves reach the top row, every later move bumps the border
	want := 0.0
	for i := 2; i < iterations; i++ {
		want -= math.Pow(gamma, float64(i))
	}

	est, err := mc.Evaluate(env.State{Row: 2, Col: 2})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(est.Mean-want) > 1e-9 {
		t.Errorf("evaluate: want %v, have %v", want, est.Mean)
	}
}

func TestMonteCarloOutOfBounds(t *testing.T) {
	w := world(t, 3, 3, 0.9)
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		evaluator.MonteCarloConfig{Iterations: 5, Samples: 5})
	if err != nil {
		t.Fatal(err)
	}

	outside := []env.State{{Row: 3, Col: 0}, {Row: 0, Col: -1}}
	for _, s := range outside {
		if _, err := mc.Evaluate(s); !errors.Is(err, evaluator.ErrOutOfBounds) {
			t.Errorf("evaluate(%v): expected ErrOutOfBounds, got %v", s, err)
		}
		if _, err := mc.Return(s, 0); !errors.Is(err, evaluator.ErrOutOfBounds) {
			t.Errorf("return(%v): expected ErrOutOfBounds, got %v", s, err)
		}
	}

	// Models leaving their lattice are reported from every worker count
	model := escaping{w}
	for _, workers := range []int{1, 4} {
		mc, err := evaluator.NewMonteCarlo(model, policy.NewUniform(),
			model.Grid(), evaluator.MonteCarloConfig{Iterations: 5,
				Samples: 20, Workers: workers})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := mc.EvaluateAll(nil); !errors.Is(err,
			evaluator.ErrOutOfBounds) {
			t.Errorf("evaluateAll: %d workers: expected ErrOutOfBounds, "+
				"got %v", workers, err)
		}
	}
}

func TestMonteCarloReport(t *testing.T) {
	w := world(t, 2, 3, 0.9)
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		evaluator.MonteCarloConfig{Iterations: 10, Samples: 10})
	if err != nil {
		t.Fatal(err)
	}

	var reported []env.State
	v, err := mc.EvaluateAll(func(s env.State, est evaluator.Estimate) {
		reported = append(reported, s)
	})
	if err != nil {
		t.Fatal(err)
	}

	if r, c := v.Dims(); r != 2 || c != 3 {
		t.Fatalf("evaluateAll: want 2 x 3 matrix, have %d x %d", r, c)
	}
	g := w.Grid()
	if len(reported) != g.Len() {
		t.Fatalf("evaluateAll: want %d reports, have %d", g.Len(),
			len(reported))
	}
	for i, s := range reported {
		if s != g.Unflatten(i) {
			t.Errorf("evaluateAll: report %d for state %v", i, s)
		}
	}
}

// The estimate of each cell is within a few standard errors of the true
// value at this sample size
func TestMonteCarloCanonical(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo evaluation in short mode")
	}

	w := canonical(t)
	config := evaluator.MonteCarloConfig{Iterations: 100, Samples: 10000,
		Workers: 4}
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		config)
	if err != nil {
		t.Fatal(err)
	}

	v, err := mc.EvaluateAll(func(s env.State, est evaluator.Estimate) {
		if est.StdErr > 0.08 {
			t.Errorf("evaluateAll: state %v: standard error %v too large", s,
				est.StdErr)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	checkClose(t, "monteCarlo", v, exact, 0.2)
	checkClose(t, "monteCarlo", v, reference, 0.2)
}

// The default configuration reproduces the reference values
func TestMonteCarloCanonicalDefault(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Monte Carlo evaluation in short mode")
	}

	w := canonical(t)
	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), w.Grid(),
		evaluator.DefaultMonteCarloConfig())
	if err != nil {
		t.Fatal(err)
	}

	v, err := mc.EvaluateAll(nil)
	if err != nil {
		t.Fatal(err)
	}
	checkClose(t, "monteCarlo", v, reference, 0.2)
}
