package policy

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/environment/gridworld"
	"gonum.org/v1/gonum/mat"
)

// ActionValues holds the value of the state reached by each action,
// indexed by environment.Action
type ActionValues [env.NumActions]float64

// Scorer turns the next-state values of every action into a
// distribution over actions. Scorers must be pure functions.
type Scorer func(ActionValues) Distribution

// Heuristic is a policy which looks one step ahead. In each state, it
// computes the value of the state reached by each action under a
// fixed value function and the model's transition rule, then scores
// those values to produce a distribution.
type Heuristic struct {
	values *mat.Dense
	model  env.Model
	grid   gridworld.Grid
	scorer Scorer
}

// NewHeuristic returns a new Heuristic policy on model m with grid g.
// The values argument is a value function laid out like g, indexed by
// (row, col). It is copied and never modified. If scorer is nil,
// UniformScorer is used.
func NewHeuristic(values mat.Matrix, m env.Model, g gridworld.Grid,
	scorer Scorer) (*Heuristic, error) {
	if values == nil {
		return nil, fmt.Errorf("newHeuristic: values must not be nil")
	}
	if m == nil {
		return nil, fmt.Errorf("newHeuristic: model must not be nil")
	}

	vr, vc := values.Dims()
	if gr, gc := g.Dims(); vr != gr || vc != gc {
		return nil, fmt.Errorf("newHeuristic: %w: values are %d x %d, "+
			"grid is %d x %d", ErrShape, vr, vc, gr, gc)
	}

	if scorer == nil {
		scorer = UniformScorer
	}

	return &Heuristic{mat.DenseCopyOf(values), m, g, scorer}, nil
}

// ActionValues returns the value of the state reached by taking each
// action in state s. The value of an action leading off the grid is
// NaN.
func (h *Heuristic) ActionValues(s env.State) ActionValues {
	var values ActionValues
	for _, a := range env.Actions {
		next := h.model.Transition(s, a)
		if !h.grid.Contains(next) {
			values[a] = math.NaN()
			continue
		}
		values[a] = h.values.At(next.Row, next.Col)
	}
	return values
}

// Distribution returns the scored distribution over actions in state
// s. The zero Distribution is returned if any action leads off the
// grid.
func (h *Heuristic) Distribution(s env.State) Distribution {
	values := h.ActionValues(s)
	for _, v := range values {
		if math.IsNaN(v) {
			return Distribution{}
		}
	}
	return h.scorer(values)
}
