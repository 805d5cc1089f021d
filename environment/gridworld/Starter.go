package gridworld

import (
	env "github.com/samuelfneumann/gridvalue/environment"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Starter returns starting states sampled uniformly from the cells of
// a Grid
type Starter struct {
	grid Grid
	rand distuv.Categorical
}

// NewStarter returns a new Starter sampling the cells of g
func NewStarter(g Grid, seed uint64) *Starter {
	source := rand.NewSource(seed)

	weights := make([]float64, g.Len())
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return &Starter{g, distuv.NewCategorical(weights, source)}
}

// Start returns a starting state
func (s *Starter) Start() env.State {
	return s.grid.Unflatten(int(s.rand.Rand()))
}
