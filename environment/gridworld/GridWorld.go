// Package gridworld implements 2D gridworld dynamics for policy
// evaluation
package gridworld

import (
	"errors"
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
)

var (
	ErrDimensions  = errors.New("grid dimensions must be positive")
	ErrDiscount    = errors.New("discount must be in (0, 1)")
	ErrOutOfBounds = errors.New("state out of bounds")
	ErrOverlap     = errors.New("overlapping special cases")
)

// BorderReward is the reward for attempting to move off of the grid
const BorderReward float64 = -1.0

// GridWorld implements the default gridworld dynamics. Actions which
// would move the agent off of the grid leave the agent in place with
// a reward of BorderReward. All other actions move the agent one cell
// with a reward of 0.
//
// A GridWorld is immutable once constructed.
type GridWorld struct {
	grid     Grid
	discount float64
}

// New creates a new GridWorld over grid g with discount factor d
func New(g Grid, d float64) (*GridWorld, error) {
	if r, c := g.Dims(); r <= 0 || c <= 0 {
		return nil, fmt.Errorf("new: %w: rows = %d, cols = %d",
			ErrDimensions, r, c)
	}
	if !(d > 0 && d < 1) {
		return nil, fmt.Errorf("new: %w: discount = %v", ErrDiscount, d)
	}
	return &GridWorld{g, d}, nil
}

// Grid returns the lattice underlying the GridWorld
func (g *GridWorld) Grid() Grid {
	return g.grid
}

// Discount returns the discount factor
func (g *GridWorld) Discount() float64 {
	return g.discount
}

// Reward returns the reward for taking action a in state s
func (g *GridWorld) Reward(s env.State, a env.Action) float64 {
	if g.grid.OffBorder(s, a) {
		return BorderReward
	}
	return 0.0
}

// Transition returns the next state after taking action a in state s
func (g *GridWorld) Transition(s env.State, a env.Action) env.State {
	if g.grid.OffBorder(s, a) {
		return s
	}
	return env.Step(s, a)
}

func (g *GridWorld) String() string {
	r, c := g.grid.Dims()
	return fmt.Sprintf("GridWorld | Bounds: (%d, %d)  |  Discount: %.2f",
		r, c, g.discount)
}
