// Package policy implements fixed policies over gridworld actions.
//
// A Policy maps each state to a Distribution over the four actions.
// Policies are immutable: querying a Policy never changes it, and
// policies that depend on a value function read a private copy of it.
package policy

import (
	"errors"
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/utils/floatutils"
)

// Tolerance is the default tolerance within which a Distribution must
// sum to 1
const Tolerance float64 = 1e-9

var (
	ErrNotNormalized = errors.New("distribution not normalized")
	ErrShape         = errors.New("value function does not match grid")
)

// Distribution is a probability distribution over actions, indexed by
// environment.Action
type Distribution [env.NumActions]float64

// At returns the probability of action a
func (d Distribution) At(a env.Action) float64 {
	return d[a]
}

// Weights returns the probabilities of each action as a slice in
// action order
func (d Distribution) Weights() []float64 {
	w := make([]float64, env.NumActions)
	copy(w, d[:])
	return w
}

// Validate returns an error if any probability is negative or if the
// probabilities do not sum to 1 within tol
func (d Distribution) Validate(tol float64) error {
	if !floatutils.NonNegative(d[:]) {
		return fmt.Errorf("validate: %w: negative probability in %v",
			ErrNotNormalized, d)
	}
	if !floatutils.Sums(d[:], 1.0, tol) {
		return fmt.Errorf("validate: %w: %v does not sum to 1",
			ErrNotNormalized, d)
	}
	return nil
}

// Policy represents a fixed policy
type Policy interface {
	// Distribution returns the probability of selecting each action in
	// state s
	Distribution(s env.State) Distribution
}

// Probability returns the probability of p selecting action a in state s
func Probability(p Policy, s env.State, a env.Action) float64 {
	return p.Distribution(s).At(a)
}

// OneHot returns the Distribution which selects a with probability 1
func OneHot(a env.Action) Distribution {
	var d Distribution
	d[a] = 1.0
	return d
}

// Split returns the Distribution which selects each of the argument
// actions with equal probability
func Split(actions ...env.Action) Distribution {
	var d Distribution
	if len(actions) == 0 {
		return d
	}

	prob := 1.0 / float64(len(actions))
	for _, a := range actions {
		d[a] += prob
	}
	return d
}
