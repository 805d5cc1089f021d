// Package evaluator implements policy evaluation: estimating the
// expected discounted return of every state of a gridworld under a
// fixed policy.
//
// Two independent evaluators are provided. MonteCarlo averages the
// discounted return of seeded rollouts, and LinearSystem solves the
// Bellman expectation equations exactly. Both return the value
// function as a rows x cols matrix indexed like the gridworld, and
// new matrices are allocated on every call.
package evaluator

import (
	"errors"
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/policy"
)

var (
	ErrConfig      = errors.New("invalid evaluator configuration")
	ErrOutOfBounds = errors.New("state out of bounds")
	ErrSolveFailed = errors.New("linear system solve failed")
)

// Lattice maps the states of a rectangular grid to and from indices of
// a flattened, row-major array. gridworld.Grid is a Lattice.
type Lattice interface {
	Dims() (r, c int)
	Len() int
	Contains(env.State) bool
	Flatten(env.State) int
	Unflatten(int) env.State
}

// distributions returns the validated distribution of p in every state
// of l, indexed by flattened state
func distributions(name string, p policy.Policy,
	l Lattice) ([]policy.Distribution, error) {
	dists := make([]policy.Distribution, l.Len())
	for i := range dists {
		s := l.Unflatten(i)
		d := p.Distribution(s)
		if err := d.Validate(policy.Tolerance); err != nil {
			return nil, fmt.Errorf("%s: state %v: %w", name, s, err)
		}
		dists[i] = d
	}
	return dists, nil
}
