package evaluator

import (
	"errors"
	"fmt"
	"math"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/policy"
	"github.com/samuelfneumann/gridvalue/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// LinearSystem evaluates a policy exactly by solving the Bellman
// expectation equations
//
//	v(s) = Σ_a π(a|s) [r(s, a) + γ v(s')]
//
// rearranged into the dense linear system A v = b with
//
//	-v(s) + Σ_a π(a|s) γ v(s') = -Σ_a π(a|s) r(s, a)
//
// There is one equation per state of the lattice.
type LinearSystem struct {
	model   env.Model
	policy  policy.Policy
	lattice Lattice
}

// NewLinearSystem returns a new LinearSystem evaluator
func NewLinearSystem(m env.Model, p policy.Policy, l Lattice) *LinearSystem {
	return &LinearSystem{m, p, l}
}

// System constructs and returns the matrix A and vector b of the
// linear system A v = b whose solution is the value function. Entry
// i of v is the value of state Unflatten(i).
func (l *LinearSystem) System() (*mat.Dense, *mat.VecDense, error) {
	dists, err := distributions("linearSystem", l.policy, l.lattice)
	if err != nil {
		return nil, nil, fmt.Errorf("system: %w", err)
	}

	n := l.lattice.Len()
	gamma := l.model.Discount()
	A := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)

	for idx := 0; idx < n; idx++ {
		state := l.lattice.Unflatten(idx)
		A.Set(idx, idx, -1)

		for _, a := range env.Actions {
			pi := dists[idx].At(a)

			r := l.model.Reward(state, a)
			b.SetVec(idx, b.AtVec(idx)-pi*r)

			next := l.model.Transition(state, a)
			if !l.lattice.Contains(next) {
				return nil, nil, fmt.Errorf("system: linearSystem: %w: "+
					"transition(%v, %v) = %v", ErrOutOfBounds, state, a, next)
			}

			// Transitions to the same next state accumulate, self-loops
			// accumulate on the diagonal
			nextIdx := l.lattice.Flatten(next)
			A.Set(idx, nextIdx, A.At(idx, nextIdx)+pi*gamma)
		}
	}

	return A, b, nil
}

// Solve solves the Bellman expectation equations and returns the
// value function as a rows x cols matrix. An error wrapping
// ErrSolveFailed is returned if the system is singular or too
// ill-conditioned to solve accurately.
func (l *LinearSystem) Solve() (*mat.Dense, error) {
	A, b, err := l.System()
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	var lu mat.LU
	lu.Factorize(A)
	if logDet, _ := lu.LogDet(); math.IsInf(logDet, -1) {
		return nil, fmt.Errorf("solve: linearSystem: %w: matrix is singular",
			ErrSolveFailed)
	}

	var v mat.VecDense
	if err := lu.SolveVecTo(&v, false, b); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("solve: linearSystem: %w: condition "+
				"number %v", ErrSolveFailed, float64(cond))
		}
		return nil, fmt.Errorf("solve: linearSystem: %w: %v",
			ErrSolveFailed, err)
	}

	r, c := l.lattice.Dims()
	return matutils.Reshape(&v, r, c)
}
