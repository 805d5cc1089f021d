package policy

import (
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/utils/floatutils"
)

// EGreedy returns an ε-greedy Scorer. Every action receives
// probability ε / NumActions, and the remaining 1 - ε is split evenly
// between all greedy actions. An action is greedy if its value is
// within tol of the maximal value, so ties never depend on the order
// of the actions.
func EGreedy(epsilon, tol float64) (Scorer, error) {
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("eGreedy: epsilon must be in [0, 1], have %v",
			epsilon)
	}
	if tol < 0 {
		return nil, fmt.Errorf("eGreedy: tolerance must be non-negative, "+
			"have %v", tol)
	}

	return func(values ActionValues) Distribution {
		_, greedy := floatutils.MaxSlice(values[:], tol)

		// Calculate the ε probability of choosing any action at random
		var d Distribution
		prob := epsilon / float64(env.NumActions)
		for i := range d {
			d[i] = prob
		}

		// Split the remaining probability between the tied greedy actions
		greedyProb := (1.0 - epsilon) / float64(len(greedy))
		for _, i := range greedy {
			d[i] += greedyProb
		}
		return d
	}, nil
}
