package policy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax returns a Scorer producing the Boltzmann distribution over
// action values with the given temperature. Larger temperatures give
// distributions closer to uniform. The Scorer returns the zero
// Distribution, which fails validation, if any action value is not
// finite.
func Softmax(temperature float64) (Scorer, error) {
	if !(temperature > 0) || math.IsInf(temperature, 1) {
		return nil, fmt.Errorf("softmax: temperature must be positive and "+
			"finite, have %v", temperature)
	}

	return func(values ActionValues) Distribution {
		logits := make([]float64, len(values))
		for i, v := range values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Distribution{}
			}
			logits[i] = v / temperature
		}
		// Normalize in log space to avoid overflow
		lse := floats.LogSumExp(logits)

		var d Distribution
		for i, l := range logits {
			d[i] = math.Exp(l - lse)
		}
		return d
	}, nil
}
