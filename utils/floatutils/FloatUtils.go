// Package floatutils provides utilities for working with floats
package floatutils

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// MaxSlice gets the maximum value and indices of the maximum values in
// a slice of float64. Values within tol of the maximum, absolutely or
// relatively, are considered tied with it and their indices are all
// returned in increasing order. MaxSlice panics if values is empty.
func MaxSlice(values []float64, tol float64) (max float64, indices []int) {
	max = floats.Max(values)

	for i, value := range values {
		if scalar.EqualWithinAbsOrRel(value, max, tol, tol) {
			indices = append(indices, i)
		}
	}
	return
}

// Sums returns whether values sum to total within tol
func Sums(values []float64, total, tol float64) bool {
	return scalar.EqualWithinAbs(floats.Sum(values), total, tol)
}

// NonNegative returns whether no value in values is negative
func NonNegative(values []float64) bool {
	for _, v := range values {
		if v < 0 {
			return false
		}
	}
	return true
}
