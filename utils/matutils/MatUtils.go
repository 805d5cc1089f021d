// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// Reshape reshapes a vector of length r*c into an r x c matrix in
// row-major order. The returned matrix does not share data with v.
func Reshape(v mat.Vector, r, c int) (*mat.Dense, error) {
	if v.Len() != r*c {
		return nil, fmt.Errorf("reshape: cannot reshape vector of length "+
			"%d to shape (%d, %d)", v.Len(), r, c)
	}

	data := make([]float64, r*c)
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return mat.NewDense(r, c, data), nil
}

// MaxAbsDiff returns the largest element-wise absolute difference
// between two matrices with equal dimensions
func MaxAbsDiff(a, b mat.Matrix) (float64, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return 0, fmt.Errorf("maxAbsDiff: dimension mismatch (%d, %d) "+
			"!= (%d, %d)", ar, ac, br, bc)
	}

	x := mat.DenseCopyOf(a)
	y := mat.DenseCopyOf(b)

	diff := 0.0
	for i := 0; i < ar; i++ {
		diff = math.Max(diff, floats.Distance(x.RawRowView(i),
			y.RawRowView(i), math.Inf(1)))
	}
	return diff, nil
}
