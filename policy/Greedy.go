package policy

// Greedy returns a Scorer which splits all probability evenly between
// the actions whose values are within tol of the maximal value
func Greedy(tol float64) (Scorer, error) {
	return EGreedy(0.0, tol)
}
