package gridworld

import env "github.com/samuelfneumann/gridvalue/environment"

// Parameters of the canonical 5x5 gridworld. Every action taken in A
// yields RewardA and teleports to APrime, and every action taken in B
// yields RewardB and teleports to BPrime.
const (
	CanonicalRows     int     = 5
	CanonicalCols     int     = 5
	CanonicalDiscount float64 = 0.9
	RewardA           float64 = 10.0
	RewardB           float64 = 5.0
)

var (
	A      = env.State{Row: 0, Col: 1}
	APrime = env.State{Row: 4, Col: 1}
	B      = env.State{Row: 0, Col: 3}
	BPrime = env.State{Row: 2, Col: 3}
)

// Canonical returns the canonical 5x5 gridworld with the A -> A' and
// B -> B' special cases
func Canonical() (*SpecialCases, error) {
	g, err := NewGrid(CanonicalRows, CanonicalCols)
	if err != nil {
		return nil, err
	}

	base, err := New(g, CanonicalDiscount)
	if err != nil {
		return nil, err
	}

	rewards, transitions := CanonicalSpecialCases()
	return NewSpecialCases(base, rewards, transitions)
}

// CanonicalSpecialCases returns the reward and transition special
// cases of the canonical gridworld
func CanonicalSpecialCases() ([]RewardSpecialCase, []TransitionSpecialCase) {
	rewardsA, transitionsA := FullCoverage(A, RewardA, APrime)
	rewardsB, transitionsB := FullCoverage(B, RewardB, BPrime)

	return append(rewardsA, rewardsB...), append(transitionsA, transitionsB...)
}
