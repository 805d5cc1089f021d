// Package timestep implements timesteps of simulated rollouts
package timestep

import (
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first step of a rollout, a middle step, or the last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single step of a rollout: taking
// Action in State yields Reward and leads to NextState. Discount is
// the cumulative discount γ^Number applied to Reward in the return.
type TimeStep struct {
	StepType
	Number    int
	State     env.State
	Action    env.Action
	Reward    float64
	NextState env.State
	Discount  float64
}

// New returns a new TimeStep
func New(t StepType, n int, s env.State, a env.Action, r float64,
	next env.State, d float64) TimeStep {
	return TimeStep{t, n, s, a, r, next, d}
}

// First returns whether a TimeStep is the first in a rollout
func (t TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in a rollout
func (t TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in a rollout
func (t TimeStep) Last() bool {
	return t.StepType == Last
}

// DiscountedReward returns the contribution of the TimeStep to the
// discounted return
func (t TimeStep) DiscountedReward() float64 {
	return t.Discount * t.Reward
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Step Number: %v  |  %v --%v--> %v  |  " +
		"Reward: %.2f  |  Discount: %.4f"

	return fmt.Sprintf(str, t.StepType, t.Number, t.State, t.Action,
		t.NextState, t.Reward, t.Discount)
}

// Return returns the discounted return of a sequence of TimeSteps
func Return(steps []TimeStep) float64 {
	ret := 0.0
	for _, step := range steps {
		ret += step.DiscountedReward()
	}
	return ret
}
