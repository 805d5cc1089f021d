package gridworld

import (
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
)

// RewardSpecialCase overrides the reward of taking Action in State
type RewardSpecialCase struct {
	State  env.State
	Action env.Action
	Reward float64
}

// TransitionSpecialCase overrides the next state reached by taking
// Action in State
type TransitionSpecialCase struct {
	State     env.State
	Action    env.Action
	NextState env.State
}

// SpecialCases augments a GridWorld with ordered lists of reward and
// transition overrides. An override applies to a single (state,
// action) pair and takes precedence over the border rules of the
// underlying GridWorld.
//
// The lists are copied on construction and the SpecialCases is
// immutable thereafter.
type SpecialCases struct {
	*GridWorld
	rewards     []RewardSpecialCase
	transitions []TransitionSpecialCase
}

// NewSpecialCases returns a new SpecialCases model. Within each list,
// no two entries may refer to the same (state, action) pair, and every
// state referred to must lie within the grid of base.
func NewSpecialCases(base *GridWorld, rewards []RewardSpecialCase,
	transitions []TransitionSpecialCase) (*SpecialCases, error) {
	if base == nil {
		return nil, fmt.Errorf("newSpecialCases: base gridworld is nil")
	}
	g := base.Grid()

	type key struct {
		s env.State
		a env.Action
	}

	seen := make(map[key]int, len(rewards))
	for i, c := range rewards {
		if !g.Contains(c.State) {
			return nil, fmt.Errorf("newSpecialCases: reward case %d: %w: %v",
				i, ErrOutOfBounds, c.State)
		}
		if !c.Action.Valid() {
			return nil, fmt.Errorf("newSpecialCases: reward case %d: no "+
				"such action %v", i, c.Action)
		}
		k := key{c.State, c.Action}
		if j, ok := seen[k]; ok {
			return nil, fmt.Errorf("newSpecialCases: reward cases %d and "+
				"%d: %w at %v, %v", j, i, ErrOverlap, c.State, c.Action)
		}
		seen[k] = i
	}

	seen = make(map[key]int, len(transitions))
	for i, c := range transitions {
		if !g.Contains(c.State) {
			return nil, fmt.Errorf("newSpecialCases: transition case %d: "+
				"%w: %v", i, ErrOutOfBounds, c.State)
		}
		if !g.Contains(c.NextState) {
			return nil, fmt.Errorf("newSpecialCases: transition case %d: "+
				"%w: next state %v", i, ErrOutOfBounds, c.NextState)
		}
		if !c.Action.Valid() {
			return nil, fmt.Errorf("newSpecialCases: transition case %d: "+
				"no such action %v", i, c.Action)
		}
		k := key{c.State, c.Action}
		if j, ok := seen[k]; ok {
			return nil, fmt.Errorf("newSpecialCases: transition cases %d "+
				"and %d: %w at %v, %v", j, i, ErrOverlap, c.State, c.Action)
		}
		seen[k] = i
	}

	r := make([]RewardSpecialCase, len(rewards))
	copy(r, rewards)
	t := make([]TransitionSpecialCase, len(transitions))
	copy(t, transitions)

	return &SpecialCases{base, r, t}, nil
}

// Reward returns the reward for taking action a in state s. The first
// matching reward special case wins, otherwise the GridWorld's default
// reward is returned.
func (sc *SpecialCases) Reward(s env.State, a env.Action) float64 {
	for _, c := range sc.rewards {
		if c.State == s && c.Action == a {
			return c.Reward
		}
	}
	return sc.GridWorld.Reward(s, a)
}

// Transition returns the next state after taking action a in state s.
// The first matching transition special case wins, otherwise the
// GridWorld's default transition is returned.
func (sc *SpecialCases) Transition(s env.State, a env.Action) env.State {
	for _, c := range sc.transitions {
		if c.State == s && c.Action == a {
			return c.NextState
		}
	}
	return sc.GridWorld.Transition(s, a)
}

// RewardSpecialCases returns a copy of the reward overrides
func (sc *SpecialCases) RewardSpecialCases() []RewardSpecialCase {
	r := make([]RewardSpecialCase, len(sc.rewards))
	copy(r, sc.rewards)
	return r
}

// TransitionSpecialCases returns a copy of the transition overrides
func (sc *SpecialCases) TransitionSpecialCases() []TransitionSpecialCase {
	t := make([]TransitionSpecialCase, len(sc.transitions))
	copy(t, sc.transitions)
	return t
}

func (sc *SpecialCases) String() string {
	return fmt.Sprintf("%v  |  Special Cases: %d reward, %d transition",
		sc.GridWorld, len(sc.rewards), len(sc.transitions))
}

// FullCoverage returns special cases which, for every action taken in
// state s, yield reward r and teleport to state next
func FullCoverage(s env.State, r float64,
	next env.State) ([]RewardSpecialCase, []TransitionSpecialCase) {
	rewards := make([]RewardSpecialCase, 0, env.NumActions)
	transitions := make([]TransitionSpecialCase, 0, env.NumActions)

	for _, a := range env.Actions {
		rewards = append(rewards, RewardSpecialCase{s, a, r})
		transitions = append(transitions, TransitionSpecialCase{s, a, next})
	}
	return rewards, transitions
}
