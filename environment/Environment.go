// Package environment outlines the states, actions, and dynamics
// interface shared by all gridworld models and the evaluators that
// consume them
package environment

import (
	"fmt"
	"strings"
)

// State is a position in a gridworld, indexed from the top-left cell.
// States compare by value and may be used as map keys.
type State struct {
	Row int
	Col int
}

func (s State) String() string {
	return fmt.Sprintf("(%d, %d)", s.Row, s.Col)
}

// Action is one of the four compass moves
type Action int

// Actions are declared in a fixed order. Flattened distributions over
// actions, such as policy.Distribution, are indexed by this order.
const (
	North Action = iota
	South
	East
	West
)

// NumActions is the number of actions available in every state
const NumActions int = 4

// Actions enumerates all actions in declaration order
var Actions = [NumActions]Action{North, South, East, West}

var actionNames = [NumActions]string{"North", "South", "East", "West"}

// delta holds the (row, col) displacement of each action
var delta = [NumActions][2]int{
	North: {-1, 0},
	South: {1, 0},
	East:  {0, 1},
	West:  {0, -1},
}

// Valid returns whether a is one of the four declared actions
func (a Action) Valid() bool {
	return a >= North && a <= West
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// MarshalText implements encoding.TextMarshaler so that actions are
// written by name in JSON configurations
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("marshalText: no such action %d", int(a))
	}
	return []byte(actionNames[a]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Action names are
// matched case-insensitively.
func (a *Action) UnmarshalText(text []byte) error {
	name := string(text)
	for i, n := range actionNames {
		if strings.EqualFold(n, name) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unmarshalText: no such action %q", name)
}

// Step returns the state one cell away from s in the direction of a.
// Step does not know about grid borders, the returned state may lie
// outside of the grid. An invalid action leaves s unchanged.
func Step(s State, a Action) State {
	if !a.Valid() {
		return s
	}
	d := delta[a]
	return State{Row: s.Row + d[0], Col: s.Col + d[1]}
}

// Model implements the dynamics of a Markov decision process with
// deterministic transitions. Evaluators depend only on this interface
// so that reward and transition rules can be swapped freely.
type Model interface {
	// Reward returns the reward for taking action a in state s
	Reward(s State, a Action) float64

	// Transition returns the state reached by taking action a in
	// state s
	Transition(s State, a Action) State

	// Discount returns the discount factor γ of the process
	Discount() float64
}
