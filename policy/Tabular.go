package policy

import (
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
)

// Tabular is a policy given by an explicit table of distributions,
// one per state. Tabular policies can represent any deterministic or
// stochastic policy over a finite set of states.
type Tabular struct {
	table map[env.State]Distribution
}

// NewTabular returns a new Tabular policy. Every state in states must
// have a normalized distribution in table. The table is copied.
func NewTabular(states []env.State,
	table map[env.State]Distribution) (*Tabular, error) {
	t := make(map[env.State]Distribution, len(states))

	for _, s := range states {
		d, ok := table[s]
		if !ok {
			return nil, fmt.Errorf("newTabular: no distribution for state %v",
				s)
		}
		if err := d.Validate(Tolerance); err != nil {
			return nil, fmt.Errorf("newTabular: state %v: %w", s, err)
		}
		t[s] = d
	}

	return &Tabular{t}, nil
}

// NewDeterministic returns a policy selecting actions[s] with
// probability 1 in each state s. States are checked in the order of
// states.
func NewDeterministic(states []env.State,
	actions map[env.State]env.Action) (*Tabular, error) {
	table := make(map[env.State]Distribution, len(states))
	for _, s := range states {
		a, ok := actions[s]
		if !ok {
			continue
		}
		if !a.Valid() {
			return nil, fmt.Errorf("newDeterministic: state %v: no such "+
				"action %v", s, a)
		}
		table[s] = OneHot(a)
	}
	return NewTabular(states, table)
}

// Distribution returns the tabulated distribution of state s. The
// zero Distribution is returned for states outside of the table, which
// fails validation wherever it is used.
func (t *Tabular) Distribution(s env.State) Distribution {
	return t.table[s]
}
