package policy

import env "github.com/samuelfneumann/gridvalue/environment"

// Uniform is a static policy selecting every action with equal
// probability in every state
type Uniform struct{}

// NewUniform returns a new Uniform policy
func NewUniform() Uniform {
	return Uniform{}
}

// Distribution returns the uniform distribution over actions
func (Uniform) Distribution(env.State) Distribution {
	return Split(env.Actions[:]...)
}

func (Uniform) String() string {
	return "Uniform"
}

// UniformScorer ignores the action values and returns the uniform
// distribution
func UniformScorer(ActionValues) Distribution {
	return Split(env.Actions[:]...)
}
