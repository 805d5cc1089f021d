// Package envconfig provides configuration structs for configuring
// gridworlds with default dynamics and special cases. Gridworld
// configurations in this package are JSON serializable, actions are
// written by name.
package envconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/environment/gridworld"
)

var ErrConfig = errors.New("invalid environment configuration")

// Config implements a specific configuration of a gridworld. A Config
// with no special cases describes a gridworld with only the default
// border dynamics.
type Config struct {
	Rows                   int
	Cols                   int
	Discount               float64
	RewardSpecialCases     []gridworld.RewardSpecialCase
	TransitionSpecialCases []gridworld.TransitionSpecialCase
}

// NewConfig returns a new environment Config
func NewConfig(rows, cols int, discount float64,
	rewards []gridworld.RewardSpecialCase,
	transitions []gridworld.TransitionSpecialCase) Config {
	return Config{
		Rows:                   rows,
		Cols:                   cols,
		Discount:               discount,
		RewardSpecialCases:     rewards,
		TransitionSpecialCases: transitions,
	}
}

// Canonical returns the Config of the canonical 5x5 gridworld
func Canonical() Config {
	rewards, transitions := gridworld.CanonicalSpecialCases()
	return NewConfig(gridworld.CanonicalRows, gridworld.CanonicalCols,
		gridworld.CanonicalDiscount, rewards, transitions)
}

// Load reads a JSON Config from the file at path
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("load: %s: %w", path, err)
	}
	return c, nil
}

// Decode reads a JSON Config from r. Unknown fields are rejected.
func Decode(r io.Reader) (Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var c Config
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("decode: %w: %v", ErrConfig, err)
	}
	return c, nil
}

// Encode writes c to w as indented JSON
func (c Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %v", err)
	}
	return nil
}

// Validate returns an error describing whether or not the
// configuration describes a valid gridworld
func (c Config) Validate() error {
	if _, _, err := c.Create(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// Create returns the gridworld described by the Config along with its
// Grid. The plain GridWorld is returned if the Config has no special
// cases. Errors wrap both ErrConfig and the gridworld error describing
// the problem.
func (c Config) Create() (env.Model, gridworld.Grid, error) {
	g, err := gridworld.NewGrid(c.Rows, c.Cols)
	if err != nil {
		return nil, gridworld.Grid{}, fmt.Errorf("create: %w: %w",
			ErrConfig, err)
	}

	base, err := gridworld.New(g, c.Discount)
	if err != nil {
		return nil, gridworld.Grid{}, fmt.Errorf("create: %w: %w",
			ErrConfig, err)
	}

	if len(c.RewardSpecialCases) == 0 && len(c.TransitionSpecialCases) == 0 {
		return base, g, nil
	}

	w, err := gridworld.NewSpecialCases(base, c.RewardSpecialCases,
		c.TransitionSpecialCases)
	if err != nil {
		return nil, gridworld.Grid{}, fmt.Errorf("create: %w: %w",
			ErrConfig, err)
	}
	return w, g, nil
}
