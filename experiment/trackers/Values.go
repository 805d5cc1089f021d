// Package trackers implements Trackers, which track and save data in
// an experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/evaluator"
	"github.com/samuelfneumann/gridvalue/experiment/tracker"
)

// Values tracks and saves the Monte Carlo estimate of each state in
// an experiment, in the order the states were evaluated. States
// tracked more than once are saved once per call to Track.
type Values struct {
	data     tracker.Data
	filename string
}

// NewValues creates and returns a new *Values Tracker which will save
// its data at the specified location filename
func NewValues(filename string) tracker.Tracker {
	return &Values{filename: filename}
}

// Track caches the estimate of state s
func (v *Values) Track(s env.State, est evaluator.Estimate) {
	v.data.States = append(v.data.States, s)
	v.data.Means = append(v.data.Means, est.Mean)
	v.data.StdErrs = append(v.data.StdErrs, est.StdErr)
}

// Data returns the data tracked so far
func (v *Values) Data() tracker.Data {
	return v.data
}

// Save saves the data tracked by the Values Tracker to disk
func (v *Values) Save() error {
	file, err := os.Create(v.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err = en.Encode(v.data); err != nil {
		return fmt.Errorf("save: could not encode estimates: %v", err)
	}
	return nil
}
