// Package tracker outlines Trackers, which track and save the
// per-state estimates of a Monte Carlo evaluation
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/evaluator"
)

// Interface Tracker keeps track of the estimate of each state as it is
// computed during an experiment and saves the data after the
// experiment has finished
type Tracker interface {
	Track(s env.State, est evaluator.Estimate)
	Save() error
}

// Data is the data saved by a Tracker. Entry i of Means and StdErrs is
// the estimate of States[i].
type Data struct {
	States  []env.State
	Means   []float64
	StdErrs []float64
}

// Len returns the number of states in the Data
func (d Data) Len() int {
	return len(d.States)
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) (Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Data{}, fmt.Errorf("loadData: could not open data file: %v",
			err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	var data Data
	if err := dec.Decode(&data); err != nil {
		return Data{}, fmt.Errorf("loadData: could not decode data: %v", err)
	}

	if len(data.Means) != data.Len() || len(data.StdErrs) != data.Len() {
		return Data{}, fmt.Errorf("loadData: corrupt data file %v: %d states, "+
			"%d means, %d standard errors", filename, data.Len(),
			len(data.Means), len(data.StdErrs))
	}
	return data, nil
}
