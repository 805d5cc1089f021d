package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uilive"
	"github.com/logrusorgru/aurora"
	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/evaluator"
	ts "github.com/samuelfneumann/gridvalue/timestep"
	"github.com/samuelfneumann/gridvalue/utils/progressbar"
	"gonum.org/v1/gonum/mat"
)

const progressWidth = 40

func colors() aurora.Aurora {
	return aurora.NewAurora(!noColor)
}

// value colours a value green if positive and red if negative
func value(au aurora.Aurora, format string, v float64) aurora.Value {
	s := fmt.Sprintf(format, v)
	switch {
	case v > 0:
		return au.Green(s)
	case v < 0:
		return au.Red(s)
	default:
		return au.Reset(s)
	}
}

// writeGrid writes a value grid with one row per line. If stdErr is not
// nil, the standard error of each cell is written after its value.
func writeGrid(w io.Writer, au aurora.Aurora, title string, v,
	stdErr mat.Matrix) {
	fmt.Fprintln(w, au.Bold(title))

	r, c := v.Dims()
	for i := 0; i < r; i++ {
		cells := make([]string, c)
		for j := range cells {
			cell := value(au, "%6.2f", v.At(i, j)).String()
			if stdErr != nil {
				cell += au.Faint(fmt.Sprintf(" ±%.2f", stdErr.At(i, j))).String()
			}
			cells[j] = cell
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}

// writeTrajectory writes each step of a trajectory on its own line,
// followed by the discounted return
func writeTrajectory(w io.Writer, au aurora.Aurora, steps []ts.TimeStep) {
	for _, step := range steps {
		fmt.Fprintf(w, "%3d  %v --%-5v--> %v  reward %v  discount %.4f\n",
			step.Number, step.State, step.Action, step.NextState,
			value(au, "%5.1f", step.Reward), step.Discount)
	}
	fmt.Fprintf(w, "return %v\n", value(au, "%.4f", ts.Return(steps)))
}

// progress tracks the Monte Carlo evaluation of each state with a
// progress bar redrawn in place
type progress struct {
	writer *uilive.Writer
	bar    *progressbar.ManualProgressBar
}

func newProgress(out io.Writer, states int) *progress {
	writer := uilive.New()
	writer.Out = out

	return &progress{
		writer: writer,
		bar:    progressbar.NewManualProgressBar(writer, progressWidth, states),
	}
}

// Track advances the progress bar past state s
func (p *progress) Track(s env.State, est evaluator.Estimate) {
	p.bar.Increment()
	p.bar.SetLabel(fmt.Sprintf("%v = %.3f", s, est.Mean))
	if err := p.bar.Display(); err == nil {
		p.writer.Flush()
	}
}

// Save flushes the final progress bar
func (p *progress) Save() error {
	return p.writer.Flush()
}
