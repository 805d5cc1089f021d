// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implement progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be written.
//
// Each call to Display writes the full bar followed by a newline, so
// the output writer should redraw its last line in place, as a
// uilive.Writer does.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	label           string
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar writing to out
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if max < 1 {
		max = 1
	}
	return &ManualProgressBar{
		out:             out,
		width:           float64(width),
		maxProgress:     float64(max),
		currentProgress: 0,
		startTime:       time.Now(),
	}
}

// Increment increments the interal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// SetLabel sets the text displayed after the progress bar
func (p *ManualProgressBar) SetLabel(label string) {
	p.label = label
}

// Progress returns the fraction of iterations performed
func (p *ManualProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// String returns the current progress bar
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	fmt.Fprintf(&p.bar, "| [%.2f%v | elapsed: %v]", p.Progress()*100, "%",
		time.Since(p.startTime).Truncate(time.Second))

	if p.label != "" {
		fmt.Fprintf(&p.bar, " %v", p.label)
	}
	return p.bar.String()
}

// Display writes the progress bar to the output writer
func (p *ManualProgressBar) Display() error {
	_, err := fmt.Fprintln(p.out, p.String())
	return err
}
