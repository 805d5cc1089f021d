package gridworld

import (
	"fmt"

	env "github.com/samuelfneumann/gridvalue/environment"
)

// Grid is the rectangular lattice underlying a gridworld. A Grid maps
// states to indices of a flattened, row-major array and answers
// border adjacency questions.
//
// Methods on Grid do not validate their arguments. States outside of
// [0, rows) x [0, cols) are a programming error, use Contains at
// construction boundaries.
type Grid struct {
	rows, cols int
}

// NewGrid returns a new Grid with r rows and c columns
func NewGrid(r, c int) (Grid, error) {
	if r <= 0 || c <= 0 {
		return Grid{}, fmt.Errorf("newGrid: %w: rows = %d, cols = %d",
			ErrDimensions, r, c)
	}
	return Grid{r, c}, nil
}

// Dims gets the rows and columns of the Grid
func (g Grid) Dims() (r, c int) {
	return g.rows, g.cols
}

// Len returns the number of cells in the Grid
func (g Grid) Len() int {
	return g.rows * g.cols
}

// Contains returns whether s lies within the Grid
func (g Grid) Contains(s env.State) bool {
	return s.Row >= 0 && s.Row < g.rows && s.Col >= 0 && s.Col < g.cols
}

// Flatten returns the index of s in a flattened, row-major array
func (g Grid) Flatten(s env.State) int {
	return s.Row*g.cols + s.Col
}

// Unflatten returns the state at index i of a flattened, row-major
// array. Unflatten is the inverse of Flatten.
func (g Grid) Unflatten(i int) env.State {
	return env.State{Row: i / g.cols, Col: i % g.cols}
}

// States returns all states in the Grid in flattened index order
func (g Grid) States() []env.State {
	states := make([]env.State, g.Len())
	for i := range states {
		states[i] = g.Unflatten(i)
	}
	return states
}

// OnBorderTop returns whether s is in the top row
func (g Grid) OnBorderTop(s env.State) bool {
	return s.Row == 0
}

// OnBorderBottom returns whether s is in the bottom row
func (g Grid) OnBorderBottom(s env.State) bool {
	return s.Row == g.rows-1
}

// OnBorderLeft returns whether s is in the leftmost column
func (g Grid) OnBorderLeft(s env.State) bool {
	return s.Col == 0
}

// OnBorderRight returns whether s is in the rightmost column
func (g Grid) OnBorderRight(s env.State) bool {
	return s.Col == g.cols-1
}

// OnBorder returns whether s is on any border
func (g Grid) OnBorder(s env.State) bool {
	return g.OnBorderTop(s) || g.OnBorderBottom(s) || g.OnBorderLeft(s) ||
		g.OnBorderRight(s)
}

// OffBorderTop returns whether taking a in s would leave through the
// top border
func (g Grid) OffBorderTop(s env.State, a env.Action) bool {
	return g.OnBorderTop(s) && a == env.North
}

// OffBorderBottom returns whether taking a in s would leave through
// the bottom border
func (g Grid) OffBorderBottom(s env.State, a env.Action) bool {
	return g.OnBorderBottom(s) && a == env.South
}

// OffBorderLeft returns whether taking a in s would leave through the
// left border
func (g Grid) OffBorderLeft(s env.State, a env.Action) bool {
	return g.OnBorderLeft(s) && a == env.West
}

// OffBorderRight returns whether taking a in s would leave through
// the right border
func (g Grid) OffBorderRight(s env.State, a env.Action) bool {
	return g.OnBorderRight(s) && a == env.East
}

// OffBorder returns whether taking a in s would leave the Grid
func (g Grid) OffBorder(s env.State, a env.Action) bool {
	return g.OffBorderTop(s, a) || g.OffBorderBottom(s, a) ||
		g.OffBorderLeft(s, a) || g.OffBorderRight(s, a)
}

func (g Grid) String() string {
	return fmt.Sprintf("Grid | Bounds: (%d, %d)", g.rows, g.cols)
}
