package evaluator_test

import (
	"fmt"
	"strings"

	env "github.com/samuelfneumann/gridvalue/environment"
	"github.com/samuelfneumann/gridvalue/environment/gridworld"
	"github.com/samuelfneumann/gridvalue/evaluator"
	"github.com/samuelfneumann/gridvalue/policy"
)

func ExampleLinearSystem() {
	w, err := gridworld.Canonical()
	if err != nil {
		panic(err)
	}

	v, err := evaluator.NewLinearSystem(w, policy.NewUniform(),
		w.Grid()).Solve()
	if err != nil {
		panic(err)
	}

	r, c := v.Dims()
	for i := 0; i < r; i++ {
		row := make([]string, c)
		for j := range row {
			row[j] = fmt.Sprintf("%5.1f", v.At(i, j))
		}
		fmt.Println(strings.Join(row, " "))
	}

	// Output:
	//   3.3   8.8   4.4   5.3   1.5
	//   1.5   3.0   2.3   1.9   0.5
	//   0.1   0.7   0.7   0.4  -0.4
	//  -1.0  -0.4  -0.4  -0.6  -1.2
	//  -1.9  -1.3  -1.2  -1.4  -2.0
}

func ExampleMonteCarlo_Evaluate() {
	g, _ := gridworld.NewGrid(1, 1)
	w, _ := gridworld.New(g, 0.9)

	mc, err := evaluator.NewMonteCarlo(w, policy.NewUniform(), g,
		evaluator.DefaultMonteCarloConfig())
	if err != nil {
		panic(err)
	}

	est, err := mc.Evaluate(env.State{Row: 0, Col: 0})
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f\n", est.Mean)

	// Output:
	// -9.9997
}
