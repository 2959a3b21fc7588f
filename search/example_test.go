package search_test

import (
	"fmt"
	"math"

	"github.com/lowdisc/lowdisc/digitalnet"
	"github.com/lowdisc/lowdisc/figures"
	"github.com/lowdisc/lowdisc/poly2"
	"github.com/lowdisc/lowdisc/search"
	"github.com/lowdisc/lowdisc/weights"
)

// ExampleNetSearch runs an exhaustive search over the polynomial lattices
// with modulus x²+x+1 and reports the winner in machine format: one
// generating polynomial per line, then the merit (here, the pair t-value).
func ExampleNetSearch() {
	cons, _ := digitalnet.NewPolynomial(poly2.FromInt(7))
	fig, _ := figures.NewTValueFigure(weights.NewOrderDependent([]float64{0, 1}), math.Inf(1))
	task, _ := search.NewNetSearch(cons, 2, fig, search.DefaultOptions())

	res, _ := task.Execute()
	fmt.Print(res.Net.Format(digitalnet.FormatMachine, 1))
	fmt.Println(res.Merit)
	// Output:
	// 1
	// 2
	// 0
}
