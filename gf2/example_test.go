package gf2_test

import (
	"fmt"

	"github.com/lowdisc/lowdisc/gf2"
)

// ExampleReducer demonstrates progressive reduction with a row swap: the
// third row is dependent at first, and replacing it restores full rank.
func ExampleReducer() {
	m, _ := gf2.FromRows(3, []uint64{0b011, 0b110, 0b101})
	r, _ := gf2.NewReducer(3)
	for i := 0; i < m.NumRows(); i++ {
		row, _ := m.Row(i)
		_ = r.AddRow(row)
	}
	fmt.Println(r.Rank())
	fmt.Println(r.SmallestFullRank())

	repl, _ := gf2.FromRows(3, []uint64{0b100})
	row, _ := repl.Row(0)
	_ = r.ReplaceRow(2, row)
	fmt.Println(r.Rank())
	fmt.Println(r.SmallestFullRank())
	// Output:
	// 2
	// 4
	// 3
	// 3
}
