package tvalue_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lowdisc/lowdisc/tvalue"
)

// TestCompositionMaker_First pins the starting composition.
func TestCompositionMaker_First(t *testing.T) {
	cm, err := tvalue.NewCompositionMaker(6, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 4}, cm.Composition())

	_, err = tvalue.NewCompositionMaker(2, 3)
	assert.ErrorIs(t, err, tvalue.ErrInvalidComposition)
	_, err = tvalue.NewCompositionMaker(3, 0)
	assert.ErrorIs(t, err, tvalue.ErrInvalidComposition)
}

// TestCompositionMaker_SinglePart covers the degenerate s=1 and k=s cases.
func TestCompositionMaker_SinglePart(t *testing.T) {
	cm, err := tvalue.NewCompositionMaker(5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, cm.Composition())
	assert.Equal(t, 1, cm.Count())
	assert.False(t, cm.Advance())

	cm, err = tvalue.NewCompositionMaker(4, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, cm.Composition())
	assert.False(t, cm.Advance(), "all-ones is the only composition when k=s")
}

// TestCompositionMaker_Coverage is the composition contract: every
// composition of k into s positive parts appears exactly once, the total
// matches C(k−1, s−1), and each transition relocates exactly one unit.
func TestCompositionMaker_Coverage(t *testing.T) {
	cases := [][2]int{{3, 2}, {5, 2}, {5, 3}, {6, 3}, {7, 4}, {8, 5}, {9, 3}}
	for _, kc := range cases {
		k, s := kc[0], kc[1]
		t.Run(fmt.Sprintf("k=%d_s=%d", k, s), func(t *testing.T) {
			cm, err := tvalue.NewCompositionMaker(k, s)
			require.NoError(t, err)

			seen := map[string]bool{}
			prev := cm.Composition()
			record := func(c []int) {
				sum := 0
				for _, v := range c {
					require.Positive(t, v, "parts must stay positive")
					sum += v
				}
				require.Equal(t, k, sum, "parts must sum to k")
				key := fmt.Sprint(c)
				require.False(t, seen[key], "composition %v repeated", c)
				seen[key] = true
			}
			record(prev)

			for cm.Advance() {
				cur := cm.Composition()
				d := cm.Delta()

				// Replay the delta on the previous composition.
				replay := append([]int(nil), prev...)
				require.Equal(t, replay[d.From.Part], d.From.Unit, "From.Unit is the donor size before the move")
				replay[d.From.Part]--
				replay[d.To.Part]++
				require.Equal(t, replay[d.To.Part], d.To.Unit, "To.Unit is the receiver size after the move")
				assert.Equal(t, cur, replay, "delta must explain the transition")

				record(cur)
				prev = cur
			}
			assert.Equal(t, cm.Count(), len(seen), "must visit C(k-1, s-1) compositions")
		})
	}
}
