package digitalnet

import "math/bits"

// Coordinates returns the coord-th coordinate of every net point, indexed
// by point number. Point i is generated by XOR-combining the matrix columns
// selected by the binary digits of i; each column contributes its bits as a
// binary fraction.
func Coordinates(n Net, coord int) ([]float64, error) {
	mat, err := n.GeneratingMatrix(coord)
	if err != nil {
		return nil, err
	}
	cols := mat.ColumnsReversed()
	scale := 1.0 / float64(uint64(1)<<uint(mat.NumRows()))
	out := make([]float64, n.NumPoints())
	for i := range out {
		var acc uint64
		for b := uint64(i); b != 0; b &= b - 1 {
			acc ^= cols[bits.TrailingZeros64(b)]
		}
		out[i] = float64(acc) * scale
	}

	return out, nil
}
